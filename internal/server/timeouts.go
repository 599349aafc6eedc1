package server

import "time"

// writeTimeout covers a full upstream retry cycle: three 10s attempts plus the pauses between them.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 45 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
