package transport

import "time"

const (
	defaultName           = "upstream"
	defaultMaxAttempts    = 3
	defaultRetryDelay     = time.Second
	defaultAttemptTimeout = 10 * time.Second
	defaultHTTPTimeout    = 30 * time.Second
	defaultMaxBodyBytes   = 8 << 20
	defaultUserAgent      = "country-directory-service/1.0"

	// errorSnippetBytes caps how much of a non-2xx body is kept on StatusError.
	errorSnippetBytes = 512
)
