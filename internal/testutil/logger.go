package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns an info-level text logger and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return NewLevelBufferLogger(slog.LevelInfo)
}

// NewLevelBufferLogger is NewBufferLogger with a caller-chosen minimum level.
func NewLevelBufferLogger(level slog.Leveler) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return logger, &buf
}
