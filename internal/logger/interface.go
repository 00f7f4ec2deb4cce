package logger

import (
	"context"
	"io"
)

// Logger defines the leveled logging interface used across the pipeline
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// Writer returns the raw sink behind the logger. Subprocess output
	// written here reaches every destination the log lines do.
	Writer() io.Writer
	Close() error
}
