package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs a command to completion and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Stream runs a command and copies stdout and stderr into w as the
	// output arrives. It blocks until both pipes are drained and the
	// process has exited.
	Stream(ctx context.Context, w io.Writer, name string, args ...string) error
}
