package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Stream runs an external command and tees its combined output into w.
func (e *implExecutor) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("command '%s' failed to start: %w", name, err)
	}

	// Both pumps share one writer; serialize their chunks.
	sink := &lockedWriter{w: w}
	var g errgroup.Group
	g.Go(func() error { return pump(sink, stdout) })
	g.Go(func() error { return pump(sink, stderr) })
	copyErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("command '%s' failed: %w", name, err)
	}
	if copyErr != nil && !errors.Is(copyErr, io.ErrClosedPipe) {
		return fmt.Errorf("command '%s' output: %w", name, copyErr)
	}

	return nil
}

// pump copies r into w. If w fails, r is still read to EOF so the child
// never blocks on a full pipe.
func pump(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, r)
	if err != nil {
		io.Copy(io.Discard, r)
	}
	return err
}

// ExitCode returns the process exit status carried by err, or -1 when err
// does not come from a process that ran to exit.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
