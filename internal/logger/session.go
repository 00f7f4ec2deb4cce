package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const sessionTimeLayout = "20060102-150405"

// NewSession creates a Logger that writes every line to stdout and to a new
// log file in dir. The file name embeds start so repeated runs never share
// a file; a short random suffix is added if the name is already taken.
// It returns the logger and the path of the created file.
func NewSession(dir, level string, start time.Time) (Logger, string, error) {
	return newSession(dir, level, start, os.Stdout)
}

func newSession(dir, level string, start time.Time, console io.Writer) (Logger, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}

	f, path, err := createSessionFile(dir, start)
	if err != nil {
		return nil, "", err
	}

	l := NewWriter(level, io.MultiWriter(console, f)).(*implLogger)
	l.file = f
	l.path = path
	return l, path, nil
}

// SessionFileName returns the log file name for a session started at start.
func SessionFileName(start time.Time) string {
	return "transcribe_" + start.Format(sessionTimeLayout) + ".log"
}

func createSessionFile(dir string, start time.Time) (*os.File, string, error) {
	path := filepath.Join(dir, SessionFileName(start))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		return f, path, nil
	}
	if !errors.Is(err, os.ErrExist) {
		return nil, "", fmt.Errorf("create log file: %w", err)
	}

	name := fmt.Sprintf("transcribe_%s_%s.log", start.Format(sessionTimeLayout), uuid.NewString()[:8])
	path = filepath.Join(dir, name)
	f, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("create log file: %w", err)
	}
	return f, path, nil
}
