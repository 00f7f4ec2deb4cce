package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type implLogger struct {
	logger *log.Logger
	level  string
	sink   *syncWriter
	file   *os.File
	path   string
}

// syncWriter serializes log lines and streamed subprocess output so the
// two never interleave mid-write.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// New creates a console Logger on stderr, for use before a session log
// exists.
func New(level string) Logger {
	return NewWriter(level, os.Stderr)
}

// NewWriter creates a Logger writing to w.
func NewWriter(level string, w io.Writer) Logger {
	sink := &syncWriter{w: w}
	return &implLogger{
		logger: log.New(sink, "", log.LstdFlags),
		level:  strings.ToLower(level),
		sink:   sink,
	}
}

func (l *implLogger) shouldLog(level string) bool {
	levels := map[string]int{
		"debug": 0,
		"info":  1,
		"warn":  2,
		"error": 3,
	}

	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}

func (l *implLogger) Writer() io.Writer {
	return l.sink
}

// Close closes the session file if one was opened.
func (l *implLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
