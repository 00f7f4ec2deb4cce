package processor

import (
	"errors"
	"time"
)

// ErrBatchFailed is returned under the continue policy when at least one
// file failed.
var ErrBatchFailed = errors.New("batch finished with failures")

// Summary accumulates the outcome of one batch run.
type Summary struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
	Failures  []Failure
	Elapsed   time.Duration
}

// Failure records one file that did not transcribe.
type Failure struct {
	File string
	Err  error
}

func (s Summary) recordFailure(file string, err error) Summary {
	s.Failed++
	s.Failures = append(s.Failures, Failure{File: file, Err: err})
	return s
}
