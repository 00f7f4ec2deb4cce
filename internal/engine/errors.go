package engine

import "fmt"

// PreconditionError means the requested mode cannot run on this system.
type PreconditionError struct {
	Requirement string
	Hint        string
	Err         error
}

func (e *PreconditionError) Error() string {
	msg := "precondition failed: " + e.Requirement
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// InvocationError reports an engine run that did not exit cleanly.
type InvocationError struct {
	Engine   string
	File     string
	ExitCode int
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s failed on %s (exit=%d): %v", e.Engine, e.File, e.ExitCode, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
