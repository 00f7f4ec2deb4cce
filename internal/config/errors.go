package config

import "fmt"

// ConfigError reports a missing or invalid command-line argument. It is
// always raised before any media file is looked at.
type ConfigError struct {
	Arg     string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Arg, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Arg, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
