package engine

import (
	"os"
	"os/exec"
	"strings"
)

// Preflight verifies that diarized runs can start: binary must be on PATH
// and the tokenEnv variable must be set. It returns the token.
func Preflight(binary, tokenEnv string) (string, error) {
	return preflight(exec.LookPath, os.Getenv, binary, tokenEnv)
}

func preflight(lookPath func(string) (string, error), getenv func(string) string, binary, tokenEnv string) (string, error) {
	if _, err := lookPath(binary); err != nil {
		return "", &PreconditionError{
			Requirement: binary + " not found on PATH",
			Hint:        "install whisperx to use diarization",
			Err:         err,
		}
	}

	token := strings.TrimSpace(getenv(tokenEnv))
	if token == "" {
		return "", &PreconditionError{
			Requirement: tokenEnv + " is not set",
			Hint:        "diarization needs a Hugging Face access token",
		}
	}

	return token, nil
}
