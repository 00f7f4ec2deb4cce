package engine

import (
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
	"github.com/nguyentantai21042004/transcribe-batch/pkg/executor"
)

type implStandard struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

type implDiarized struct {
	binary   string
	token    string
	executor executor.Executor
	logger   logger.Logger
}

// NewStandard creates an Engine running the whisper CLI at binary.
func NewStandard(exec executor.Executor, log logger.Logger, binary string) Engine {
	return &implStandard{
		binary:   binary,
		executor: exec,
		logger:   log,
	}
}

// NewDiarized creates an Engine running whisperx with speaker diarization.
// token is the Hugging Face access token returned by Preflight.
func NewDiarized(exec executor.Executor, log logger.Logger, binary, token string) Engine {
	return &implDiarized{
		binary:   binary,
		token:    token,
		executor: exec,
		logger:   log,
	}
}
