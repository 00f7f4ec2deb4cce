package device

import (
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
	"github.com/nguyentantai21042004/transcribe-batch/pkg/executor"
)

type implProber struct {
	executor executor.Executor
	logger   logger.Logger
	override string
}

// New creates a Prober. override is the engine.device setting: "auto"
// probes the system, "cpu" and "cuda" are taken as given.
func New(exec executor.Executor, log logger.Logger, override string) Prober {
	return &implProber{
		executor: exec,
		logger:   log,
		override: override,
	}
}
