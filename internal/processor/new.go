package processor

import (
	"github.com/nguyentantai21042004/transcribe-batch/internal/config"
	"github.com/nguyentantai21042004/transcribe-batch/internal/device"
	"github.com/nguyentantai21042004/transcribe-batch/internal/engine"
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
)

type implProcessor struct {
	cfg    *config.RunConfig
	device device.Device
	engine engine.Engine
	logger logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.RunConfig, dev device.Device, eng engine.Engine, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		device: dev,
		engine: eng,
		logger: log,
	}
}
