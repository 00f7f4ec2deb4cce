package device

import (
	"context"
	"strings"
)

var cpuDevice = Device{Kind: KindCPU, Name: "CPU"}

// Probe reports an accelerator when nvidia-smi lists a GPU. Every failure
// falls back to the CPU.
func (p *implProber) Probe(ctx context.Context) Device {
	switch p.override {
	case "cpu":
		return cpuDevice
	case "cuda":
		return Device{Kind: KindAccelerated, Name: "CUDA (forced)"}
	}

	out, err := p.executor.Execute(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		p.logger.Debug(ctx, "No GPU detected, using CPU: %v", err)
		return cpuDevice
	}

	name := firstLine(out)
	if name == "" {
		p.logger.Debug(ctx, "nvidia-smi listed no GPUs, using CPU")
		return cpuDevice
	}

	return Device{Kind: KindAccelerated, Name: name}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
