package device

import "context"

// Kind is the class of hardware the engine runs on.
type Kind string

const (
	KindAccelerated Kind = "accelerated"
	KindCPU         Kind = "cpu"
)

// Device is the result of a probe. It is fixed for the whole run.
type Device struct {
	Kind Kind
	Name string
}

// EngineArg returns the value passed to the engine's --device flag.
func (d Device) EngineArg() string {
	if d.Kind == KindAccelerated {
		return "cuda"
	}
	return "cpu"
}

func (d Device) String() string {
	return string(d.Kind) + " (" + d.Name + ")"
}

// Prober detects the device to transcribe on
type Prober interface {
	Probe(ctx context.Context) Device
}
