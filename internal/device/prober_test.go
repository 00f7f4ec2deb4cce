package device

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
)

type fakeExecutor struct {
	out   string
	err   error
	calls int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls++
	return f.out, f.err
}

func (f *fakeExecutor) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	return errors.New("not used")
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name      string
		override  string
		out       string
		err       error
		want      Device
		wantCalls int
	}{
		{
			name:      "gpu found",
			override:  "auto",
			out:       "NVIDIA GeForce RTX 4090\n",
			want:      Device{Kind: KindAccelerated, Name: "NVIDIA GeForce RTX 4090"},
			wantCalls: 1,
		},
		{
			name:      "first of several gpus",
			override:  "auto",
			out:       "NVIDIA A100\nNVIDIA A100\n",
			want:      Device{Kind: KindAccelerated, Name: "NVIDIA A100"},
			wantCalls: 1,
		},
		{
			name:      "nvidia-smi missing",
			override:  "auto",
			err:       errors.New("executable file not found"),
			want:      cpuDevice,
			wantCalls: 1,
		},
		{
			name:      "empty output",
			override:  "auto",
			out:       "  \n",
			want:      cpuDevice,
			wantCalls: 1,
		},
		{
			name:      "forced cpu skips probing",
			override:  "cpu",
			out:       "NVIDIA A100",
			want:      cpuDevice,
			wantCalls: 0,
		},
		{
			name:      "forced cuda skips probing",
			override:  "cuda",
			want:      Device{Kind: KindAccelerated, Name: "CUDA (forced)"},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{out: tt.out, err: tt.err}
			p := New(exec, logger.NewWriter("debug", &bytes.Buffer{}), tt.override)

			got := p.Probe(context.Background())
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
			if exec.calls != tt.wantCalls {
				t.Errorf("executor calls = %d, want %d", exec.calls, tt.wantCalls)
			}
		})
	}
}

func TestEngineArg(t *testing.T) {
	if got := (Device{Kind: KindAccelerated}).EngineArg(); got != "cuda" {
		t.Errorf("EngineArg() = %v, want cuda", got)
	}
	if got := cpuDevice.EngineArg(); got != "cpu" {
		t.Errorf("EngineArg() = %v, want cpu", got)
	}
}
