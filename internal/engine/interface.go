// Package engine drives the external speech-recognition tools. The
// standard engine runs the whisper CLI; the diarized engine runs whisperx
// with speaker attribution.
package engine

import (
	"context"
	"io"
)

// Options describes one transcription call.
type Options struct {
	Model        string // resolved model, e.g. "small.en"
	ModelSize    string // undecorated size, e.g. "small"
	Language     string // empty lets the engine auto-detect
	Device       string // "cuda" or "cpu"
	OutputDir    string
	OutputFormat string
}

// Engine transcribes a single media file into opts.OutputDir, streaming the
// tool's output to out while it runs.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, input string, opts Options, out io.Writer) error
}
