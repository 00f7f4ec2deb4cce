package engine

import (
	"context"
	"io"
	"strings"

	"github.com/nguyentantai21042004/transcribe-batch/pkg/executor"
)

const redacted = "***"

func (e *implStandard) Name() string { return "whisper" }

// Transcribe runs: whisper <input> --model M --device D --output_dir O
// --output_format F [--language L]
func (e *implStandard) Transcribe(ctx context.Context, input string, opts Options, out io.Writer) error {
	args := standardArgs(input, opts)
	e.logger.Debug(ctx, "Running: %s %s", e.binary, strings.Join(args, " "))

	if err := e.executor.Stream(ctx, out, e.binary, args...); err != nil {
		return &InvocationError{Engine: e.Name(), File: input, ExitCode: executor.ExitCode(err), Err: err}
	}
	return nil
}

func (e *implDiarized) Name() string { return "whisperx" }

// Transcribe runs whisperx with --diarize. The language-suffixed models are
// not supported by the diarization pipeline, so the plain size is used.
func (e *implDiarized) Transcribe(ctx context.Context, input string, opts Options, out io.Writer) error {
	args := diarizedArgs(input, opts, e.token)
	e.logger.Debug(ctx, "Running: %s %s", e.binary, strings.Join(diarizedArgs(input, opts, redacted), " "))

	if err := e.executor.Stream(ctx, out, e.binary, args...); err != nil {
		return &InvocationError{Engine: e.Name(), File: input, ExitCode: executor.ExitCode(err), Err: err}
	}
	return nil
}

func standardArgs(input string, opts Options) []string {
	args := []string{
		input,
		"--model", opts.Model,
		"--device", opts.Device,
		"--output_dir", opts.OutputDir,
		"--output_format", outputFormat(opts),
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	return args
}

func diarizedArgs(input string, opts Options, token string) []string {
	args := []string{
		input,
		"--model", opts.ModelSize,
		"--device", opts.Device,
		"--output_dir", opts.OutputDir,
		"--output_format", outputFormat(opts),
		"--diarize",
		"--hf_token", token,
	}
	// whisperx defaults to float16, which the CPU backend cannot run.
	if opts.Device == "cpu" {
		args = append(args, "--compute_type", "int8")
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	return args
}

func outputFormat(opts Options) string {
	if opts.OutputFormat == "" {
		return "all"
	}
	return opts.OutputFormat
}
