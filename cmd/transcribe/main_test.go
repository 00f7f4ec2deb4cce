package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcribe-batch/internal/config"
	"github.com/nguyentantai21042004/transcribe-batch/internal/engine"
	"github.com/nguyentantai21042004/transcribe-batch/internal/processor"
)

// fakeWhisper mimics the whisper CLI: it writes <base>.txt into
// --output_dir and fails for inputs whose name contains "broken".
const fakeWhisper = `#!/bin/sh
in="$1"; shift
while [ $# -gt 0 ]; do
  case "$1" in
    --output_dir) out="$2"; shift ;;
  esac
  shift
done
b=$(basename "$in"); b="${b%.*}"
echo "transcribing $b"
case "$b" in *broken*) echo "decode error" 1>&2; exit 1 ;; esac
echo "text of $b" > "$out/$b.txt"
`

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

type env struct {
	input  string
	output string
	config string
}

func setup(t *testing.T, extraYAML string) env {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin", "whisper")
	writeFile(t, bin, fakeWhisper, 0755)

	cfgPath := filepath.Join(root, "settings.yaml")
	yaml := fmt.Sprintf("engine:\n  whisper_binary: %q\n  device: cpu\n%s", bin, extraYAML)
	writeFile(t, cfgPath, yaml, 0644)

	input := filepath.Join(root, "input")
	if err := os.Mkdir(input, 0755); err != nil {
		t.Fatal(err)
	}
	return env{input: input, output: filepath.Join(root, "output"), config: cfgPath}
}

func logContents(t *testing.T, dir string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "transcribe_*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one session log in %s, got %v (%v)", dir, matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunEndToEnd(t *testing.T) {
	e := setup(t, "")
	writeFile(t, filepath.Join(e.input, "lectures", "lecture1.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "lectures", "notes.txt"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "intro.mkv"), "x", 0644)

	code := run(context.Background(), []string{"--config", e.config, e.input, "small", "en", "", "false", "-o", e.output})
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}

	for _, rel := range []string{"lectures/lecture1.txt", "intro.txt"} {
		if _, err := os.Stat(filepath.Join(e.output, rel)); err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
		}
	}

	logs := logContents(t, e.output)
	for _, want := range []string{"Model: small.en", "Device: cpu", "transcribing lecture1", "Processed: 2", "Skipped:   0"} {
		if !strings.Contains(logs, want) {
			t.Errorf("session log missing %q", want)
		}
	}
}

func TestRunSecondPassSkips(t *testing.T) {
	e := setup(t, "")
	writeFile(t, filepath.Join(e.input, "sub", "a.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "sub", "b.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.output, "sub", "a.txt"), "done", 0644)

	code := run(context.Background(), []string{"--config", e.config, "-o", e.output, e.input})
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}

	logs := logContents(t, e.output)
	if !strings.Contains(logs, "Processed: 1") || !strings.Contains(logs, "Skipped:   1") {
		t.Errorf("unexpected counts in log:\n%s", logs)
	}
	if strings.Contains(logs, "transcribing a") {
		t.Error("completed file was transcribed again")
	}
}

func TestRunFailFastExitCode(t *testing.T) {
	e := setup(t, "")
	writeFile(t, filepath.Join(e.input, "1-first.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "2-broken.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "3-third.mp4"), "x", 0644)

	code := run(context.Background(), []string{"--config", e.config, "-o", e.output, e.input})
	if code != exitFailure {
		t.Fatalf("run() = %d, want %d", code, exitFailure)
	}

	logs := logContents(t, e.output)
	if !strings.Contains(logs, "1-first.mp4 done in") {
		t.Error("log should record the first completion")
	}
	if strings.Contains(logs, "3-third") {
		t.Error("third file should never be invoked")
	}
	if _, err := os.Stat(filepath.Join(e.output, "3-third.txt")); !os.IsNotExist(err) {
		t.Error("third file has an artifact")
	}
}

func TestRunContinueOnError(t *testing.T) {
	e := setup(t, "")
	writeFile(t, filepath.Join(e.input, "1-first.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "2-broken.mp4"), "x", 0644)
	writeFile(t, filepath.Join(e.input, "3-third.mp4"), "x", 0644)

	code := run(context.Background(), []string{"--config", e.config, "-o", e.output, "--continue-on-error", e.input})
	if code != exitFailure {
		t.Fatalf("run() = %d, want %d", code, exitFailure)
	}
	if _, err := os.Stat(filepath.Join(e.output, "3-third.txt")); err != nil {
		t.Errorf("third file should be transcribed under continue policy: %v", err)
	}
}

func TestRunDiarizeWithoutToken(t *testing.T) {
	e := setup(t, "  whisperx_binary: sh\n  token_env: TRANSCRIBE_TEST_TOKEN\n")
	t.Setenv("TRANSCRIBE_TEST_TOKEN", "")
	writeFile(t, filepath.Join(e.input, "a.mp4"), "x", 0644)

	code := run(context.Background(), []string{"--config", e.config, "-o", e.output, e.input, "small", "en", "", "true"})
	if code != exitUsage {
		t.Fatalf("run() = %d, want %d", code, exitUsage)
	}
	if _, err := os.Stat(e.output); !os.IsNotExist(err) {
		t.Error("output directory must not be created when preconditions fail")
	}
}

func TestRunMissingInput(t *testing.T) {
	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	if code != exitUsage {
		t.Errorf("run() = %d, want %d", code, exitUsage)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"config", &config.ConfigError{Arg: "input_folder", Message: "required"}, exitUsage},
		{"precondition", &engine.PreconditionError{Requirement: "token"}, exitUsage},
		{"invocation", &engine.InvocationError{Engine: "whisper", File: "a.mp4", ExitCode: 1, Err: errors.New("exit status 1")}, exitFailure},
		{"batch", fmt.Errorf("%w: 1 of 3 files", processor.ErrBatchFailed), exitFailure},
		{"interrupted", fmt.Errorf("run: %w", context.Canceled), exitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
