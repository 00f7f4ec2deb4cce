package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/transcribe-batch/internal/config"
	"github.com/nguyentantai21042004/transcribe-batch/internal/device"
	"github.com/nguyentantai21042004/transcribe-batch/internal/engine"
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
	"github.com/nguyentantai21042004/transcribe-batch/internal/media"
	"github.com/nguyentantai21042004/transcribe-batch/internal/processor"
	"github.com/nguyentantai21042004/transcribe-batch/internal/summarizer"
	"github.com/nguyentantai21042004/transcribe-batch/internal/watcher"
	"github.com/nguyentantai21042004/transcribe-batch/pkg/executor"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	// Resolve arguments
	rc, err := config.ParseArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stdout, config.Usage())
		return exitOK
	}
	if err != nil {
		logger.New("error").Error(ctx, "%v", err)
		fmt.Fprintf(os.Stderr, "\n%s", config.Usage())
		return exitCode(err)
	}

	console := logger.New(rc.Settings.Logging.Level)

	// Diarization needs whisperx and a token; check before touching anything
	var token string
	if rc.Diarize {
		token, err = engine.Preflight(rc.Settings.Engine.WhisperXBinary, rc.Settings.Engine.TokenEnv)
		if err != nil {
			console.Error(ctx, "%v", err)
			return exitCode(err)
		}
	}

	// Initialize session logger
	start := time.Now()
	logDir := rc.Settings.Logging.Dir
	if logDir == "" {
		logDir = rc.OutputPath
	}
	log, logPath, err := logger.NewSession(logDir, rc.Settings.Logging.Level, start)
	if err != nil {
		console.Error(ctx, "Cannot start session log: %v", err)
		return exitFailure
	}
	defer log.Close()

	// Initialize dependencies
	exec := executor.New()
	dev := device.New(exec, log, rc.Settings.Engine.Device).Probe(ctx)

	var eng engine.Engine
	if rc.Diarize {
		eng = engine.NewDiarized(exec, log, rc.Settings.Engine.WhisperXBinary, token)
	} else {
		eng = engine.NewStandard(exec, log, rc.Settings.Engine.WhisperBinary)
	}
	proc := processor.New(rc, dev, eng, log)

	logBanner(ctx, log, rc, dev, eng, start, logPath)

	err = runBatch(ctx, rc, proc, log)
	if err == nil && rc.Watch {
		err = watch(ctx, rc, proc, log)
	}

	switch {
	case err == nil:
		log.Info(ctx, "All done")
	case errors.Is(err, context.Canceled):
		log.Warn(ctx, "Interrupted; completed files are kept and will be skipped next run")
	default:
		log.Error(ctx, "%v", err)
	}
	return exitCode(err)
}

// runBatch enumerates the input tree and transcribes what is missing.
func runBatch(ctx context.Context, rc *config.RunConfig, proc processor.Processor, log logger.Logger) error {
	files, err := media.Enumerate(rc.InputPath, rc.Extension)
	if err != nil {
		return fmt.Errorf("enumerate %s: %w", rc.InputPath, err)
	}

	if _, err := proc.Run(ctx, files); err != nil {
		return err
	}

	if rc.Summarize {
		summarize(ctx, rc, log)
	}
	return nil
}

// summarize is best effort: problems are logged, never returned.
func summarize(ctx context.Context, rc *config.RunConfig, log logger.Logger) {
	keys := summarizer.KeysFromEnv(rc.Settings.Summarizer.APIKeysEnv)
	if len(keys) == 0 {
		log.Warn(ctx, "Skipping summaries: %s is not set", rc.Settings.Summarizer.APIKeysEnv)
		return
	}

	s := summarizer.New(keys, rc.Settings.Summarizer.Model, rc.Settings.Batch.PrimaryExtension, log)
	if _, err := s.SummarizeAll(ctx, rc.OutputPath); err != nil {
		log.Warn(ctx, "Summaries incomplete: %v", err)
	}
}

// watch re-runs the batch whenever new media shows up in the input tree.
func watch(ctx context.Context, rc *config.RunConfig, proc processor.Processor, log logger.Logger) error {
	handler := func(ctx context.Context) error {
		err := runBatch(ctx, rc, proc, log)
		if errors.Is(err, processor.ErrBatchFailed) {
			log.Warn(ctx, "%v; still watching", err)
			return nil
		}
		return err
	}

	w, err := watcher.New(rc.InputPath, rc.Extension, handler, log, rc.Settings.Watch.SettleDelay)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Press Ctrl+C to stop")
	return w.Start(ctx)
}

func logBanner(ctx context.Context, log logger.Logger, rc *config.RunConfig, dev device.Device, eng engine.Engine, start time.Time, logPath string) {
	diarization := "off"
	if rc.Diarize {
		diarization = "on (" + rc.Settings.Engine.TokenEnv + " set)"
	}
	language := rc.Model.LanguageFlag
	if language == "" {
		language = "auto"
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Batch Transcription")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Session: %s", uuid.NewString())
	log.Info(ctx, "Started: %s", start.Format(time.RFC3339))
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Input: %s", rc.InputPath)
	log.Info(ctx, "Output: %s", rc.OutputPath)
	log.Info(ctx, "Log file: %s", logPath)
	log.Info(ctx, "Engine: %s", eng.Name())
	log.Info(ctx, "Model: %s", rc.Model.Name)
	log.Info(ctx, "Language: %s [%s]", rc.Model.Description, language)
	log.Info(ctx, "Device: %s", dev)
	log.Info(ctx, "Diarization: %s", diarization)
	if rc.Extension != "" {
		log.Info(ctx, "Extension filter: .%s", rc.Extension)
	}
	log.Info(ctx, "Failure policy: %s", rc.Settings.Batch.FailurePolicy)
	log.Info(ctx, "========================================")
}

func exitCode(err error) int {
	var (
		cfgErr *config.ConfigError
		preErr *engine.PreconditionError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &cfgErr), errors.As(err, &preErr):
		return exitUsage
	default:
		return exitFailure
	}
}
