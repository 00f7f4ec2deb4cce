package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/transcribe-batch/internal/config"
	"github.com/nguyentantai21042004/transcribe-batch/internal/engine"
	"github.com/nguyentantai21042004/transcribe-batch/internal/media"
)

// Run orchestrates the batch: skip filter, then one engine call per file
func (p *implProcessor) Run(ctx context.Context, files []media.File) (Summary, error) {
	startTime := time.Now()
	summary := Summary{Total: len(files)}

	pending, summary := p.pending(ctx, files, summary)
	p.logger.Info(ctx, "Found %d files: %d already transcribed, %d to process",
		summary.Total, summary.Skipped, len(pending))

	finish := func(s Summary, err error) (Summary, error) {
		s.Elapsed = time.Since(startTime)
		p.logSummary(ctx, s)
		return s, err
	}

	for i, file := range pending {
		if err := ctx.Err(); err != nil {
			p.logger.Warn(ctx, "Interrupted before %s", file.RelPath())
			return finish(summary, err)
		}

		// An earlier file in this run may have produced the same artifact
		// (talk.mkv and talk.mp4 both map to talk.txt).
		if target := p.target(file); media.IsComplete(target) {
			p.logger.Warn(ctx, "[%d/%d] Skip %s: %s was already written in this run", i+1, len(pending), file.RelPath(), target.ArtifactPath)
			summary.Skipped++
			continue
		}

		err := p.process(ctx, file, i+1, len(pending))
		if err == nil {
			summary.Processed++
			continue
		}

		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Interrupted while transcribing %s", file.RelPath())
			return finish(summary, ctx.Err())
		}

		summary = summary.recordFailure(file.RelPath(), err)
		if p.cfg.Settings.Batch.FailurePolicy != config.Continue {
			p.logger.Error(ctx, "Aborting batch: %v", err)
			return finish(summary, err)
		}
		p.logger.Error(ctx, "Continuing after failure: %v", err)
	}

	if summary.Failed > 0 {
		return finish(summary, fmt.Errorf("%w: %d of %d files", ErrBatchFailed, summary.Failed, len(pending)))
	}
	return finish(summary, nil)
}

// pending drops files that already have a transcript.
func (p *implProcessor) pending(ctx context.Context, files []media.File, summary Summary) ([]media.File, Summary) {
	var out []media.File
	for _, file := range files {
		target := p.target(file)
		if media.IsComplete(target) {
			p.logger.Debug(ctx, "Skip (exists): %s", file.RelPath())
			summary.Skipped++
			continue
		}
		out = append(out, file)
	}
	return out, summary
}

// process transcribes one file into its mirrored output directory.
func (p *implProcessor) process(ctx context.Context, file media.File, index, total int) error {
	target := p.target(file)
	name := file.RelPath()

	p.logger.Info(ctx, "[%d/%d] Transcribing: %s", index, total, name)

	if err := os.MkdirAll(target.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", target.Dir, err)
	}

	opts := engine.Options{
		Model:        p.cfg.Model.Name,
		ModelSize:    p.cfg.ModelSize,
		Language:     p.cfg.Model.LanguageFlag,
		Device:       p.device.EngineArg(),
		OutputDir:    target.Dir,
		OutputFormat: p.cfg.Settings.Engine.OutputFormat,
	}

	start := time.Now()
	if err := p.engine.Transcribe(ctx, file.Path, opts, p.logger.Writer()); err != nil {
		return err
	}

	p.logger.Info(ctx, "[%d/%d] %s done in %s", index, total, name, time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *implProcessor) target(file media.File) media.Target {
	return media.TargetFor(file, p.cfg.OutputPath, p.cfg.Settings.Batch.PrimaryExtension)
}

func (p *implProcessor) logSummary(ctx context.Context, s Summary) {
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processed: %d", s.Processed)
	p.logger.Info(ctx, "Skipped:   %d", s.Skipped)
	if s.Failed > 0 {
		p.logger.Warn(ctx, "Failed:    %d", s.Failed)
		for _, f := range s.Failures {
			p.logger.Warn(ctx, "  %s: %v", f.File, f.Err)
		}
	}
	p.logger.Info(ctx, "Elapsed:   %s", s.Elapsed.Round(time.Second))
	p.logger.Info(ctx, "========================================")
}
