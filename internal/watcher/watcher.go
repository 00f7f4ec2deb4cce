package watcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
	"github.com/nguyentantai21042004/transcribe-batch/internal/media"
)

type implWatcher struct {
	inputDir string
	filter   string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
}

// Start monitors the input tree and runs the handler once new media files
// stop changing for the settle delay. It returns when ctx is cancelled or
// the handler fails.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for new media: %s", w.inputDir)

	// settled is nil until a relevant event arrives.
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(ctx, event) {
				continue
			}
			// Restart the settle window; copies in progress keep pushing it out.
			settled = time.After(w.settle)

		case <-settled:
			settled = nil
			w.logger.Info(ctx, "New media settled, running batch")
			if err := w.handler(ctx); err != nil {
				return err
			}
			w.logger.Info(ctx, "Watching for new media: %s", w.inputDir)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// relevant registers new directories and reports whether event concerns a
// media file the batch would pick up.
func (w *implWatcher) relevant(ctx context.Context, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := addRecursive(w.watcher, event.Name); err != nil {
				w.logger.Warn(ctx, "Cannot watch new folder %s: %v", event.Name, err)
			} else {
				w.logger.Debug(ctx, "Watching new folder: %s", event.Name)
			}
			// Files may have landed before the watch was added.
			return true
		}
		return false
	}

	if !media.IsMediaFile(event.Name, w.filter) {
		w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
		return false
	}

	w.logger.Debug(ctx, "Media event %s: %s", event.Op, event.Name)
	return true
}
