package watcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
)

func newTestWatcher(t *testing.T, dir, filter string, handler EventHandler) *implWatcher {
	t.Helper()
	w, err := New(dir, filter, handler, logger.NewWriter("debug", &bytes.Buffer{}), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w.(*implWatcher)
}

func TestNewWatchesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "a/b", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	w := newTestWatcher(t, dir, "", func(context.Context) error { return nil })

	got := w.watcher.WatchList()
	sort.Strings(got)
	want := []string{dir, filepath.Join(dir, "a"), filepath.Join(dir, "a", "b")}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("WatchList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WatchList()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, "", func(context.Context) error { return nil })
	ctx := context.Background()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"created mp4", fsnotify.Event{Name: filepath.Join(dir, "a.mp4"), Op: fsnotify.Create}, true},
		{"written wav", fsnotify.Event{Name: filepath.Join(dir, "a.wav"), Op: fsnotify.Write}, true},
		{"created txt", fsnotify.Event{Name: filepath.Join(dir, "a.txt"), Op: fsnotify.Create}, false},
		{"removed mp4", fsnotify.Event{Name: filepath.Join(dir, "a.mp4"), Op: fsnotify.Remove}, false},
		{"chmod mp4", fsnotify.Event{Name: filepath.Join(dir, "a.mp4"), Op: fsnotify.Chmod}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(ctx, tt.event); got != tt.want {
				t.Errorf("relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelevantHonorsFilter(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, "mkv", func(context.Context) error { return nil })

	if w.relevant(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "a.mp4"), Op: fsnotify.Create}) {
		t.Error("mp4 should be ignored with an mkv filter")
	}
	if !w.relevant(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "a.mkv"), Op: fsnotify.Create}) {
		t.Error("mkv should be relevant with an mkv filter")
	}
}

func TestStartRunsHandlerAfterNewMedia(t *testing.T) {
	dir := t.TempDir()
	called := make(chan struct{}, 4)
	w := newTestWatcher(t, dir, "", func(context.Context) error {
		called <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watch loop a moment before producing events.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "talk.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
