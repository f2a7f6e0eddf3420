package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"flexkb/internal/slogutil"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls int32
	d := NewDebouncer(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	}

	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("calls = %d, want 0 after cancel", got)
	}
}

func TestIsIndexFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"flexlibs/flexlibs2_api.json", true},
		{"synonyms.yaml", true},
		{"overrides.yml", true},
		{"notes.txt", false},
		{"index.json.tmp", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		if got := isIndexFile(tt.path); got != tt.want {
			t.Errorf("isIndexFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherTriggersReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "flexlibs"), 0o755); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := New(dir, 50*time.Millisecond, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	}, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !w.IsWatching() {
		t.Fatal("watcher should be active after Start")
	}

	path := filepath.Join(dir, "flexlibs", "flexlibs2_api.json")
	if err := os.WriteFile(path, []byte(`{"entities": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("reload was not triggered")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	reloaded := make(chan struct{}, 1)
	w, err := New(dir, 30*time.Millisecond, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	}, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("reload should not fire for non-index files")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), time.Millisecond, func() error { return nil }, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	w.Stop()
	w.Stop()

	if w.IsWatching() {
		t.Error("watcher should be stopped")
	}
}
