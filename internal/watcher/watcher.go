// Package watcher reloads the knowledge base when index files change
// on disk.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called once per debounced batch of index changes.
type ReloadFunc func() error

// Watcher watches an index directory and triggers a reload after a
// quiet period. Writers typically replace several corpus files in a
// row, so individual events are debounced into one reload.
type Watcher struct {
	dir       string
	reload    ReloadFunc
	logger    *slog.Logger
	debouncer *Debouncer
	fsw       *fsnotify.Watcher

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu       sync.RWMutex
	watching bool
}

// New creates a watcher over dir. Call Start to begin watching.
func New(dir string, debounce time.Duration, reload ReloadFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:       dir,
		reload:    reload,
		logger:    logger,
		debouncer: NewDebouncer(debounce),
		fsw:       fsw,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the index directory and all subdirectories.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.addRecursive(w.dir); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents(ctx)

	w.logger.Info("Watching index directory",
		"dir", w.dir,
	)

	return nil
}

// Stop stops the watcher and cancels any pending reload.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
		w.debouncer.Cancel()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()

		w.wg.Wait()
	})
}

// IsWatching returns true while the event loop is active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

// addRecursive adds dir and all subdirectories to the watch list.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}

// isIndexFile reports whether a change to path should trigger a reload.
func isIndexFile(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// processEvents drains fsnotify events and schedules debounced reloads.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// New subdirectories must be added to the watch list
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(event.Name)
					continue
				}
			}

			if !isIndexFile(event.Name) {
				continue
			}

			w.logger.Debug("Index file changed",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debouncer.Trigger(w.doReload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error",
				"error", err.Error(),
			)
		}
	}
}

// doReload runs the reload callback and logs the outcome.
func (w *Watcher) doReload() {
	w.logger.Info("Index changed, reloading")

	if err := w.reload(); err != nil {
		w.logger.Error("Reload failed",
			"error", err.Error(),
		)
		return
	}

	w.logger.Info("Reload complete")
}
