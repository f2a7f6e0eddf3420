package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single call once no
// trigger has arrived for the configured quiet period. Index rewrites
// touch several files in quick succession; the reload should run once,
// after the last of them.
type Debouncer struct {
	quiet   time.Duration
	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger arms the timer, replacing any pending call. The most recent
// function wins.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
