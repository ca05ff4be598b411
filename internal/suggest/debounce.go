package suggest

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces rapid-fire inputs (one per keystroke) into a single
// task after a quiet period. A new submission cancels both the pending
// timer and the context of any task already running, so at most one task
// per key is ever live.
type Debouncer struct {
	mu      sync.Mutex
	window  func() time.Duration
	pending map[string]*debounceEntry
}

type debounceEntry struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewDebouncer(window func() time.Duration) *Debouncer {
	return &Debouncer{window: window, pending: make(map[string]*debounceEntry)}
}

// Submit schedules task to run after the quiet window, replacing any
// pending or in-flight task under the same key. The task receives a
// context that is cancelled when superseded or when Stop is called.
func (d *Debouncer) Submit(key string, task func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	entry := &debounceEntry{cancel: cancel}
	entry.timer = time.AfterFunc(d.window(), func() {
		defer cancel()
		task(ctx)

		d.mu.Lock()
		if d.pending[key] == entry {
			delete(d.pending, key)
		}
		d.mu.Unlock()
	})
	d.pending[key] = entry
}

// Cancel drops any pending or running task for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry, ok := d.pending[key]; ok {
		entry.timer.Stop()
		entry.cancel()
		delete(d.pending, key)
	}
}

// Stop cancels everything. Used on shutdown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, entry := range d.pending {
		entry.timer.Stop()
		entry.cancel()
		delete(d.pending, key)
	}
}
