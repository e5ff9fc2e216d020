// Package fetch provides the concurrency primitives the UI uses around
// backend calls: debounced input handling, last-write-wins sequencing of
// racing responses, and interval polling.
package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period incremental search waits for before
// issuing a request.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs a task once its input has been quiet for the wait interval.
// Triggering again cancels the pending task, so only the latest input fires.
type Debouncer struct {
	wait time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait}
}

// Trigger schedules fn with the given input after the quiet period,
// cancelling any run still pending. fn receives a context that is cancelled
// when a newer input arrives or the parent context ends.
func (d *Debouncer) Trigger(ctx context.Context, input string, fn func(ctx context.Context, input string)) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	go func() {
		timer := time.NewTimer(d.wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			fn(ctx, input)
		}
	}()
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
