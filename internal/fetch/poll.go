package fetch

import (
	"context"
	"time"
)

// Poll runs fn immediately and then on every tick until ctx is cancelled.
// The page owning the poller cancels the context when it is left, so no
// refresh outlives its view.
func Poll(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			fn(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
