package watchdog

import (
	"context"
	"log/slog"
	"time"
)

// NewWatchdog calls timeout when nothing arrives on input for a whole
// interval. It returns when ctx is done, input is closed or timeout returns
// an error.
func NewWatchdog[T any](ctx context.Context, name string, interval time.Duration, timeout func() error, input <-chan T) func() error {
	return func() error {
		t := time.NewTicker(interval)
		defer t.Stop()
		awake := true
		slog.Debug("watchdog started", "watchdog", name, "timeout", interval)
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-input:
				if !ok {
					return nil
				}
				awake = true
			case <-t.C:
				if !awake {
					slog.Error("watchdog timeout", "watchdog", name, "timeout", interval)
					if err := timeout(); err != nil {
						return err
					}
				}
				awake = false
			}
		}
	}
}
