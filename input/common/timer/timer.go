// Package timer paces sources that can produce audio faster than real time so
// that buffers arrive at the rate a capture device would deliver them.
package timer

import (
	"context"
	"time"

	"github.com/noriah/ringvis/input"
)

// Interval returns the duration of one buffer.
func Interval(cfg input.SessionConfig) time.Duration {
	if cfg.SampleRate <= 0 {
		return time.Second
	}

	return time.Duration(float64(cfg.SampleSize) / cfg.SampleRate * float64(time.Second))
}

// Process calls callback once per buffer interval until ctx is done or the
// callback returns an error. Ticks missed while the callback runs are dropped
// rather than queued.
func Process(ctx context.Context, cfg input.SessionConfig, callback func() error) error {
	ticker := time.NewTicker(Interval(cfg))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if err := callback(); err != nil {
				return err
			}
		}
	}
}
