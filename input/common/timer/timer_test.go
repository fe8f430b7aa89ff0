package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noriah/ringvis/input"
)

func TestInterval(t *testing.T) {
	cfg := input.SessionConfig{SampleSize: 480, SampleRate: 48000}
	if got := Interval(cfg); got != 10*time.Millisecond {
		t.Fatalf("Interval = %v, want 10ms", got)
	}

	if got := Interval(input.SessionConfig{}); got != time.Second {
		t.Fatalf("Interval with no rate = %v", got)
	}
}

func TestProcessStopsOnError(t *testing.T) {
	cfg := input.SessionConfig{SampleSize: 1, SampleRate: 1000}
	stop := errors.New("stop")

	calls := 0
	err := Process(context.Background(), cfg, func() error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})

	if err != stop || calls != 3 {
		t.Fatalf("err = %v after %d calls", err, calls)
	}
}

func TestProcessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := input.SessionConfig{SampleSize: 1, SampleRate: 1000}

	err := Process(ctx, cfg, func() error {
		cancel()
		return nil
	})

	if err != nil {
		t.Fatalf("err = %v", err)
	}
}
