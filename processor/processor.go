// Package processor turns captured audio buffers in to level snapshots.
package processor

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/noriah/ringvis/dsp"
)

// DefaultEventBuffer is the number of pending events held before new ones are
// dropped.
const DefaultEventBuffer = 64

// Config configures a Peak processor.
type Config struct {
	ChannelCount int          // channels per interleaved frame
	Tracker      *dsp.Tracker // where snapshots are published
	EventBuffer  int          // pending event capacity
	Logger       *log.Logger  // event log. log.Default() when nil
}

// Peak computes per-channel peak amplitude for every buffer handed to Process
// and publishes it to a tracker.
//
// Process runs on the audio backend's callback thread. It never allocates,
// logs or blocks past the tracker's critical section. Anything worth
// reporting is posted as an Event and logged by the goroutine started with
// Start.
type Peak struct {
	channels int
	tracker  *dsp.Tracker
	logger   *log.Logger

	events chan Event

	buffers atomic.Uint64
	skipped atomic.Uint64
	dropped atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a new Peak processor.
func New(cfg Config) *Peak {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}

	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Peak{
		channels: cfg.ChannelCount,
		tracker:  cfg.Tracker,
		logger:   cfg.Logger,
		events:   make(chan Event, cfg.EventBuffer),
	}
}

// Process handles one buffer of interleaved samples.
//
// An empty buffer, or one shorter than a frame, publishes nothing. The
// previous snapshot stays in place and capture continues with the next buffer.
func (p *Peak) Process(in []float32) {
	n := p.buffers.Add(1)

	var levels dsp.Levels

	if dsp.Peaks(&levels, in, p.channels) == 0 {
		p.skipped.Add(1)

		kind := EventNilBuffer
		if len(in) > 0 {
			kind = EventShortBuffer
		}

		p.post(Event{Kind: kind, Buffer: n, Samples: len(in)})
		return
	}

	p.tracker.Publish(levels)
}

func (p *Peak) post(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.dropped.Add(1)
	}
}

// Buffers returns the number of buffers handed to Process.
func (p *Peak) Buffers() uint64 {
	return p.buffers.Load()
}

// Skipped returns the number of buffers that published nothing.
func (p *Peak) Skipped() uint64 {
	return p.skipped.Load()
}

// Dropped returns the number of events lost because the queue was full.
func (p *Peak) Dropped() uint64 {
	return p.dropped.Load()
}

// Start launches the event logger. The returned context is cancelled by Stop.
func (p *Peak) Start(ctx context.Context) context.Context {
	p.ctx, p.cancel = context.WithCancel(ctx)

	go p.drain(p.ctx)

	return p.ctx
}

// Stop stops the event logger.
func (p *Peak) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Peak) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-p.events:
			p.logger.Printf("%v (skipped %d, events dropped %d)",
				ev, p.Skipped(), p.Dropped())
		}
	}
}
