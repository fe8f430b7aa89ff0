package dsp

import "sync"

// MaxChannels is the number of channels a Levels snapshot holds.
const MaxChannels = 8

// Levels is the peak absolute amplitude of each channel over one buffer.
type Levels [MaxChannels]float32

// Tracker holds the most recently published Levels. It is written by the
// audio thread and read by the render thread.
//
// The zero value is ready to use and reads as silence.
type Tracker struct {
	mu     sync.Mutex
	levels Levels
}

// NewTracker returns a tracker holding silence.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Publish replaces the stored snapshot.
//
// The lock is held only for the copy. Safe to call from a real-time callback.
func (t *Tracker) Publish(l Levels) {
	t.mu.Lock()
	t.levels = l
	t.mu.Unlock()
}

// Read returns a copy of the stored snapshot.
func (t *Tracker) Read() Levels {
	t.mu.Lock()
	l := t.levels
	t.mu.Unlock()
	return l
}
