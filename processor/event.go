package processor

import "fmt"

// EventKind identifies a transient capture condition.
type EventKind int

// Event kinds
const (
	// EventNilBuffer means the backend handed over no samples at all.
	EventNilBuffer EventKind = iota
	// EventShortBuffer means the buffer did not hold a single full frame.
	EventShortBuffer
)

func (k EventKind) String() string {
	switch k {
	case EventNilBuffer:
		return "empty input buffer"
	case EventShortBuffer:
		return "short input buffer"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a fixed-size report posted from the audio callback.
type Event struct {
	Kind    EventKind
	Buffer  uint64 // buffer sequence number, starting at 1
	Samples int    // samples in the offending buffer
}

func (ev Event) String() string {
	return fmt.Sprintf("buffer %d: %v (%d samples)", ev.Buffer, ev.Kind, ev.Samples)
}
