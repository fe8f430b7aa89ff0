package input

import "context"

// Sample is the datatype we want from our inputs
type Sample = float32

// SessionConfig is the stream layout a backend is asked to capture.
type SessionConfig struct {
	Device     Device
	FrameSize  int     // number of channels per frame
	SampleSize int     // number of frames per buffer
	SampleRate float64 // frames per second
}

// Device is a capture device of some backend.
type Device interface {
	String() string
}

// Processor receives each captured buffer of interleaved samples.
//
// Process may be called from a real-time audio thread. It must return quickly
// and must not keep the slice, which is reused for the next buffer.
type Processor interface {
	Process([]Sample)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func([]Sample)

// Process calls f(buf).
func (f ProcessorFunc) Process(buf []Sample) {
	f(buf)
}

// Session is an open capture stream.
type Session interface {
	// Start begins delivering buffers to proc. Once Start returns nil capture
	// runs on its own until ctx is done or Stop is called.
	Start(ctx context.Context, proc Processor) error
	// Wait blocks until capture ends. A nil error means it was stopped.
	Wait() error
	// Stop ends capture and releases the stream.
	Stop() error
}

// MakeBuffer returns an interleaved buffer sized for one callback.
func MakeBuffer(cfg SessionConfig) []Sample {
	return make([]Sample, cfg.SampleSize*cfg.FrameSize)
}
