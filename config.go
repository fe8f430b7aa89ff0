package ringvis

import (
	"github.com/noriah/ringvis/display/raw"
	"github.com/noriah/ringvis/dsp"
	"github.com/noriah/ringvis/graphic"
	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/processor"
	"github.com/pkg/errors"
)

// Display names
const (
	DisplayOverlay  = "overlay"
	DisplayTerminal = "terminal"
	DisplayRaw      = "raw"
)

// ErrInvalidConfig is the cause of every Validate error.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// The name of the backend from the input package
	Backend string
	// The name or index of the device to pull data from
	Device string
	// The rate that samples are read
	SampleRate float64
	// The number of frames per buffer
	SampleSize int
	// The number of interleaved channels to capture
	ChannelCount int
	// Pending diagnostics held before new ones are dropped
	EventBuffer int

	// Number of ring segments. Segments past the channel count wrap around.
	Segments int
	// Ring radii in clip space
	InnerRadius float32
	OuterRadius float32
	// Radians added to every segment angle
	Rotation float32
	// Base color of the ring
	Color graphic.Color

	// Where to draw, DisplayOverlay, DisplayTerminal or DisplayRaw
	Display string
	// Lines per second for DisplayRaw. The other displays follow the screen.
	FrameRate int
}

// NewZeroConfig returns the default config: an eight segment ring driven by
// eight channels at 48kHz in 512 frame buffers.
func NewZeroConfig() Config {
	ring := graphic.DefaultRingConfig()

	return Config{
		Backend:      input.DefaultBackend(),
		SampleRate:   48000,
		SampleSize:   512,
		ChannelCount: dsp.MaxChannels,
		EventBuffer:  processor.DefaultEventBuffer,
		Segments:     ring.Segments,
		InnerRadius:  ring.InnerRadius,
		OuterRadius:  ring.OuterRadius,
		Rotation:     ring.Rotation,
		Color:        graphic.Red,
		Display:      DisplayOverlay,
		FrameRate:    raw.DefaultFrameRate,
	}
}

func (cfg *Config) Validate() error {
	if cfg.SampleRate < float64(cfg.SampleSize) {
		return errors.Wrap(ErrInvalidConfig, "sample rate lower than sample size")
	}

	if cfg.SampleSize < 4 {
		return errors.Wrap(ErrInvalidConfig, "sample size too small (4+ required)")
	}

	switch {
	case cfg.ChannelCount > dsp.MaxChannels:
		return errors.Wrapf(ErrInvalidConfig, "too many channels (%d max)", dsp.MaxChannels)

	case cfg.ChannelCount < 1:
		return errors.Wrap(ErrInvalidConfig, "too few channels (1 min)")

	case cfg.Segments < 1:
		return errors.Wrap(ErrInvalidConfig, "too few segments (1 min)")

	case cfg.InnerRadius < 0:
		return errors.Wrap(ErrInvalidConfig, "negative inner radius")

	case cfg.InnerRadius >= cfg.OuterRadius:
		return errors.Wrap(ErrInvalidConfig, "inner radius must be less than outer radius")
	}

	if cfg.FrameRate < 0 {
		return errors.Wrap(ErrInvalidConfig, "negative frame rate")
	}

	switch cfg.Display {
	case DisplayOverlay, DisplayTerminal, DisplayRaw:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown display %q", cfg.Display)
	}

	return nil
}

// Ring returns the geometry for the config. The ring is centered.
func (cfg *Config) Ring() graphic.RingConfig {
	return graphic.RingConfig{
		InnerRadius: cfg.InnerRadius,
		OuterRadius: cfg.OuterRadius,
		Segments:    cfg.Segments,
		Rotation:    cfg.Rotation,
	}
}
