package ffmpeg

import (
	"fmt"

	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/parec"
)

func init() {
	input.RegisterBackend("ffmpeg-pulse", Pulse{})
}

// Pulse is the pulse input for FFmpeg. Devices are listed like parec's.
type Pulse struct {
	parec.Backend
}

func (p Pulse) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(parec.PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return startSession(PulseDevice(dv), cfg)
}

// PulseDevice is a pulse source read by ffmpeg.
type PulseDevice parec.PulseDevice

func (d PulseDevice) InputArgs() []string {
	return []string{"-f", "pulse", "-i", string(d)}
}
