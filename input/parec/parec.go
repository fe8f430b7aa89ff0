// Package parec captures from PulseAudio (or PipeWire's pulse server) through
// the parec command.
package parec

import (
	"fmt"
	"strconv"

	"github.com/lawl/pulseaudio"
	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/common/execread"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("parec", Backend{})
}

type Backend struct{}

func (p Backend) Init() error {
	return nil
}

func (p Backend) Close() error {
	return nil
}

func (p Backend) Devices() ([]input.Device, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	defer c.Close()

	s, err := c.Sources()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sources")
	}

	var devices = make([]input.Device, len(s))
	for i, source := range s {
		devices[i] = PulseDevice(source.Name)
	}

	return devices, nil
}

func (p Backend) DefaultDevice() (input.Device, error) {
	return PulseDevice("@DEFAULT_SOURCE@"), nil
}

func (p Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

type PulseDevice string

func (d PulseDevice) String() string {
	return string(d)
}

// Args returns the parec command line for the config.
func Args(cfg input.SessionConfig) ([]string, error) {
	dv, ok := cfg.Device.(PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	// parec buffers in bytes
	latency := cfg.SampleSize * cfg.FrameSize * 4

	return []string{
		"parec",
		"--format=float32le",
		fmt.Sprintf("--rate=%.0f", cfg.SampleRate),
		fmt.Sprintf("--channels=%d", cfg.FrameSize),
		"--latency=" + strconv.Itoa(latency),
		"-d", dv.String(),
	}, nil
}

func NewSession(cfg input.SessionConfig) (*execread.Session, error) {
	argv, err := Args(cfg)
	if err != nil {
		return nil, err
	}

	return execread.NewSession(argv, true, cfg), nil
}
