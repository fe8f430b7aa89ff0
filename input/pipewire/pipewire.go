// Package pipewire captures from PipeWire sources through pw-cat.
package pipewire

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/common/execread"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("pipewire", Backend{})
}

type Backend struct{}

func (p Backend) Init() error {
	return nil
}

func (p Backend) Close() error {
	return nil
}

func (p Backend) Devices() ([]input.Device, error) {
	pwObjs, err := pwDump(context.Background())
	if err != nil {
		return nil, err
	}

	return sourceDevices(pwObjs), nil
}

func sourceDevices(objs pwObjects) []input.Device {
	sources := objs.Sources()

	devices := make([]input.Device, len(sources))
	for i, source := range sources {
		devices[i] = AudioDevice{
			name:     source.Info.Props.NodeName,
			channels: source.Info.Props.AudioChannels,
		}
	}

	return devices
}

func (p Backend) DefaultDevice() (input.Device, error) {
	return AudioDevice{name: "auto"}, nil
}

func (p Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// AudioDevice is a PipeWire source node.
type AudioDevice struct {
	name     string
	channels int
}

func (d AudioDevice) String() string {
	return d.name
}

// Channels is the node's channel count, or 0 when unknown.
func (d AudioDevice) Channels() int {
	return d.channels
}

// Args returns the pw-cat command line for the config.
func Args(cfg input.SessionConfig, rawArg bool) ([]string, error) {
	dv, ok := cfg.Device.(AudioDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	args := []string{
		"pw-cat",
		"--record",
		"--format", "f32",
		"--rate", fmt.Sprint(cfg.SampleRate),
		"--latency", fmt.Sprint(cfg.SampleSize),
		"--channels", fmt.Sprint(cfg.FrameSize),
		"--target", dv.name,
		"--media-category", "Capture",
		"--media-role", "DSP",
		"--properties", `{"application.name":"ringvis"}`,
	}

	if rawArg {
		args = append(args, "--raw")
	}

	// output to STDOUT
	return append(args, "-"), nil
}

// NewSession creates a new PipeWire session.
func NewSession(cfg input.SessionConfig) (*execread.Session, error) {
	// pw-cat 1.4.0 introduces explicit stdout support, needs --raw arg
	// see https://gitlab.freedesktop.org/pipewire/pipewire/-/issues/4629#top
	useRawArg, err := checkNeedRawArg()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check need of pipewire '--raw' arg")
	}

	args, err := Args(cfg, useRawArg)
	if err != nil {
		return nil, err
	}

	return execread.NewSession(args, true, cfg), nil
}

func checkNeedRawArg() (bool, error) {
	out, err := exec.Command("pw-cat", "--help").Output()
	if err != nil {
		return false, err
	}

	return strings.Contains(string(out), "--raw"), nil
}
