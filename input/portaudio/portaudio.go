// Package portaudio captures from a PortAudio input device through the
// stream callback.
package portaudio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/noriah/ringvis/input"
	"github.com/pkg/errors"
)

var GlobalBackend = &Backend{}

func init() {
	input.RegisterBackend("portaudio", GlobalBackend)
}

// Backend represents the Portaudio backend. A zero-value instance is a
// valid instance.
type Backend struct {
	initialized bool
	devices     []*portaudio.DeviceInfo
}

func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return err
	}

	b.initialized = true
	return nil
}

func (b *Backend) Close() error {
	if !b.initialized {
		return nil
	}

	b.initialized = false
	b.devices = nil
	return portaudio.Terminate()
}

// Devices lists the devices that can capture.
func (b *Backend) Devices() ([]input.Device, error) {
	if b.devices == nil {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, err
		}

		for _, device := range devices {
			if device.MaxInputChannels > 0 {
				b.devices = append(b.devices, device)
			}
		}
	}

	var gDevices = make([]input.Device, len(b.devices))
	for i, device := range b.devices {
		gDevices[i] = Device{device}
	}

	return gDevices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default input device")
	}

	return Device{device}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Device represents a Portaudio device.
type Device struct {
	*portaudio.DeviceInfo
}

// String returns the device name.
func (d Device) String() string {
	return d.Name
}

// Session is a callback driven Portaudio input stream.
type Session struct {
	param  portaudio.StreamParameters
	config input.SessionConfig

	mu     sync.Mutex
	stream *portaudio.Stream
	done   chan struct{}
	once   sync.Once
	err    error
}

// NewSession checks the device can serve the config and prepares a session.
// The stream is opened by Start.
func NewSession(config input.SessionConfig) (*Session, error) {
	dv, ok := config.Device.(Device)
	if !ok {
		return nil, fmt.Errorf("device is on unknown type %T", config.Device)
	}

	if dv.MaxInputChannels < config.FrameSize {
		return nil, errors.Errorf("device %q has %d input channels, %d required",
			dv.Name, dv.MaxInputChannels, config.FrameSize)
	}

	param := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dv.DeviceInfo,
			Channels: config.FrameSize,
			Latency:  dv.DefaultLowInputLatency,
		},
		SampleRate:      config.SampleRate,
		FramesPerBuffer: config.SampleSize,
	}

	// Free up the device.
	config.Device = nil

	return &Session{
		param:  param,
		config: config,
		done:   make(chan struct{}),
	}, nil
}

// Start opens and starts the stream. proc is called from Portaudio's
// callback thread with each buffer of interleaved samples.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return errors.New("session already started")
	}

	stream, err := portaudio.OpenStream(s.param, func(in []float32) {
		proc.Process(in)
	})
	if err != nil {
		return errors.Wrap(err, "failed to open stream")
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return errors.Wrap(err, "failed to start stream")
	}

	s.stream = stream

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()

	return nil
}

// Wait blocks until the session is stopped.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Stop stops and closes the stream.
func (s *Session) Stop() error {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.stream != nil {
			if err := s.stream.Stop(); err != nil {
				s.err = errors.Wrap(err, "failed to stop stream")
			}
			s.stream.Close()
		}

		close(s.done)
	})

	return s.err
}
