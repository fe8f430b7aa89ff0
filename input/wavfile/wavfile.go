// Package wavfile replays a PCM WAV file as if it were being captured. Useful
// for trying the overlay without a multichannel device.
package wavfile

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/common/timer"
	"github.com/pkg/errors"
)

// errors
var (
	ErrNotWavFile = errors.New("not a WAV file")
	ErrNoAudio    = errors.New("WAV file holds no audio")
)

func init() {
	input.RegisterBackend("wavfile", Backend{})
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

// Devices lists the WAV files in the working directory.
func (b Backend) Devices() ([]input.Device, error) {
	matches, err := filepath.Glob("*.wav")
	if err != nil {
		return nil, err
	}

	devices := make([]input.Device, len(matches))
	for i, m := range matches {
		devices[i] = File(m)
	}

	return devices, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	devices, err := b.Devices()
	if err != nil {
		return nil, err
	}

	if len(devices) == 0 {
		return nil, input.ErrNoDevices
	}

	return devices[0], nil
}

// ResolveDevice accepts any path to an existing file.
func (b Backend) ResolveDevice(name string) (input.Device, error) {
	if _, err := os.Stat(name); err != nil {
		return nil, errors.Wrapf(input.ErrBadDevice, "%v", err)
	}

	return File(name), nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// File is a WAV file path.
type File string

func (f File) String() string {
	return string(f)
}

// Load decodes a PCM WAV file in to interleaved samples in [-1, 1] with the
// given number of channels. Extra file channels are dropped, missing ones are
// silent. Also returns the file's sample rate.
func Load(path string, channels int) ([]input.Sample, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errors.Wrap(ErrNotWavFile, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to decode %s", path)
	}

	samples := Convert(buf, int(dec.BitDepth), channels)
	if len(samples) == 0 {
		return nil, 0, errors.Wrap(ErrNoAudio, path)
	}

	return samples, float64(dec.SampleRate), nil
}

// Convert turns integer PCM in to float samples with the given channel count.
func Convert(buf *audio.IntBuffer, bitDepth, channels int) []input.Sample {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || channels < 1 {
		return nil
	}

	if bitDepth < 8 {
		bitDepth = 16
	}

	srcChannels := buf.Format.NumChannels
	frames := len(buf.Data) / srcChannels
	scale := float32(int64(1) << (bitDepth - 1))

	// 8 bit WAV is unsigned
	var offset int
	if bitDepth == 8 {
		offset = 128
	}

	out := make([]input.Sample, frames*channels)

	for xFrame := 0; xFrame < frames; xFrame++ {
		src := buf.Data[xFrame*srcChannels : (xFrame+1)*srcChannels]
		dst := out[xFrame*channels : (xFrame+1)*channels]

		for ch := 0; ch < len(dst) && ch < len(src); ch++ {
			dst[ch] = float32(src[ch]-offset) / scale
		}
	}

	return out
}

// Session replays a decoded file in a loop, one buffer per buffer interval.
type Session struct {
	cfg     input.SessionConfig
	samples []input.Sample
	buf     []input.Sample
	pos     int

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewSession loads the file named by the config's device.
func NewSession(cfg input.SessionConfig) (*Session, error) {
	dv, ok := cfg.Device.(File)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	samples, rate, err := Load(dv.String(), cfg.FrameSize)
	if err != nil {
		return nil, err
	}

	if rate > 0 && rate != cfg.SampleRate {
		log.Printf("%s is %.0fHz, replaying at that rate instead of %.0fHz",
			dv, rate, cfg.SampleRate)
	}

	return newSession(filePacing(cfg, rate), samples), nil
}

// filePacing returns cfg with the file's sample rate, so that buffers go out
// at the speed the file was recorded at. An unknown rate keeps cfg's.
func filePacing(cfg input.SessionConfig, rate float64) input.SessionConfig {
	if rate > 0 {
		cfg.SampleRate = rate
	}

	return cfg
}

func newSession(cfg input.SessionConfig, samples []input.Sample) *Session {
	return &Session{
		cfg:     cfg,
		samples: samples,
		buf:     input.MakeBuffer(cfg),
		done:    make(chan struct{}),
	}
}

// next fills the buffer with the following stretch of the file, wrapping at
// the end.
func (s *Session) next() []input.Sample {
	for i := range s.buf {
		s.buf[i] = s.samples[s.pos]
		s.pos = (s.pos + 1) % len(s.samples)
	}

	return s.buf
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	if s.cancel != nil {
		return errors.New("session already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)

		s.err = timer.Process(ctx, s.cfg, func() error {
			proc.Process(s.next())
			return nil
		})
	}()

	return nil
}

func (s *Session) Wait() error {
	<-s.done
	return s.err
}

func (s *Session) Stop() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done
	return nil
}
