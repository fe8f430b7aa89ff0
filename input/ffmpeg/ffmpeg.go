// Package ffmpeg captures through an ffmpeg subprocess writing raw float32
// frames to stdout.
package ffmpeg

import (
	"fmt"

	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/common/execread"
)

type FFmpegBackend interface {
	InputArgs() []string
}

// Args returns the ffmpeg command line reading from b.
func Args(b FFmpegBackend, cfg input.SessionConfig) []string {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args, b.InputArgs()...)
	return append(args,
		"-ar", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-ac", fmt.Sprintf("%d", cfg.FrameSize),
		"-f", "f32le",
		"-",
	)
}

func NewSession(b FFmpegBackend, cfg input.SessionConfig) (*execread.Session, error) {
	return execread.NewSession(Args(b, cfg), true, cfg), nil
}

func startSession(b FFmpegBackend, cfg input.SessionConfig) (input.Session, error) {
	s, err := NewSession(b, cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}
