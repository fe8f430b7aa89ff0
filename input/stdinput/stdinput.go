// Package stdinput reads raw interleaved float32le frames from standard
// input, for example from `sox -d -t f32 -c 8 -r 48000 -`.
package stdinput

import (
	"context"
	"os"
	"time"

	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/input/common/execread"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("stdin", StdinBackend{})
}

type StdinBackend struct{}

func (b StdinBackend) Init() error {
	return nil
}

func (b StdinBackend) Close() error {
	return nil
}

func (b StdinBackend) Devices() ([]input.Device, error) {
	return []input.Device{StdInputDevice{}}, nil
}

func (b StdinBackend) DefaultDevice() (input.Device, error) {
	return StdInputDevice{}, nil
}

func (b StdinBackend) Start(config input.SessionConfig) (input.Session, error) {
	return NewSession(config, os.Stdin), nil
}

type StdInputDevice struct{}

func (d StdInputDevice) String() string {
	return "stdin"
}

// Session reads from a file, standard input unless told otherwise.
type Session struct {
	cfg  input.SessionConfig
	file *os.File

	// reads can be interrupted by closing the file
	pollable bool

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewSession(cfg input.SessionConfig, f *os.File) *Session {
	return &Session{
		cfg:  cfg,
		file: f,
		// terminals and blocking descriptors have no deadlines, and a read
		// in progress on them outlives Close
		pollable: f.SetReadDeadline(time.Time{}) == nil,
		done:     make(chan struct{}),
	}
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	if s.cancel != nil {
		return errors.New("session already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)

		err := execread.ReadFile(ctx, s.file, s.cfg, true, proc)
		if ctx.Err() == nil {
			s.err = err
		}
	}()

	return nil
}

// Wait blocks until the input ends. The end of the input is not an error.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Stop stops handing buffers on. On a pollable file it waits for the reader
// to finish. Otherwise a read already blocked finishes in the background and
// its buffer is discarded.
func (s *Session) Stop() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()

	// closing unblocks pollable reads
	s.file.Close()

	if s.pollable {
		<-s.done
	}

	return nil
}
