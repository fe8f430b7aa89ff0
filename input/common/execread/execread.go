// Package execread provides a shared struct that wraps around cmd.
package execread

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/noriah/ringvis/input"
	"github.com/pkg/errors"
)

// Session is a session that reads interleaved floating-point audio values
// from a Cmd and hands each full buffer to a processor.
type Session struct {
	// OnStart is called when the session starts. Nil by default.
	OnStart func(ctx context.Context, cmd *exec.Cmd) error

	// prevents cmd.Stderr from poiting to os.Stderr. false by default.
	DisconnectedStderr bool

	argv []string
	cfg  input.SessionConfig

	// maligned.
	f32mode bool

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewSession creates a new execread session. It never returns an error.
func NewSession(argv []string, f32mode bool, cfg input.SessionConfig) *Session {
	if len(argv) < 1 {
		panic("argv has no arg0")
	}

	return &Session{
		argv:    argv,
		cfg:     cfg,
		f32mode: f32mode,
		done:    make(chan struct{}),
	}
}

// Start runs the command and starts reading from it.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	if s.cancel != nil {
		return errors.New("session already started")
	}

	ctx, cancel := context.WithCancel(ctx)

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)

	if !s.DisconnectedStderr {
		cmd.Stderr = os.Stderr
	}

	o, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	// We need o as an *os.File for SetReadDeadline.
	of, ok := o.(*os.File)
	if !ok {
		cancel()
		o.Close()
		return errors.New("stdout pipe is not an *os.File (bug)")
	}

	if err := cmd.Start(); err != nil {
		cancel()
		o.Close()
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}

	if s.OnStart != nil {
		if err := s.OnStart(ctx, cmd); err != nil {
			cancel()
			cmd.Wait()
			return err
		}
	}

	// only a running reader can close done, so Stop may wait on it from here
	s.cancel = cancel

	go func() {
		defer close(s.done)

		err := ReadFile(ctx, of, s.cfg, s.f32mode, proc)
		stopped := ctx.Err() != nil
		cancel()

		// the command is killed with the context
		cmd.Wait()

		if !stopped {
			s.err = err
		}
	}()

	return nil
}

// ReadFile hands buffers of interleaved little endian floats read from f to
// proc until f ends or ctx is done. Buffers that do not arrive in time are
// replaced by silence when f supports read deadlines.
func ReadFile(ctx context.Context, f *os.File, cfg input.SessionConfig, f32mode bool, proc input.Processor) error {
	samples := cfg.SampleSize * cfg.FrameSize

	reader := floatReader{
		order: binary.LittleEndian,
		f64:   !f32mode,
	}

	bufsz := samples
	if !f32mode {
		bufsz *= 2
	}

	raw := make([]byte, bufsz*4)
	buf := make([]input.Sample, samples)

	// We double this as a workaround because sampleDuration is less than the
	// actual time that ReadFull blocks for some reason, probably because the
	// process decides to discard audio when it overflows.
	sampleDuration := time.Duration(
		float64(cfg.SampleSize) / cfg.SampleRate * float64(time.Second))
	// We also keep track of whether the deadline was hit once so we can half
	// the sample duration. This smooths out the jitter.
	var readExpired bool

	// bytes of the next buffer already read. kept across deadlines so frames
	// stay aligned.
	var have int

	// regular files and terminals have no deadlines
	deadlines := true

	for {
		// Set us a read deadline. If the deadline is reached, we'll hand over
		// a silent buffer.
		timeout := sampleDuration
		if !readExpired {
			timeout *= 6
		}
		if deadlines {
			err := f.SetReadDeadline(time.Now().Add(timeout))
			switch {
			case errors.Is(err, os.ErrNoDeadline):
				deadlines = false
			case err != nil:
				return errors.Wrap(err, "failed to set read deadline")
			}
		}

		n, err := io.ReadFull(f, raw[have:])
		have += n
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				return nil
			case errors.Is(err, os.ErrDeadlineExceeded):
				readExpired = true
			default:
				return err
			}
		} else {
			readExpired = false
		}

		if readExpired {
			for i := range buf {
				buf[i] = 0
			}
		} else {
			have = 0
			reader.reset(raw)
			for n := range buf {
				buf[n] = reader.next()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		proc.Process(buf)
	}
}

// Wait blocks until the command exits or the session is stopped.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Stop kills the command.
func (s *Session) Stop() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done
	return nil
}

type floatReader struct {
	order binary.ByteOrder
	buf   []byte
	f64   bool
}

func (f *floatReader) reset(b []byte) {
	f.buf = b
}

func (f *floatReader) next() input.Sample {
	if f.f64 {
		b := f.buf[:8]
		f.buf = f.buf[8:]
		return input.Sample(math.Float64frombits(f.order.Uint64(b)))
	}

	b := f.buf[:4]
	f.buf = f.buf[4:]
	return math.Float32frombits(f.order.Uint32(b))
}
