package execread

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/noriah/ringvis/input"
)

func TestFloatReader(t *testing.T) {
	raw := make([]byte, 12)
	binary.LittleEndian.PutUint32(raw[0:], math.Float32bits(0.5))
	binary.LittleEndian.PutUint32(raw[4:], math.Float32bits(-0.25))
	binary.LittleEndian.PutUint32(raw[8:], math.Float32bits(1))

	r := floatReader{order: binary.LittleEndian}
	r.reset(raw)

	for _, want := range []input.Sample{0.5, -0.25, 1} {
		if got := r.next(); got != want {
			t.Fatalf("next() = %v, want %v", got, want)
		}
	}

	raw64 := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw64, math.Float64bits(-0.75))

	r = floatReader{order: binary.LittleEndian, f64: true}
	r.reset(raw64)

	if got := r.next(); got != -0.75 {
		t.Fatalf("f64 next() = %v", got)
	}
}

type collector struct {
	mu   sync.Mutex
	bufs [][]input.Sample
}

func (c *collector) Process(buf []input.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// ignore silence handed over on read deadlines
	for _, v := range buf {
		if v != 0 {
			c.bufs = append(c.bufs, append([]input.Sample(nil), buf...))
			return
		}
	}
}

func TestSessionReadsBuffers(t *testing.T) {
	cat, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available")
	}

	cfg := input.SessionConfig{
		FrameSize:  2,
		SampleSize: 4,
		SampleRate: 48000,
	}

	const buffers = 3
	samples := cfg.FrameSize * cfg.SampleSize * buffers

	raw := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(float32(i+1)/100))
	}

	path := filepath.Join(t.TempDir(), "pcm.raw")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSession([]string{cat, path}, true, cfg)
	c := &collector{}

	if err := s.Start(context.Background(), c); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait() = %v", err)
		}
	case <-time.After(5 * time.Second):
		s.Stop()
		t.Fatal("session did not end at EOF")
	}

	if len(c.bufs) != buffers {
		t.Fatalf("got %d buffers, want %d", len(c.bufs), buffers)
	}

	for b, buf := range c.bufs {
		for i, v := range buf {
			want := float32(b*len(buf)+i+1) / 100
			if v != want {
				t.Fatalf("buffer %d sample %d = %v, want %v", b, i, v, want)
			}
		}
	}
}

func TestSessionStartFailure(t *testing.T) {
	s := NewSession([]string{"/nonexistent/ringvis-capture"}, true, input.SessionConfig{
		FrameSize:  1,
		SampleSize: 4,
		SampleRate: 48000,
	})

	if err := s.Start(context.Background(), input.ProcessorFunc(func([]input.Sample) {})); err == nil {
		t.Fatal("expected start error")
	}

	stopped := make(chan error, 1)
	go func() { stopped <- s.Stop() }()

	select {
	case err := <-stopped:
		if err != nil {
			t.Errorf("Stop() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked after a failed start")
	}

	// a failed start leaves the session startable
	err := s.Start(context.Background(), input.ProcessorFunc(func([]input.Sample) {}))
	if err == nil || strings.Contains(err.Error(), "already started") {
		t.Errorf("second Start() = %v, want the exec error again", err)
	}
}
