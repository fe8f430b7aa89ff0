package stdinput

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"testing"

	"github.com/noriah/ringvis/input"
)

func TestSessionReadsFile(t *testing.T) {
	cfg := input.SessionConfig{FrameSize: 2, SampleSize: 2, SampleRate: 48000}

	// two buffers and a partial third
	values := []float32{0.5, -0.5, 0.25, -0.25, 1, 0, 0, 1, 0.1}
	raw := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	path := t.TempDir() + "/in.raw"
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	var got [][]input.Sample
	proc := input.ProcessorFunc(func(buf []input.Sample) {
		got = append(got, append([]input.Sample(nil), buf...))
	})

	s := NewSession(cfg, f)
	if err := s.Start(context.Background(), proc); err != nil {
		t.Fatal(err)
	}

	if err := s.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d buffers, want 2", len(got))
	}

	if got[0][1] != -0.5 || got[1][0] != 1 || got[1][3] != 1 {
		t.Errorf("buffers = %v", got)
	}

	if err := s.Stop(); err != nil {
		t.Error(err)
	}
}
