package dsp

import (
	"sync"
	"testing"
)

func TestPeaks(t *testing.T) {
	tests := []struct {
		name     string
		in       []float32
		channels int
		frames   int
		want     Levels
	}{
		{
			name:     "single channel",
			in:       []float32{0.2, -0.9, 0.1},
			channels: 1,
			frames:   3,
			want:     Levels{0.9},
		},
		{
			name:     "interleaved stereo",
			in:       []float32{0.1, -0.5, -0.3, 0.25, 0.2, 0},
			channels: 2,
			frames:   3,
			want:     Levels{0.3, 0.5},
		},
		{
			name: "eight channels",
			in: []float32{
				0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8,
				-0.8, -0.7, -0.6, -0.5, -0.4, -0.3, -0.2, -0.1,
			},
			channels: 8,
			frames:   2,
			want:     Levels{0.8, 0.7, 0.6, 0.5, 0.5, 0.6, 0.7, 0.8},
		},
		{
			name:     "partial trailing frame ignored",
			in:       []float32{0.1, 0.2, 0.9},
			channels: 2,
			frames:   1,
			want:     Levels{0.1, 0.2},
		},
		{
			name:     "silence",
			in:       make([]float32, 16),
			channels: 8,
			frames:   2,
			want:     Levels{},
		},
		{
			name:     "nil buffer",
			in:       nil,
			channels: 8,
			frames:   0,
			want:     Levels{},
		},
		{
			name:     "too many channels",
			in:       make([]float32, 9),
			channels: 9,
			frames:   0,
			want:     Levels{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := Levels{1, 1, 1, 1, 1, 1, 1, 1}

			if n := Peaks(&dst, tt.in, tt.channels); n != tt.frames {
				t.Errorf("frames = %d, want %d", n, tt.frames)
			}

			if dst != tt.want {
				t.Errorf("levels = %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestTrackerZeroValue(t *testing.T) {
	var tr Tracker
	if l := tr.Read(); l != (Levels{}) {
		t.Fatalf("zero tracker read %v", l)
	}
}

func TestTrackerReadIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Publish(Levels{0.5})

	l := tr.Read()
	l[0] = 1

	if got := tr.Read()[0]; got != 0.5 {
		t.Fatalf("snapshot mutated through copy: %v", got)
	}
}

// Every publish writes one value to all channels. A torn read would show two
// different values in the same snapshot.
func TestTrackerNoTornReads(t *testing.T) {
	const (
		writers = 4
		readers = 4
		rounds  = 20000
	)

	tr := NewTracker()

	var wg sync.WaitGroup
	errs := make(chan Levels, readers)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				v := float32(w*rounds+i) / float32(writers*rounds)

				var l Levels
				for ch := range l {
					l[ch] = v
				}

				tr.Publish(l)
			}
		}(w)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				l := tr.Read()
				for ch := 1; ch < MaxChannels; ch++ {
					if l[ch] != l[0] {
						errs <- l
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for l := range errs {
		t.Errorf("torn read: %v", l)
	}
}

func BenchmarkPeaks(b *testing.B) {
	in := make([]float32, 512*MaxChannels)
	for i := range in {
		in[i] = float32(i%97) / 97
	}

	var dst Levels

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Peaks(&dst, in, MaxChannels)
	}
}

func BenchmarkTrackerPublish(b *testing.B) {
	tr := NewTracker()
	l := Levels{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

	for i := 0; i < b.N; i++ {
		tr.Publish(l)
	}
}
