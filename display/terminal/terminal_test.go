package terminal

import (
	"image"
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/noriah/ringvis/graphic"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPresses(t *testing.T) {
	var p presses

	if p.next() {
		t.Fatal("down with no presses")
	}

	p.add()
	p.add()

	// two presses come out as down, up, down, up
	want := []bool{true, false, true, false, false}
	for i, w := range want {
		if got := p.next(); got != w {
			t.Errorf("frame %d: got %v, want %v", i, got, w)
		}
	}
}

func TestCellFor(t *testing.T) {
	tests := []struct {
		x, y     float32
		w, h     int
		col, row int
	}{
		{0, 0, 80, 24, 40, 12},
		// height bound: half = 12, x stretched by two
		{0.5, 0, 80, 24, 52, 12},
		{0, 0.5, 80, 24, 40, 6},
		// width bound: half = 10
		{0.5, -0.5, 40, 40, 30, 25},
	}

	for _, test := range tests {
		col, row := cellFor(test.x, test.y, test.w, test.h)
		if col != test.col || row != test.row {
			t.Errorf("cellFor(%v, %v, %d, %d) = (%d, %d), want (%d, %d)",
				test.x, test.y, test.w, test.h, col, row, test.col, test.row)
		}
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		alpha float32
		want  rune
	}{
		{0, ' '},
		{0.1, ' '},
		{0.25, '░'},
		{0.5, '▒'},
		{0.75, '▓'},
		{1, '█'},
		{3, '█'},
		{-1, ' '},
	}

	for _, test := range tests {
		if got := shade(test.alpha); got != test.want {
			t.Errorf("shade(%v) = %q, want %q", test.alpha, got, test.want)
		}
	}
}

func TestColor256(t *testing.T) {
	tests := []struct {
		c    graphic.Color
		want termbox.Attribute
	}{
		{graphic.Color{}, 17},
		{graphic.Red, 16 + 180 + 1},
		{graphic.Color{R: 1, G: 1, B: 1}, 232},
		{graphic.Color{B: 2}, 16 + 5 + 1},
	}

	for _, test := range tests {
		if got := color256(test.c); got != test.want {
			t.Errorf("color256(%v) = %d, want %d", test.c, got, test.want)
		}
	}
}

func TestApplyKey(t *testing.T) {
	base := graphic.Color{R: 1, G: 0.5}

	if !ApplyKey(&base, 'r') || base.R != 1 {
		t.Errorf("r past full: %+v", base)
	}

	ApplyKey(&base, 'g')
	if base.G != 0.625 {
		t.Errorf("g = %v", base.G)
	}

	ApplyKey(&base, 'B')
	if base.B != 0 {
		t.Errorf("B below zero: %v", base.B)
	}

	ApplyKey(&base, 'R')
	if base.R != 0.875 {
		t.Errorf("R = %v", base.R)
	}

	if ApplyKey(&base, 'x') {
		t.Error("x handled")
	}
}

func TestSwatchAt(t *testing.T) {
	tests := []struct {
		pt   image.Point
		i    int
		want bool
	}{
		{image.Pt(0, paletteRow), 0, true},
		{image.Pt(2, paletteRow), 0, true},
		{image.Pt(3, paletteRow), 0, false}, // gap
		{image.Pt(4, paletteRow), 1, true},
		{image.Pt(7*4+1, paletteRow), 7, true},
		{image.Pt(8*4, paletteRow), 0, false},
		{image.Pt(0, paletteRow+1), 0, false},
		{image.Pt(-1, paletteRow), 0, false},
	}

	for _, test := range tests {
		i, ok := swatchAt(test.pt)
		if ok != test.want || (ok && i != test.i) {
			t.Errorf("swatchAt(%v) = (%d, %v), want (%d, %v)", test.pt, i, ok, test.i, test.want)
		}
	}
}

func TestMeshUpload(t *testing.T) {
	var m mesh

	if err := m.Upload(make([]float32, graphic.SegmentPositions+2)); err == nil {
		t.Error("partial segment accepted")
	}

	cfg := graphic.DefaultRingConfig()
	ring := graphic.BuildRing(cfg)

	if err := m.Upload(ring.Positions); err != nil {
		t.Fatal(err)
	}

	if len(m.alphas) != cfg.Segments || len(m.centers) != cfg.Segments*2 {
		t.Fatalf("%d alphas, %d centers", len(m.alphas), len(m.centers))
	}

	for xSeg := 0; xSeg < cfg.Segments; xSeg++ {
		cx, cy := ring.Centroid(xSeg)
		if !scalar.EqualWithinAbs(float64(m.centers[xSeg*2]), float64(cx), 1e-6) ||
			!scalar.EqualWithinAbs(float64(m.centers[xSeg*2+1]), float64(cy), 1e-6) {
			t.Errorf("segment %d center (%v, %v), want (%v, %v)",
				xSeg, m.centers[xSeg*2], m.centers[xSeg*2+1], cx, cy)
		}
	}
}
