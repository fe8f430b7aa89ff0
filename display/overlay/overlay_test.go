package overlay

import (
	"context"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/noriah/ringvis/graphic"
)

func TestPlaceVerticesSquare(t *testing.T) {
	positions := []float32{
		0, 0,
		1, 1,
		-1, -1,
		0.5, 0,
	}

	dst := make([]ebiten.Vertex, 4)

	// wide window: the ring fits the height and sits in the middle
	placeVertices(dst, positions, 200, 100)

	want := [][2]float32{
		{100, 50},
		{150, 0},
		{50, 100},
		{125, 50},
	}

	for i, w := range want {
		if dst[i].DstX != w[0] || dst[i].DstY != w[1] {
			t.Errorf("vertex %d at (%v, %v), want %v", i, dst[i].DstX, dst[i].DstY, w)
		}

		if dst[i].SrcX != 1 || dst[i].SrcY != 1 {
			t.Errorf("vertex %d samples (%v, %v)", i, dst[i].SrcX, dst[i].SrcY)
		}
	}

	// tall window
	placeVertices(dst, positions, 100, 300)
	if dst[1].DstX != 100 || dst[1].DstY != 100 {
		t.Errorf("corner at (%v, %v), want (100, 100)", dst[1].DstX, dst[1].DstY)
	}
}

func TestPaintVertices(t *testing.T) {
	ring := graphic.BuildRing(graphic.DefaultRingConfig())
	dst := make([]ebiten.Vertex, len(ring.Positions)/graphic.PositionSize)

	paintVertices(dst, ring.Colors)

	for i, v := range dst {
		if v.ColorR != 1 || v.ColorG != 0 || v.ColorB != 0 || v.ColorA != 1 {
			t.Fatalf("vertex %d color (%v %v %v %v)", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
	}

	// short buffers leave the rest alone
	paintVertices(dst, []float32{0, 0, 1, 0.5})
	if dst[0].ColorB != 1 || dst[0].ColorA != 0.5 || dst[1].ColorR != 1 {
		t.Errorf("short paint: %+v %+v", dst[0], dst[1])
	}
}

func TestMeshUpload(t *testing.T) {
	var m mesh

	if err := m.Upload([]float32{1, 2, 3}); err == nil {
		t.Error("odd position count accepted")
	}

	ring := graphic.BuildRing(graphic.DefaultRingConfig())
	if err := m.Upload(ring.Positions); err != nil {
		t.Fatal(err)
	}

	if len(m.vertices) != 48 || len(m.indices) != 48 {
		t.Fatalf("%d vertices, %d indices", len(m.vertices), len(m.indices))
	}

	for i, idx := range m.indices {
		if int(idx) != i {
			t.Fatalf("index %d = %d", i, idx)
		}
	}

	// no canvas yet
	m.Draw(ring.Colors)
}

func TestPickerSwatch(t *testing.T) {
	p := Picker{Origin: image.Pt(10, 10)}
	base := graphic.Red

	center := func(r image.Rectangle) image.Point {
		return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	}

	if !p.Click(&base, center(p.Swatch(3))) {
		t.Error("swatch click did not change color")
	}

	if base != Palette[3] {
		t.Errorf("base = %v, want %v", base, Palette[3])
	}

	// same swatch again is not a change
	if p.Click(&base, center(p.Swatch(3))) {
		t.Error("repeat click reported a change")
	}

	// outside everything
	if p.Click(&base, image.Pt(0, 0)) {
		t.Error("click outside changed color")
	}
}

func TestPickerBars(t *testing.T) {
	p := Picker{}
	base := graphic.Red

	g := p.Bar(1)
	if !p.Click(&base, image.Pt(g.Max.X-1, g.Min.Y)) {
		t.Fatal("bar click did not change color")
	}

	if base.G != 1 || base.R != 1 || base.B != 0 {
		t.Errorf("base = %+v", base)
	}

	r := p.Bar(0)
	p.Click(&base, image.Pt(r.Min.X, r.Min.Y+1))
	if base.R != 0 {
		t.Errorf("red = %v, want 0", base.R)
	}

	// bars do not overlap the swatches or each other
	for c := 0; c < 3; c++ {
		for i := range Palette {
			if p.Bar(c).Overlaps(p.Swatch(i)) {
				t.Errorf("bar %d overlaps swatch %d", c, i)
			}
		}
		if c > 0 && p.Bar(c).Overlaps(p.Bar(c-1)) {
			t.Errorf("bar %d overlaps bar %d", c, c-1)
		}
	}
}

func TestPickerFits(t *testing.T) {
	p := Picker{}
	panel := p.pickerRect()

	for i := range Palette {
		if !p.Swatch(i).In(panel) {
			t.Errorf("swatch %d %v outside panel %v", i, p.Swatch(i), panel)
		}
	}

	for c := 0; c < 3; c++ {
		if !p.Bar(c).In(panel) {
			t.Errorf("bar %d %v outside panel %v", c, p.Bar(c), panel)
		}
	}

	if p.instructionsRect().Overlaps(p.helpRect()) || p.helpRect().Overlaps(panel) {
		t.Error("panels overlap")
	}
}

func TestNewWindowNoMonitor(t *testing.T) {
	saved := primaryMonitor
	defer func() { primaryMonitor = saved }()

	primaryMonitor = func() *ebiten.MonitorType { return nil }

	win, err := NewWindow(context.Background())
	if err != ErrNoMonitor {
		t.Fatalf("err = %v, want ErrNoMonitor", err)
	}

	if win != nil {
		t.Error("got a window without a monitor")
	}
}

func TestWindowSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{2560, 1440, 2560, 1440},
		{0, 1080, 1280, 720},
		{1920, 0, 1280, 720},
		{-1, -1, 1280, 720},
	}

	for _, test := range tests {
		w, h := windowSize(test.w, test.h)
		if w != test.wantW || h != test.wantH {
			t.Errorf("windowSize(%d, %d) = (%d, %d), want (%d, %d)",
				test.w, test.h, w, h, test.wantW, test.wantH)
		}
	}
}
