package terminal

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SegmentWidth is the number of cells drawn per segment.
const SegmentWidth = 3

var shades = [...]rune{' ', '░', '▒', '▓', '█'}

// mesh draws each segment as a shaded block at its centroid.
type mesh struct {
	centers []float32 // x, y per segment, clip space
	alphas  []float64
}

func (m *mesh) Upload(positions []float32) error {
	if len(positions)%graphic.SegmentPositions != 0 {
		return errors.Errorf("position buffer of %d floats is not whole segments", len(positions))
	}

	segments := len(positions) / graphic.SegmentPositions

	m.centers = make([]float32, segments*2)
	m.alphas = make([]float64, segments)

	for xSeg := 0; xSeg < segments; xSeg++ {
		seg := positions[xSeg*graphic.SegmentPositions : (xSeg+1)*graphic.SegmentPositions]

		var x, y float32
		for i := 0; i < len(seg); i += graphic.PositionSize {
			x += seg[i]
			y += seg[i+1]
		}

		m.centers[xSeg*2] = x / graphic.VerticesPerSegment
		m.centers[xSeg*2+1] = y / graphic.VerticesPerSegment
	}

	return nil
}

func (m *mesh) Draw(colors []float32) {
	if len(m.alphas) == 0 {
		return
	}

	width, height := termbox.Size()

	for xSeg := range m.alphas {
		if (xSeg+1)*graphic.SegmentColors > len(colors) {
			break
		}

		// one color per segment, take the first vertex
		c := colors[xSeg*graphic.SegmentColors:]
		base := graphic.Color{R: c[0], G: c[1], B: c[2]}
		alpha := graphic.Clamp01(c[3])
		m.alphas[xSeg] = float64(alpha)

		col, row := cellFor(m.centers[xSeg*2], m.centers[xSeg*2+1], width, height)
		glyph := shade(alpha)
		fg := color256(base)

		for i := 0; i < SegmentWidth; i++ {
			termbox.SetCell(col-SegmentWidth/2+i, row, glyph, fg, termbox.ColorDefault)
		}
	}

	loudest := floats.MaxIdx(m.alphas)
	status := fmt.Sprintf("loudest segment %d (%3.0f%%)", loudest, m.alphas[loudest]*100)
	if m.alphas[loudest] == 0 {
		status = "silence"
	}

	printAt(width-len(status)-1, height-1, status, termbox.ColorDefault)
}

// cellFor maps a clip space point to a cell. Cells are about twice as tall as
// they are wide, so x is stretched to keep the ring round.
func cellFor(x, y float32, width, height int) (int, int) {
	half := float32(height) / 2
	if w := float32(width) / 4; w < half {
		half = w
	}

	col := float32(width)/2 + x*half*2
	row := float32(height)/2 - y*half

	return int(col), int(row)
}

// shade returns the glyph for a level in [0, 1].
func shade(alpha float32) rune {
	i := int(graphic.Clamp01(alpha)*float32(len(shades)-1) + 0.5)
	return shades[i]
}

// color256 returns the closest entry of the 6x6x6 color cube in termbox's
// Output256 numbering.
func color256(c graphic.Color) termbox.Attribute {
	c = c.Clamp()

	r := int(c.R*5 + 0.5)
	g := int(c.G*5 + 0.5)
	b := int(c.B*5 + 0.5)

	return termbox.Attribute(16 + 36*r + 6*g + b + 1)
}

func printAt(x, y int, s string, fg termbox.Attribute) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x++
	}
}
