package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// mesh draws the ring with a single DrawTriangles call. Positions are in clip
// space and are placed in the largest centered square of the canvas so the
// ring stays round on any window shape.
type mesh struct {
	target *ebiten.Image

	positions []float32
	vertices  []ebiten.Vertex
	indices   []uint16

	opts ebiten.DrawTrianglesOptions
}

func (m *mesh) Upload(positions []float32) error {
	if len(positions)%graphic.PositionSize != 0 {
		return errors.Errorf("position buffer of %d floats is not whole vertices", len(positions))
	}

	count := len(positions) / graphic.PositionSize
	if count > 1<<16 {
		return errors.Errorf("ring of %d vertices is too large", count)
	}

	m.positions = append(m.positions[:0], positions...)
	m.vertices = make([]ebiten.Vertex, count)
	m.indices = make([]uint16, count)

	for i := range m.indices {
		m.indices[i] = uint16(i)
	}

	m.opts = ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}

	if m.target != nil {
		b := m.target.Bounds()
		m.place(b.Dx(), b.Dy())
	}

	return nil
}

// place maps the uploaded positions to pixels of a width by height canvas.
func (m *mesh) place(width, height int) {
	placeVertices(m.vertices, m.positions, width, height)
}

func placeVertices(dst []ebiten.Vertex, positions []float32, width, height int) {
	half := float32(width) / 2
	if height < width {
		half = float32(height) / 2
	}

	cx, cy := float32(width)/2, float32(height)/2

	for i := range dst {
		x, y := positions[i*2], positions[i*2+1]

		dst[i].DstX = cx + x*half
		// clip space y points up
		dst[i].DstY = cy - y*half
		dst[i].SrcX = 1
		dst[i].SrcY = 1
	}
}

func (m *mesh) Draw(colors []float32) {
	if m.target == nil || len(m.vertices) == 0 {
		return
	}

	paintVertices(m.vertices, colors)
	m.target.DrawTriangles(m.vertices, m.indices, whiteSubImage, &m.opts)
}

func paintVertices(dst []ebiten.Vertex, colors []float32) {
	for i := range dst {
		if (i+1)*graphic.ColorSize > len(colors) {
			break
		}

		c := colors[i*graphic.ColorSize : (i+1)*graphic.ColorSize]
		dst[i].ColorR = c[0]
		dst[i].ColorG = c[1]
		dst[i].ColorB = c[2]
		dst[i].ColorA = c[3]
	}
}
