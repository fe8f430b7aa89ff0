// Package raw prints segment levels as text, one line per frame. It needs no
// window or terminal and suits piping in to other programs.
package raw

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/noriah/ringvis/display"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// DefaultFrameRate is used when no frame rate is given.
const DefaultFrameRate = 60

// Output is a display.Host writing levels to a writer.
type Output struct {
	ctx    context.Context
	w      *bufio.Writer
	ticker *time.Ticker

	mesh mesh

	err    error
	closed bool
}

// New returns an output writing frameRate lines per second to w until ctx is
// done.
func New(ctx context.Context, w io.Writer, frameRate int) *Output {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	return &Output{
		ctx:    ctx,
		w:      bufio.NewWriter(w),
		ticker: time.NewTicker(time.Second / time.Duration(frameRate)),
	}
}

// PollInput waits for the next frame.
func (o *Output) PollInput() display.Input {
	if o.closed || o.err != nil || o.ctx.Err() != nil {
		return display.Input{Close: true}
	}

	select {
	case <-o.ctx.Done():
		return display.Input{Close: true}
	case <-o.ticker.C:
		return display.Input{}
	}
}

func (o *Output) Clear() {
	o.mesh.line = o.mesh.line[:0]
}

func (o *Output) Present() {
	if o.err != nil || len(o.mesh.line) == 0 {
		return
	}

	o.mesh.line[len(o.mesh.line)-1] = '\n'

	if _, err := o.w.Write(o.mesh.line); err != nil {
		o.err = err
		return
	}

	o.err = o.w.Flush()
}

// SetPassthrough does nothing, there is no pointer to pass through.
func (o *Output) SetPassthrough(bool) {}

func (o *Output) Drawer() graphic.MeshDrawer {
	return &o.mesh
}

// Err returns the first write error. Writing stops after one.
func (o *Output) Err() error {
	return o.err
}

func (o *Output) Close() error {
	if o.closed {
		return nil
	}

	o.closed = true
	o.ticker.Stop()

	if o.err != nil {
		return errors.Wrap(o.err, "failed to write levels")
	}

	return nil
}

// mesh formats the alpha of every segment.
type mesh struct {
	segments int
	line     []byte
}

func (m *mesh) Upload(positions []float32) error {
	if len(positions)%graphic.SegmentPositions != 0 {
		return errors.Errorf("position buffer of %d floats is not whole segments", len(positions))
	}

	m.segments = len(positions) / graphic.SegmentPositions
	m.line = make([]byte, 0, m.segments*6)

	return nil
}

func (m *mesh) Draw(colors []float32) {
	for xSeg := 0; xSeg < m.segments; xSeg++ {
		i := xSeg*graphic.SegmentColors + graphic.ColorSize - 1
		if i >= len(colors) {
			break
		}

		m.line = strconv.AppendFloat(m.line, float64(colors[i]), 'f', 3, 32)
		m.line = append(m.line, ' ')
	}
}

// Panel is the raw output's menu. There is nothing to show.
type Panel struct{}

func (Panel) Render(*graphic.Color) {}
