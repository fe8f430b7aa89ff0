// Package graphic builds the ring mesh and maps channel levels on to it.
package graphic

import (
	"github.com/noriah/ringvis/dsp"
)

// MeshDrawer draws the ring. Positions are uploaded once, colors every frame.
type MeshDrawer interface {
	// Upload stores the static vertex positions, two floats per vertex.
	Upload(positions []float32) error
	// Draw issues one draw of every triangle with the given per-vertex RGBA.
	Draw(colors []float32)
}

// LevelSource provides level snapshots. *dsp.Tracker is one.
type LevelSource interface {
	Read() dsp.Levels
}

// ChannelFor maps a segment to the channel driving it. Segment counts larger
// than the channel count wrap around.
func ChannelFor(segment, channels int) int {
	if channels < 1 {
		return 0
	}

	return segment % channels
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		// also catches NaN
		return 0
	}
}

// BuildColors returns a new per-vertex color buffer for a ring of the given
// segment count. Every vertex takes its RGB from base and its alpha from the
// clamped level of the segment's channel.
//
// The result depends only on its arguments.
func BuildColors(l dsp.Levels, base Color, segments, channels int) []float32 {
	if channels > dsp.MaxChannels {
		channels = dsp.MaxChannels
	}

	if segments < 0 {
		segments = 0
	}

	colors := make([]float32, segments*SegmentColors)

	for xSeg := 0; xSeg < segments; xSeg++ {
		alpha := Clamp01(l[ChannelFor(xSeg, channels)])

		col := colors[xSeg*SegmentColors : (xSeg+1)*SegmentColors]
		for i := 0; i < len(col); i += ColorSize {
			col[i] = base.R
			col[i+1] = base.G
			col[i+2] = base.B
			col[i+3] = alpha
		}
	}

	return colors
}

// Renderer draws one frame of the ring from the latest level snapshot.
type Renderer struct {
	src      LevelSource
	ring     *Ring
	base     *Color
	channels int
	drawer   MeshDrawer
}

// NewRenderer returns a renderer. base is read every frame and may be changed
// between frames from the render thread.
func NewRenderer(src LevelSource, ring *Ring, base *Color, channels int, drawer MeshDrawer) *Renderer {
	return &Renderer{
		src:      src,
		ring:     ring,
		base:     base,
		channels: channels,
		drawer:   drawer,
	}
}

// Render reads the snapshot, rebuilds the color buffer and draws the ring.
// The tracker lock is released before anything is drawn.
func (r *Renderer) Render() {
	levels := r.src.Read()
	r.drawer.Draw(BuildColors(levels, *r.base, r.ring.Segments, r.channels))
}
