package graphic

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// VerticesPerSegment is two triangles worth of vertices.
	VerticesPerSegment = 6
	// PositionSize is the number of floats in a vertex position.
	PositionSize = 2
	// ColorSize is the number of floats in a vertex color.
	ColorSize = 4

	// SegmentPositions is the number of position floats per segment.
	SegmentPositions = VerticesPerSegment * PositionSize
	// SegmentColors is the number of color floats per segment.
	SegmentColors = VerticesPerSegment * ColorSize

	// DefaultRotation turns the ring so segment edges line up with the
	// octagon's flat sides.
	DefaultRotation = math.Pi / 1.6
)

// RingConfig describes a ring in clip space.
type RingConfig struct {
	CenterX     float32
	CenterY     float32
	InnerRadius float32
	OuterRadius float32
	Segments    int
	Rotation    float32 // radians added to every segment angle
}

// DefaultRingConfig returns the eight segment ring.
func DefaultRingConfig() RingConfig {
	return RingConfig{
		InnerRadius: 0.48,
		OuterRadius: 0.5,
		Segments:    8,
		Rotation:    DefaultRotation,
	}
}

// Ring is the static mesh of a segmented ring.
type Ring struct {
	Segments  int
	Positions []float32 // Segments * SegmentPositions
	Colors    []float32 // Segments * SegmentColors, opaque red
}

// BuildRing builds the ring mesh. Each segment spans an equal slice of the
// circle and is emitted as the triangles (inner1, outer1, inner2) and
// (outer1, outer2, inner2).
func BuildRing(cfg RingConfig) *Ring {
	if cfg.Segments < 1 {
		return &Ring{}
	}

	r := &Ring{
		Segments:  cfg.Segments,
		Positions: make([]float32, cfg.Segments*SegmentPositions),
		Colors:    make([]float32, cfg.Segments*SegmentColors),
	}

	center := mgl32.Vec2{cfg.CenterX, cfg.CenterY}
	step := 2 * math.Pi / float32(cfg.Segments)

	angle := func(k int) float32 {
		return float32(k)*step + cfg.Rotation
	}

	point := func(radius, theta float32) mgl32.Vec2 {
		return center.Add(mgl32.Rotate2D(theta).Mul2x1(mgl32.Vec2{radius, 0}))
	}

	for xSeg := 0; xSeg < cfg.Segments; xSeg++ {
		theta1 := angle(xSeg)
		theta2 := angle(xSeg + 1)

		inner1 := point(cfg.InnerRadius, theta1)
		outer1 := point(cfg.OuterRadius, theta1)
		inner2 := point(cfg.InnerRadius, theta2)
		outer2 := point(cfg.OuterRadius, theta2)

		pos := r.Positions[xSeg*SegmentPositions : (xSeg+1)*SegmentPositions]
		for i, v := range [VerticesPerSegment]mgl32.Vec2{
			inner1, outer1, inner2,
			outer1, outer2, inner2,
		} {
			pos[i*PositionSize] = v.X()
			pos[i*PositionSize+1] = v.Y()
		}

		col := r.Colors[xSeg*SegmentColors : (xSeg+1)*SegmentColors]
		for i := 0; i < VerticesPerSegment; i++ {
			col[i*ColorSize] = Red.R
			col[i*ColorSize+1] = Red.G
			col[i*ColorSize+2] = Red.B
			col[i*ColorSize+3] = 1
		}
	}

	return r
}

// Vertex returns the position of vertex v of segment seg.
func (r *Ring) Vertex(seg, v int) (x, y float32) {
	idx := seg*SegmentPositions + v*PositionSize
	return r.Positions[idx], r.Positions[idx+1]
}

// Centroid returns the average position of the vertices of segment seg.
func (r *Ring) Centroid(seg int) (x, y float32) {
	for v := 0; v < VerticesPerSegment; v++ {
		vx, vy := r.Vertex(seg, v)
		x += vx
		y += vy
	}

	return x / VerticesPerSegment, y / VerticesPerSegment
}
