package graphic

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// Color is the base color of the ring. Components are in [0, 1].
type Color struct {
	R, G, B float32
}

// Red is the default base color.
var Red = Color{1, 0, 0}

// ParseColor parses a color in #rrggbb form. The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b uint8
	if len(s) != 6 {
		return Color{}, errors.Errorf("invalid color %q: want #rrggbb", s)
	}

	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}, nil
}

// Clamp returns c with every component clamped to [0, 1].
func (c Color) Clamp() Color {
	return Color{Clamp01(c.R), Clamp01(c.G), Clamp01(c.B)}
}

// RGBA returns c as an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 0xff,
	}
}

func (c Color) String() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
