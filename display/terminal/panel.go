package terminal

import (
	"fmt"
	"image"

	"github.com/nsf/termbox-go"
	"github.com/noriah/ringvis/graphic"
)

// Step is how much one key press moves a color component.
const Step = 1.0 / 8

var instructions = []string{
	"Insert: show or hide this menu",
	"q, Esc: quit",
}

var help = []string{
	"Each segment follows one input channel.",
	"Solid at full scale, blank at silence.",
}

// Palette is the swatch row of the color picker.
var Palette = []graphic.Color{
	graphic.Red,
	{R: 1, G: 0.5, B: 0},
	{R: 1, G: 1, B: 0},
	{R: 0, G: 1, B: 0},
	{R: 0, G: 1, B: 1},
	{R: 0, G: 0.4, B: 1},
	{R: 0.6, G: 0, B: 1},
	{R: 1, G: 1, B: 1},
}

// paletteRow is the row of the swatches, below the text lines.
var paletteRow = len(instructions) + len(help) + 2

// Panel prints the menu and applies color keys and swatch clicks.
type Panel struct {
	term *Terminal
}

// NewPanel returns the menu panel for t.
func NewPanel(t *Terminal) *Panel {
	return &Panel{term: t}
}

func (p *Panel) Render(base *graphic.Color) {
	for _, k := range p.term.Keys() {
		ApplyKey(base, k)
	}

	for _, pt := range p.term.Clicks() {
		if i, ok := swatchAt(pt); ok {
			*base = Palette[i]
		}
	}

	row := 0
	for _, line := range instructions {
		printAt(0, row, line, termbox.ColorDefault)
		row++
	}

	row++
	for _, line := range help {
		printAt(0, row, line, termbox.ColorDefault)
		row++
	}

	printAt(0, row, fmt.Sprintf("color %s  r/g/b up, R/G/B down", base), color256(*base))

	for i, c := range Palette {
		for x := 0; x < SegmentWidth; x++ {
			termbox.SetCell(i*(SegmentWidth+1)+x, paletteRow, shades[len(shades)-1], color256(c), termbox.ColorDefault)
		}
	}
}

// swatchAt returns the palette entry drawn at pt.
func swatchAt(pt image.Point) (int, bool) {
	if pt.Y != paletteRow || pt.X < 0 {
		return 0, false
	}

	i := pt.X / (SegmentWidth + 1)
	if pt.X%(SegmentWidth+1) == SegmentWidth || i >= len(Palette) {
		return 0, false
	}

	return i, true
}

// ApplyKey nudges a component of base. Lower case raises, upper case lowers.
// Returns false for keys it does not handle.
func ApplyKey(base *graphic.Color, key rune) bool {
	var comp *float32
	var delta float32 = Step

	switch key {
	case 'r':
		comp = &base.R
	case 'g':
		comp = &base.G
	case 'b':
		comp = &base.B
	case 'R':
		comp, delta = &base.R, -Step
	case 'G':
		comp, delta = &base.G, -Step
	case 'B':
		comp, delta = &base.B, -Step
	default:
		return false
	}

	*comp = graphic.Clamp01(*comp + delta)
	return true
}
