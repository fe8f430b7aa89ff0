package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/noriah/ringvis/graphic"
)

const instructions = `Insert: show or hide this menu
While hidden the overlay ignores the mouse`

const help = `Each segment follows one input channel.
A segment is solid at full scale and
clear at silence.`

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

var (
	panelColor  = color.RGBA{0x10, 0x10, 0x14, 0xd0}
	trackColor  = color.RGBA{0x40, 0x40, 0x48, 0xff}
	borderColor = color.RGBA{0xc0, 0xc0, 0xc8, 0xff}
)

// picker layout, in pixels from the panel origin
const (
	panelWidth  = 280
	panelMargin = 8
	lineHeight  = 16

	swatchSize = 24
	swatchGap  = 8

	barHeight = 12
	barGap    = 8
)

// Picker lays out the menu panels and maps clicks to base color changes.
type Picker struct {
	Origin image.Point
}

func (p Picker) instructionsRect() image.Rectangle {
	return image.Rect(0, 0, panelWidth, 3*lineHeight+2*panelMargin).Add(p.Origin)
}

func (p Picker) helpRect() image.Rectangle {
	top := p.instructionsRect().Max.Y + panelMargin
	return image.Rect(p.Origin.X, top, p.Origin.X+panelWidth, top+4*lineHeight+2*panelMargin)
}

func (p Picker) pickerRect() image.Rectangle {
	top := p.helpRect().Max.Y + panelMargin
	height := lineHeight + swatchSize + 3*(barHeight+barGap) + 3*panelMargin
	return image.Rect(p.Origin.X, top, p.Origin.X+panelWidth, top+height)
}

// Swatch returns the bounds of palette entry i.
func (p Picker) Swatch(i int) image.Rectangle {
	r := p.pickerRect()
	x := r.Min.X + panelMargin + i*(swatchSize+swatchGap)
	y := r.Min.Y + panelMargin + lineHeight
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

// Bar returns the bounds of the slider for component c, 0 to 2 for R, G, B.
func (p Picker) Bar(c int) image.Rectangle {
	r := p.pickerRect()
	x := r.Min.X + panelMargin
	y := p.Swatch(0).Max.Y + panelMargin + c*(barHeight+barGap)
	return image.Rect(x, y, r.Max.X-panelMargin, y+barHeight)
}

// Click applies a click at pt to base. Returns true if base changed.
func (p Picker) Click(base *graphic.Color, pt image.Point) bool {
	for i, c := range Palette {
		if pt.In(p.Swatch(i)) {
			changed := *base != c
			*base = c
			return changed
		}
	}

	for c := 0; c < 3; c++ {
		bar := p.Bar(c)
		if !pt.In(bar) {
			continue
		}

		v := graphic.Clamp01(float32(pt.X-bar.Min.X) / float32(bar.Dx()-1))
		comp := component(base, c)
		changed := *comp != v
		*comp = v
		return changed
	}

	return false
}

func component(base *graphic.Color, c int) *float32 {
	switch c {
	case 0:
		return &base.R
	case 1:
		return &base.G
	default:
		return &base.B
	}
}

// Panel draws the menu on a window's canvas.
type Panel struct {
	win    *Window
	picker Picker
}

// NewPanel returns the menu panel for win.
func NewPanel(win *Window) *Panel {
	return &Panel{
		win:    win,
		picker: Picker{Origin: image.Pt(24, 24)},
	}
}

func (p *Panel) Render(base *graphic.Color) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.picker.Click(base, image.Pt(x, y))
	}

	dst := p.win.Canvas()
	if dst == nil {
		return
	}

	r := p.picker.instructionsRect()
	fillRect(dst, r, panelColor)
	ebitenutil.DebugPrintAt(dst, instructions, r.Min.X+panelMargin, r.Min.Y+panelMargin)

	r = p.picker.helpRect()
	fillRect(dst, r, panelColor)
	ebitenutil.DebugPrintAt(dst, help, r.Min.X+panelMargin, r.Min.Y+panelMargin)

	r = p.picker.pickerRect()
	fillRect(dst, r, panelColor)
	ebitenutil.DebugPrintAt(dst, "Color "+base.String(), r.Min.X+panelMargin, r.Min.Y+panelMargin/2)

	for i, c := range Palette {
		s := p.picker.Swatch(i)
		if *base == c {
			fillRect(dst, s.Inset(-2), borderColor)
		}
		fillRect(dst, s, c.RGBA())
	}

	for c, name := range [3]string{"R", "G", "B"} {
		bar := p.picker.Bar(c)
		fillRect(dst, bar, trackColor)

		v := *component(base, c)
		fill := bar
		fill.Max.X = bar.Min.X + int(v*float32(bar.Dx()))

		var tint graphic.Color
		*component(&tint, c) = 1
		fillRect(dst, fill, tint.RGBA())

		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s %3.0f%%", name, v*100), bar.Max.X-56, bar.Min.Y-2)
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst,
		float32(r.Min.X), float32(r.Min.Y),
		float32(r.Dx()), float32(r.Dy()),
		clr, false)
}
