// Package overlay hosts the ring in a borderless, transparent, always on top
// window covering the primary monitor.
package overlay

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/noriah/ringvis/display"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// ToggleKey shows and hides the menu.
const ToggleKey = ebiten.KeyInsert

// Title is the window title.
const Title = "ringvis"

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Window is an ebiten backed display.Host. Frames are drawn in to an
// offscreen canvas during Update and copied to the screen in Draw.
type Window struct {
	ctx context.Context

	canvas *ebiten.Image
	width  int
	height int

	mesh mesh

	passthrough bool
	presented   bool
	closed      bool
}

// ErrNoMonitor is returned by NewWindow when there is no display to open the
// window on.
var ErrNoMonitor = errors.New("no monitor found; is a display available?")

// primaryMonitor is the monitor the window covers. Nil without a display.
var primaryMonitor = ebiten.Monitor

// NewWindow configures the ebiten window. The window closes when ctx is done.
func NewWindow(ctx context.Context) (*Window, error) {
	m := primaryMonitor()
	if m == nil {
		return nil, ErrNoMonitor
	}

	w, h := windowSize(m.Size())

	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	// one Update per displayed frame
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(true)

	return &Window{ctx: ctx}, nil
}

// windowSize falls back to 1280x720 for monitors reporting no size.
func windowSize(w, h int) (int, int) {
	if w < 1 || h < 1 {
		return 1280, 720
	}

	return w, h
}

// Canvas is the image the current frame is drawn on.
func (w *Window) Canvas() *ebiten.Image {
	return w.canvas
}

func (w *Window) PollInput() display.Input {
	return display.Input{
		Toggle: ebiten.IsKeyPressed(ToggleKey),
		Close:  w.closed || ebiten.IsWindowBeingClosed() || w.ctx.Err() != nil,
	}
}

func (w *Window) Clear() {
	w.presented = false
	if w.canvas != nil {
		w.canvas.Clear()
	}
}

func (w *Window) Present() {
	w.presented = true
}

func (w *Window) SetPassthrough(on bool) {
	w.passthrough = on
	ebiten.SetWindowMousePassthrough(on)
}

// Passthrough reports whether the window currently ignores the mouse.
func (w *Window) Passthrough() bool {
	return w.passthrough
}

func (w *Window) Drawer() graphic.MeshDrawer {
	return &w.mesh
}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	if w.canvas != nil {
		w.canvas.Deallocate()
		w.canvas = nil
	}

	return nil
}

// resize makes the canvas match the window.
func (w *Window) resize(width, height int) {
	if width < 1 || height < 1 || w.closed {
		return
	}

	if w.canvas != nil && width == w.width && height == w.height {
		return
	}

	if w.canvas != nil {
		w.canvas.Deallocate()
	}

	w.canvas = ebiten.NewImage(width, height)
	w.width, w.height = width, height
	w.mesh.target = w.canvas
	w.mesh.place(width, height)
}

// game adapts an app and its window to ebiten.Game.
type game struct {
	app *display.App
	win *Window
}

func (g *game) Update() error {
	if !g.app.Tick() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.win.canvas == nil || !g.win.presented {
		return
	}

	screen.DrawImage(g.win.canvas, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.win.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run runs app in win until the window closes. app must be initialized.
// It blocks and must be called from the main goroutine.
func Run(app *display.App, win *Window) error {
	if app.State() != display.Running {
		return errors.Errorf("cannot run app while %v", app.State())
	}

	err := ebiten.RunGameWithOptions(&game{app: app, win: win}, &ebiten.RunGameOptions{
		ScreenTransparent: true,
	})

	if cerr := app.Shutdown(); err == nil {
		err = cerr
	}

	return errors.Wrap(err, "overlay window failed")
}
