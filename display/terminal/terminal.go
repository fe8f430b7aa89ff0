// Package terminal previews the ring in a terminal using termbox.
//
// The ring is drawn as one shaded block per segment at the segment's center.
// Insert toggles the menu like the overlay window does; with the menu hidden
// the terminal stops reporting mouse events.
package terminal

import (
	"context"
	"image"
	"os"
	"strings"

	"github.com/nsf/termbox-go"
	"github.com/noriah/ringvis/display"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// Terminal is a termbox backed display.Host.
type Terminal struct {
	ctx    context.Context
	cancel context.CancelFunc

	events chan termbox.Event

	presses presses
	keys    []rune
	clicks  []image.Point

	mesh mesh

	restore func()
	closed  bool
}

// New initializes termbox and starts polling events. The terminal closes
// when ctx is done or a quit key is pressed.
func New(ctx context.Context) (*Terminal, error) {
	restore, err := normalizeTerminal()
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare terminal")
	}

	if err := termbox.Init(); err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to init termbox")
	}

	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &Terminal{
		events:  make(chan termbox.Event, 16),
		restore: restore,
	}

	t.ctx, t.cancel = context.WithCancel(ctx)

	go t.poll()

	return t, nil
}

// poll forwards termbox events until termbox is closed.
func (t *Terminal) poll() {
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}

		select {
		case t.events <- ev:
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *Terminal) PollInput() display.Input {
	t.keys = t.keys[:0]

	t.clicks = t.clicks[:0]

drain:
	for {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			break drain
		}
	}

	return display.Input{
		Toggle: t.presses.next(),
		Close:  t.ctx.Err() != nil,
	}
}

func (t *Terminal) handle(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		switch ev.Key {
		case termbox.KeyInsert:
			t.presses.add()

		case termbox.KeyCtrlC, termbox.KeyEsc:
			t.cancel()

		case 0:
			switch ev.Ch {
			case 'q', 'Q':
				t.cancel()
			default:
				t.keys = append(t.keys, ev.Ch)
			}
		}

	case termbox.EventMouse:
		if ev.Key == termbox.MouseLeft {
			t.clicks = append(t.clicks, image.Pt(ev.MouseX, ev.MouseY))
		}

	case termbox.EventError:
		t.cancel()
	}
}

// Keys returns the character keys pressed since the last PollInput.
func (t *Terminal) Keys() []rune {
	return t.keys
}

// Clicks returns the cells clicked since the last PollInput. Only reported
// while passthrough is off.
func (t *Terminal) Clicks() []image.Point {
	return t.clicks
}

func (t *Terminal) Clear() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (t *Terminal) Present() {
	termbox.Flush()
}

// SetPassthrough turns termbox mouse reporting off while passthrough is on.
func (t *Terminal) SetPassthrough(on bool) {
	if on {
		termbox.SetInputMode(termbox.InputEsc)
	} else {
		termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	}
}

func (t *Terminal) Drawer() graphic.MeshDrawer {
	return &t.mesh
}

func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}

	t.closed = true
	t.cancel()

	termbox.Interrupt()
	termbox.Close()
	t.restore()

	return nil
}

// presses turns key presses, which the terminal reports without releases, in
// to one frame of key down followed by one frame of key up each.
type presses struct {
	pending int
	down    bool
}

func (p *presses) add() {
	p.pending++
}

func (p *presses) next() bool {
	if p.down {
		p.down = false
		return false
	}

	if p.pending > 0 {
		p.pending--
		p.down = true
	}

	return p.down
}

// normalizeTerminal looks for incompatibilities in the terminal configuration
// with termbox and makes some adjustments to avoid problems.
//
// Returns a function that restores the terminal configuration.
func normalizeTerminal() (func(), error) {
	prevTERMINFO, hadTERMINFO := os.LookupEnv("TERMINFO")

	if strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		// Some combinations of TERMINFO with TERM in some Tmux value
		// will cause Termbox to fail.
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, err
		}
	}

	restore := func() {
		if hadTERMINFO {
			os.Setenv("TERMINFO", prevTERMINFO)
		}
	}

	return restore, nil
}
