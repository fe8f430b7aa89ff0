package display

import (
	"fmt"

	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// State is the application lifecycle state.
type State int

// States
const (
	Uninitialized State = iota
	Running
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrNotUninitialized is returned by Init when called more than once.
var ErrNotUninitialized = errors.New("app already initialized")

// Config configures an App.
type Config struct {
	Host     Host
	Panel    Panel
	Ring     *graphic.Ring
	Levels   graphic.LevelSource
	Base     *graphic.Color // shared with Panel, render thread only
	Channels int
}

// App drives the renderer and the menu once per frame.
type App struct {
	host     Host
	panel    Panel
	ring     *graphic.Ring
	base     *graphic.Color
	renderer *graphic.Renderer

	toggle Toggle
	state  State
}

// NewApp returns an uninitialized app. The menu starts shown.
func NewApp(cfg Config) *App {
	if cfg.Base == nil {
		base := graphic.Red
		cfg.Base = &base
	}

	return &App{
		host:  cfg.Host,
		panel: cfg.Panel,
		ring:  cfg.Ring,
		base:  cfg.Base,
		renderer: graphic.NewRenderer(
			cfg.Levels, cfg.Ring, cfg.Base, cfg.Channels, cfg.Host.Drawer()),
		toggle: NewToggle(true),
	}
}

// State returns the current lifecycle state.
func (a *App) State() State {
	return a.state
}

// Shown reports whether the menu is shown.
func (a *App) Shown() bool {
	return a.toggle.Shown()
}

// Init uploads the ring and moves the app to Running.
func (a *App) Init() error {
	if a.state != Uninitialized {
		return ErrNotUninitialized
	}

	if err := a.host.Drawer().Upload(a.ring.Positions); err != nil {
		return errors.Wrap(err, "failed to upload ring")
	}

	a.host.SetPassthrough(!a.toggle.Shown())
	a.state = Running

	return nil
}

// Tick runs one frame. It returns false once the host asked to close, after
// which the app is ShuttingDown.
func (a *App) Tick() bool {
	if a.state != Running {
		return false
	}

	in := a.host.PollInput()
	if in.Close {
		a.state = ShuttingDown
		return false
	}

	a.host.Clear()

	a.renderer.Render()

	if a.toggle.Update(in.Toggle) {
		a.host.SetPassthrough(!a.toggle.Shown())
	}

	if a.toggle.Shown() {
		a.panel.Render(a.base)
	}

	a.host.Present()

	return true
}

// Run ticks until the host closes, then shuts down.
func (a *App) Run() error {
	if a.state != Running {
		return errors.Errorf("cannot run app while %v", a.state)
	}

	for a.Tick() {
	}

	return a.Shutdown()
}

// Shutdown releases the host.
func (a *App) Shutdown() error {
	a.state = ShuttingDown
	return a.host.Close()
}
