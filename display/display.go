// Package display runs the overlay's frame loop against a host window.
package display

import (
	"github.com/noriah/ringvis/graphic"
)

// Input is the host's input state sampled once per frame.
type Input struct {
	// Toggle is true while the visibility key is held down.
	Toggle bool
	// Close is true once the host has been asked to close.
	Close bool
}

// Host is the window the overlay draws in to.
type Host interface {
	// PollInput pumps host events and returns the current input state.
	PollInput() Input
	// Clear clears the frame to transparent.
	Clear()
	// Present shows the finished frame.
	Present()
	// SetPassthrough makes the host ignore mouse input when true.
	SetPassthrough(bool)
	// Drawer returns the mesh drawer for this host.
	Drawer() graphic.MeshDrawer
	// Close releases the host.
	Close() error
}

// Panel draws the menu panels: instructions, help and a color picker bound to
// the ring's base color.
type Panel interface {
	Render(base *graphic.Color)
}

// Toggle is an edge-triggered visibility switch. It flips once per key press
// regardless of how long the key is held.
type Toggle struct {
	shown bool
	held  bool
}

// NewToggle returns a toggle in the given state.
func NewToggle(shown bool) Toggle {
	return Toggle{shown: shown}
}

// Update feeds the current key state. Returns true if the toggle flipped.
func (t *Toggle) Update(down bool) bool {
	fired := down && !t.held
	t.held = down

	if fired {
		t.shown = !t.shown
	}

	return fired
}

// Shown reports whether the menu is shown. The overlay takes mouse input only
// while shown.
func (t *Toggle) Shown() bool {
	return t.shown
}
