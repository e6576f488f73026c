package viewer

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
)

// Key names shared by all viewers. Printable keys use their character.
const (
	KeyUp    = "Up"
	KeyDown  = "Down"
	KeyLeft  = "Left"
	KeyRight = "Right"
	KeyTab   = "Tab"
	KeyEsc   = "Escape"
)

// Controls moves the camera of one active renderer at a time. With a
// shared camera every view follows.
type Controls struct {
	// Step is the orbit angle per arrow press, in degrees.
	Step float64
	// ZoomFactor is applied by + and divided out by -.
	ZoomFactor float64

	active int
}

// NewControls returns controls with a 10 degree step and 1.1 zoom.
func NewControls() *Controls {
	return &Controls{Step: 10, ZoomFactor: 1.1}
}

// Active returns the renderer the keys act on, or nil for a window
// without cameras.
func (c *Controls) Active(w *compose.Window) *compose.Renderer {
	rs := w.ContentRenderers()
	if len(rs) == 0 {
		return nil
	}
	if c.active >= len(rs) {
		c.active = 0
	}
	return rs[c.active]
}

// Handle applies key to w and reports whether the view changed.
func (c *Controls) Handle(w *compose.Window, key string) bool {
	if key == KeyTab {
		if n := len(w.ContentRenderers()); n > 0 {
			c.active = (c.active + 1) % n
		}
		return false
	}
	r := c.Active(w)
	if r == nil || r.Camera == nil {
		return false
	}
	switch key {
	case KeyLeft:
		r.Camera.Azimuth(-c.Step)
	case KeyRight:
		r.Camera.Azimuth(c.Step)
	case KeyUp:
		r.Camera.Elevation(c.Step)
	case KeyDown:
		r.Camera.Elevation(-c.Step)
	case "+", "=":
		r.Camera.Zoom(c.ZoomFactor)
	case "-":
		r.Camera.Zoom(1 / c.ZoomFactor)
	case "r":
		r.RestoreView()
	default:
		return false
	}
	return true
}

// Help lists the key bindings as key, description pairs.
func Help() [][2]string {
	return [][2]string{
		{"←/→", "azimuth"},
		{"↑/↓", "elevation"},
		{"+/-", "zoom"},
		{"tab", "next view"},
		{"r", "reset view"},
		{"k", "snapshot"},
		{"q", "quit"},
	}
}

// isQuit reports keys that close every viewer.
func isQuit(key string) bool {
	return key == "q" || key == KeyEsc
}

// press dispatches key to the window observers and the controls, then
// re-renders when anything may have changed.
func press(w *compose.Window, c *Controls, key string) error {
	if w.State() == compose.Closed {
		return nil
	}
	w.KeyPress(key)
	c.Handle(w, key)
	if key == SnapshotKey {
		return nil
	}
	return w.Render()
}
