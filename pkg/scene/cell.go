package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/layout"
)

// Cell is the scene description of one grid cell. It records intent only;
// the composer reads it when building a window.
type Cell struct {
	Background Color
	Title      string
	Text       TextProperty
	Actors     []*Actor
	Marker     *Marker
	ScalarBar  *ScalarBar

	viewport  *layout.Rect
	placement *Placement
	nudge     Nudge
}

// NewCell returns an empty cell with a black background and default text.
func NewCell() *Cell {
	return &Cell{Text: DefaultTextProperty()}
}

// AddActor appends actors to the cell.
func (c *Cell) AddActor(actors ...*Actor) *Cell {
	c.Actors = append(c.Actors, actors...)
	return c
}

// SetCamera hand-places the camera. The composer resets it afterwards, so
// only the direction and view-up survive framing.
func (c *Cell) SetCamera(position, focal, viewUp mgl64.Vec3) *Cell {
	c.placement = &Placement{Position: position, FocalPoint: focal, ViewUp: viewUp}
	return c
}

// NudgeCamera records adjustments applied after the reset. Zero zoom or
// dolly leaves the distance unchanged.
func (c *Cell) NudgeCamera(azimuth, elevation, zoom, dolly float64) *Cell {
	c.nudge = Nudge{Azimuth: azimuth, Elevation: elevation, Zoom: zoom, Dolly: dolly}
	return c
}

// SetTitle sets the cell caption. An empty title draws nothing.
func (c *Cell) SetTitle(title string) *Cell {
	c.Title = title
	return c
}

// SetBackground sets the color behind the cell's actors.
func (c *Cell) SetBackground(col Color) *Cell {
	c.Background = col
	return c
}

// SetOrientationMarker shows m in a corner of the cell, turning with the
// camera. A nil marker removes it.
func (c *Cell) SetOrientationMarker(m *Marker) *Cell {
	c.Marker = m
	return c
}

// SetScalarBar attaches a color legend. The bar shares its lookup table
// with the actors that use it.
func (c *Cell) SetScalarBar(b *ScalarBar) *Cell {
	c.ScalarBar = b
	return c
}

// SetTextProperty sets the font and justification of the title.
func (c *Cell) SetTextProperty(p TextProperty) *Cell {
	c.Text = p
	return c
}

// SetViewport overrides the viewport the grid planner would assign.
func (c *Cell) SetViewport(r layout.Rect) *Cell {
	c.viewport = &r
	return c
}

// Viewport returns the hand-set viewport, if any.
func (c *Cell) Viewport() (layout.Rect, bool) {
	if c.viewport == nil {
		return layout.Rect{}, false
	}
	return *c.viewport, true
}

// Placement returns the hand-set camera pose, if any.
func (c *Cell) Placement() (Placement, bool) {
	if c.placement == nil {
		return Placement{}, false
	}
	return *c.placement, true
}

// Nudge returns the recorded camera adjustments.
func (c *Cell) Nudge() Nudge { return c.nudge }

// Bounds returns the union of all visible actor bounds.
func (c *Cell) Bounds() Bounds {
	var b Bounds
	for _, a := range c.Actors {
		b = b.Union(a.Bounds())
	}
	return b
}

// BuildCamera returns a new camera placed, reset to the cell bounds and
// nudged, in that order.
func (c *Cell) BuildCamera() *Camera { return c.FrameCamera(c.Bounds()) }

// FrameCamera is BuildCamera framing b instead of the cell's own bounds.
func (c *Cell) FrameCamera(b Bounds) *Camera {
	cam := NewCamera()
	if p, ok := c.Placement(); ok {
		cam.Position, cam.FocalPoint, cam.ViewUp = p.Position, p.FocalPoint, p.ViewUp
	}
	cam.Reset(b)
	c.nudge.Apply(cam)
	cam.ResetClippingRange(b)
	return cam
}
