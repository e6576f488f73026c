package compose

import (
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// BorderOverlay is a set of polylines drawn on top of a renderer in its
// normalized viewport coordinates. Overlays never clip 3D content.
type BorderOverlay struct {
	Style layout.BorderStyle
	Lines []layout.Polyline
	Color scene.Color
	Width float64
}

// Renderer is one sub-scene of a window.
type Renderer struct {
	Index      int
	Row, Col   int
	Viewport   layout.Rect
	Background scene.Color
	Filler     bool
	Title      string

	// Camera may be shared with other renderers of the same window.
	Camera *scene.Camera
	Actors []*scene.Actor

	Overlays []*BorderOverlay
	Widgets  []Widget

	home   *scene.Camera
	window *Window
}

func newRenderer(w *Window, cell layout.Cell, bg scene.Color) *Renderer {
	return &Renderer{
		Index:      cell.Index,
		Row:        cell.Row,
		Col:        cell.Col,
		Viewport:   cell.Viewport,
		Background: bg,
		Filler:     cell.Filler,
		window:     w,
	}
}

// AddWidget attaches widget to r. A widget belongs to one renderer only.
func (r *Renderer) AddWidget(wd Widget) error {
	if err := wd.attach(r); err != nil {
		return err
	}
	for _, have := range r.Widgets {
		if have == wd {
			return nil
		}
	}
	r.Widgets = append(r.Widgets, wd)
	if r.window != nil && r.window.state != Building && r.window.state != Closed {
		wd.enable(r.window)
	}
	return nil
}

// Window returns the owning window.
func (r *Renderer) Window() *Window { return r.window }

// Texts returns the text widgets of r in installation order.
func (r *Renderer) Texts() []*TextWidget {
	var out []*TextWidget
	for _, wd := range r.Widgets {
		if t, ok := wd.(*TextWidget); ok {
			out = append(out, t)
		}
	}
	return out
}

// Marker returns the orientation marker widget, if any.
func (r *Renderer) Marker() *MarkerWidget {
	for _, wd := range r.Widgets {
		if m, ok := wd.(*MarkerWidget); ok {
			return m
		}
	}
	return nil
}

// ScalarBar returns the scalar bar widget, if any.
func (r *Renderer) ScalarBar() *ScalarBarWidget {
	for _, wd := range r.Widgets {
		if b, ok := wd.(*ScalarBarWidget); ok {
			return b
		}
	}
	return nil
}

// Sliders returns the slider widgets of r.
func (r *Renderer) Sliders() []*Slider {
	var out []*Slider
	for _, wd := range r.Widgets {
		if s, ok := wd.(*Slider); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bounds returns the union of the renderer's actor bounds.
func (r *Renderer) Bounds() scene.Bounds {
	var b scene.Bounds
	for _, a := range r.Actors {
		b = b.Union(a.Bounds())
	}
	return b
}

// ResetCamera frames the renderer's actors without changing direction.
func (r *Renderer) ResetCamera() {
	if r.Camera != nil {
		r.Camera.Reset(r.Bounds())
	}
}

// ViewCamera returns a copy of the camera with its clipping range fitted to
// r's actors, or nil without a camera. r.Camera is not modified.
func (r *Renderer) ViewCamera() *scene.Camera {
	if r.Camera == nil {
		return nil
	}
	cam := r.Camera.Clone()
	cam.ResetClippingRange(r.Bounds())
	return cam
}

// RestoreView puts the camera back where composition left it.
func (r *Renderer) RestoreView() {
	if r.Camera == nil || r.home == nil {
		return
	}
	*r.Camera = *r.home
}

func (r *Renderer) saveHome() {
	if r.Camera != nil {
		r.home = r.Camera.Clone()
	}
}
