package compose

import (
	"io"

	"github.com/barkimedes/go-deepcopy"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Option configures Compose.
type Option func(*composer)

type composer struct {
	name        string
	borderColor scene.Color
	borderWidth float64
	hJustify    layout.HJustify
	vJustify    layout.VJustify
	titleWidth  float64
	titleHeight float64
	fillerBG    *scene.Color
	logger      *log.Logger
	painter     Painter
	decorator   Decorator
}

// WithName sets the window name used in logs and as the snapshot stem.
func WithName(name string) Option { return func(c *composer) { c.name = name } }

// WithBorderColor sets the color of every cell border. Default white.
func WithBorderColor(col scene.Color) Option { return func(c *composer) { c.borderColor = col } }

// WithBorderWidth sets the border stroke width. Widths below MinLineWidth
// are raised to it.
func WithBorderWidth(w float64) Option { return func(c *composer) { c.borderWidth = w } }

// WithLogger sets the logger for composition and window events.
func WithLogger(l *log.Logger) Option { return func(c *composer) { c.logger = l } }

// WithPainter sets the backend Window.Render paints with. Without one,
// Render only advances the window state.
func WithPainter(p Painter) Option { return func(c *composer) { c.painter = p } }

// WithFillerBackground sets the background of filler cells. By default
// fillers take the first content cell's background.
func WithFillerBackground(bg scene.Color) Option {
	return func(c *composer) { c.fillerBG = &bg }
}

// WithTitleLayout sets the justification and maximum box size used for the
// whole-grid title layout.
func WithTitleLayout(h layout.HJustify, v layout.VJustify, width, height float64) Option {
	return func(c *composer) {
		c.hJustify, c.vJustify = h, v
		c.titleWidth, c.titleHeight = width, height
	}
}

// Compose builds a window of rows×cols renderers, each rendererSize pixels
// square, from cells in grid order. Indices past len(cells) become filler
// renderers with a background and border only.
//
// With shareCamera every content cell aliases one camera, placed and nudged
// by the first cell and framing the union of all cell bounds; otherwise each
// cell gets its own camera, reset to its bounds and nudged. Actors are copied
// with their meshes, so editing a cell after Compose does not change the
// window.
func Compose(cells []*scene.Cell, cols, rows, rendererSize int, shareCamera bool, opts ...Option) (*Window, error) {
	c := &composer{
		name:        "viewgrid",
		borderColor: scene.RGB(1, 1, 1),
		borderWidth: MinLineWidth,
		hJustify:    layout.HCentered,
		vJustify:    layout.Bottom,
		titleWidth:  layout.DefaultTextWidth,
		titleHeight: layout.DefaultTextHeight,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.compose(cells, cols, rows, rendererSize, shareCamera)
}

func (c *composer) compose(cells []*scene.Cell, cols, rows, size int, share bool) (*Window, error) {
	grid, err := layout.PlanGrid(rows, cols, len(cells))
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "renderer size must be positive, got %d", size)
	}
	for i, cell := range cells {
		if cell == nil {
			return nil, errors.New(errors.ErrCodeInvalidScene, "cell %d is nil", i)
		}
	}

	boxes, err := c.titleBoxes(cells)
	if err != nil {
		return nil, err
	}

	w := newWindow(c.name, cols*size, rows*size, grid, c.logger, c.painter)
	fillerBG := scene.RGB(0, 0, 0)
	switch {
	case c.fillerBG != nil:
		fillerBG = *c.fillerBG
	case len(cells) > 0:
		fillerBG = cells[0].Background
	}

	var shared *scene.Camera
	if share {
		shared = sharedCamera(cells)
	}
	for _, gc := range grid.Cells {
		if gc.Filler {
			r := newRenderer(w, gc, fillerBG)
			if err := c.decorator.Decorate(r, gc.Border, c.borderColor, c.borderWidth, "", nil, scene.TextProperty{}); err != nil {
				return nil, err
			}
			w.Renderers = append(w.Renderers, r)
			continue
		}

		cell := cells[gc.Index]
		r := newRenderer(w, gc, cell.Background)
		r.Title = cell.Title
		if vp, ok := cell.Viewport(); ok {
			if !vp.ApproxEqual(gc.Viewport, 1e-9) {
				w.diagnose(errors.New(errors.ErrCodeViewportMismatch,
					"cell %d viewport %v differs from grid viewport %v", gc.Index, vp, gc.Viewport))
			}
			r.Viewport = vp
		}
		for _, a := range cell.Actors {
			r.Actors = append(r.Actors, copyActor(a))
		}
		if share {
			r.Camera = shared
		} else {
			r.Camera = cell.BuildCamera()
		}

		var box *layout.TextBox
		if b, ok := boxes[cell.Title]; ok {
			box = &b
		}
		if err := c.decorator.Decorate(r, gc.Border, c.borderColor, c.borderWidth, cell.Title, box, cell.Text); err != nil {
			return nil, err
		}
		if cell.Marker != nil {
			if err := r.AddWidget(&MarkerWidget{Marker: *cell.Marker}); err != nil {
				return nil, err
			}
		}
		if cell.ScalarBar != nil {
			if err := r.AddWidget(&ScalarBarWidget{Bar: *cell.ScalarBar}); err != nil {
				return nil, err
			}
		}
		w.Renderers = append(w.Renderers, r)
	}
	for _, r := range w.Renderers {
		r.saveHome()
	}

	c.logger.Debug("composed", "window", w.Name, "grid", [2]int{rows, cols}, "cells", len(cells),
		"size", [2]int{w.Width, w.Height}, "shared_camera", share)
	return w, nil
}

func (c *composer) titleBoxes(cells []*scene.Cell) (map[string]layout.TextBox, error) {
	var titles []string
	for _, cell := range cells {
		if cell.Title != "" {
			titles = append(titles, cell.Title)
		}
	}
	if len(titles) == 0 {
		return nil, nil
	}
	return layout.TextPositions(titles, c.hJustify, c.vJustify, c.titleWidth, c.titleHeight)
}

// sharedCamera builds the camera aliased by every content cell when cameras
// are shared.
func sharedCamera(cells []*scene.Cell) *scene.Camera {
	if len(cells) == 0 {
		return nil
	}
	var b scene.Bounds
	for _, cell := range cells {
		b = b.Union(cell.Bounds())
	}
	return cells[0].FrameCamera(b)
}

// copyActor returns a copy of a with its own mesh. Lookup tables stay
// shared.
func copyActor(a *scene.Actor) *scene.Actor {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Mesh != nil {
		cp.Mesh = deepcopy.MustAnything(a.Mesh).(*scene.Mesh)
	}
	if a.Backface != nil {
		bf := *a.Backface
		cp.Backface = &bf
	}
	return &cp
}
