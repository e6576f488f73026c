package raster

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
)

// Layer selects parts of a window to paint.
type Layer uint8

const (
	// LayerScene is the background and actors of every renderer.
	LayerScene Layer = 1 << iota
	// LayerWidgets is orientation markers and sliders.
	LayerWidgets
	// LayerBorders is the border overlays.
	LayerBorders
	// LayerLabels is titles and scalar bars.
	LayerLabels

	AllLayers = LayerScene | LayerWidgets | LayerBorders | LayerLabels
)

// Painter renders windows in software.
type Painter struct {
	ambient float64
	diffuse float64
	power   float64
	layers  Layer
	logger  *log.Logger
}

// Option configures a Painter.
type Option func(*Painter)

// WithLighting sets the ambient and diffuse coefficients and the specular
// exponent.
func WithLighting(ambient, diffuse, power float64) Option {
	return func(p *Painter) { p.ambient, p.diffuse, p.power = ambient, diffuse, power }
}

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l *log.Logger) Option { return func(p *Painter) { p.logger = l } }

// WithLayers restricts painting to the given layers. Renderer rectangles
// outside LayerScene stay transparent.
func WithLayers(l Layer) Option { return func(p *Painter) { p.layers = l } }

// New returns a Painter with a white headlight.
func New(opts ...Option) *Painter {
	p := &Painter{ambient: 0.25, diffuse: 0.75, power: 20, layers: AllLayers, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ compose.Painter = (*Painter)(nil)

// Paint draws w into a new image of w.Width x w.Height pixels.
func (p *Painter) Paint(w *compose.Window) (*image.RGBA, error) {
	if w.Width < 1 || w.Height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "window %s has no pixels (%dx%d)", w.Name, w.Width, w.Height)
	}
	start := time.Now()
	dc := gg.NewContext(w.Width, w.Height)
	defer dc.Close()

	if p.layers&LayerScene != 0 {
		for _, r := range w.Renderers {
			x0, y0, x1, y1 := r.Viewport.Pixels(w.Width, w.Height)
			if x1 <= x0 || y1 <= y0 {
				continue
			}
			img := p.drawScene(r, x1-x0, y1-y0)
			dc.DrawImage(gg.ImageBufFromImage(img), float64(x0), float64(y0))
		}
	}
	if err := p.paintOverlays(&overlay{dc: dc, w: w}); err != nil {
		return nil, err
	}

	_ = dc.FlushGPU()
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected canvas image type %T", dc.Image())
	}
	p.logger.Debug("painted", "window", w.Name, "size", [2]int{w.Width, w.Height},
		"renderers", len(w.Renderers), "elapsed", time.Since(start).Round(time.Millisecond))
	return img, nil
}

func (p *Painter) paintOverlays(o *overlay) error {
	rs := o.w.Renderers
	if p.layers&LayerWidgets != 0 {
		for _, r := range rs {
			if m := r.Marker(); m != nil && m.Enabled() && r.Camera != nil {
				if err := o.marker(r, m); err != nil {
					return err
				}
			}
		}
	}
	if p.layers&LayerBorders != 0 {
		for _, r := range rs {
			for _, b := range r.Overlays {
				o.border(r, b)
			}
		}
	}
	for _, r := range rs {
		if p.layers&LayerLabels != 0 {
			for _, t := range r.Texts() {
				if !t.Enabled() {
					continue
				}
				if err := o.text(r, t); err != nil {
					return err
				}
			}
			if b := r.ScalarBar(); b != nil && b.Enabled() {
				if err := o.scalarBar(r, b); err != nil {
					return err
				}
			}
		}
		if p.layers&LayerWidgets != 0 {
			for _, s := range r.Sliders() {
				if !s.Enabled() {
					continue
				}
				if err := o.slider(r, s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// toPixel maps a point in r's normalized viewport coordinates to window
// pixels.
func toPixel(w *compose.Window, r *compose.Renderer, pt layout.Point) (float64, float64) {
	wp := r.Viewport.Map(pt)
	return wp.X * float64(w.Width), (1 - wp.Y) * float64(w.Height)
}
