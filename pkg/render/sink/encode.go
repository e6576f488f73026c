package sink

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/raster"
)

// Option configures Encode and RenderSVG.
type Option func(*encoder)

type encoder struct {
	quality  int
	fonts    bool
	backdrop compose.Painter
}

// WithQuality sets the JPEG quality.
func WithQuality(q int) Option { return func(e *encoder) { e.quality = q } }

// WithoutFonts leaves fonts out of SVG output. Viewers fall back to their
// own sans-serif and monospace faces.
func WithoutFonts() Option { return func(e *encoder) { e.fonts = false } }

// WithBackdrop sets the painter that draws the bitmap under SVG vectors.
// It should not paint borders or labels.
func WithBackdrop(p compose.Painter) Option { return func(e *encoder) { e.backdrop = p } }

func newEncoder(opts []Option) *encoder {
	e := &encoder{
		quality:  DefaultJPEGQuality,
		fonts:    true,
		backdrop: raster.New(raster.WithLayers(raster.LayerScene | raster.LayerWidgets)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes w in format f.
func Encode(w *compose.Window, f render.Format, opts ...Option) ([]byte, error) {
	e := newEncoder(opts)
	switch f {
	case render.PNG, render.JPEG:
		img := w.Frame()
		if img == nil {
			return nil, errors.New(errors.ErrCodeInvalidState, "window %s has no frame; render it first", w.Name)
		}
		if f == render.JPEG {
			return RenderJPEG(img, e.quality)
		}
		return RenderPNG(img)
	case render.SVG:
		return e.svg(w)
	case render.DOT:
		return []byte(ToDOT(w)), nil
	case render.JSON:
		return RenderJSON(w)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "no sink for format %v", f)
}
