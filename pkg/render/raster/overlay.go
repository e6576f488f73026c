package raster

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/fonts"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// overlay draws the 2D layer of one window.
type overlay struct {
	dc *gg.Context
	w  *compose.Window
}

// pixelRect returns the window-pixel box of rect given in r's normalized
// coordinates as left, top, right, bottom.
func (o *overlay) pixelRect(r *compose.Renderer, rect layout.Rect) (float64, float64, float64, float64) {
	x0, y0 := toPixel(o.w, r, layout.Point{X: rect.XMin, Y: rect.YMax})
	x1, y1 := toPixel(o.w, r, layout.Point{X: rect.XMax, Y: rect.YMin})
	return x0, y0, x1, y1
}

func (o *overlay) border(r *compose.Renderer, b *compose.BorderOverlay) {
	o.dc.SetColor(b.Color.Clamped())
	o.dc.SetLineWidth(b.Width)
	o.dc.SetLineCap(gg.LineCapSquare)
	for _, pl := range b.Lines {
		for i, pt := range pl {
			x, y := toPixel(o.w, r, pt)
			if i == 0 {
				o.dc.MoveTo(x, y)
			} else {
				o.dc.LineTo(x, y)
			}
		}
	}
	_ = o.dc.Stroke()
}

type fontFace struct {
	face            text.Face
	ascent, descent float64
}

// fitFace returns a face for prop whose rendering of s fits a w×h pixel box.
func fitFace(prop scene.TextProperty, s string, w, h float64) (fontFace, error) {
	family := fonts.ParseFamily(prop.Family)
	size := math.Max(h*0.8, 1)
	f, err := fonts.Face(family, prop.Bold, prop.Italic, size)
	if err != nil {
		return fontFace{}, errors.Wrap(errors.ErrCodeInternal, err, "load %s font", prop.Family)
	}
	if adv := f.Advance(s); adv > w && adv > 0 {
		size = math.Max(size*w/adv, 1)
		if f, err = fonts.Face(family, prop.Bold, prop.Italic, size); err != nil {
			return fontFace{}, errors.Wrap(errors.ErrCodeInternal, err, "load %s font", prop.Family)
		}
	}
	return fontFace{f, f.Metrics().Ascent, f.Metrics().Descent}, nil
}

// drawText places s in the pixel box (x0, y0)-(x1, y1) according to the
// justification in prop.
func (o *overlay) drawText(prop scene.TextProperty, s string, x0, y0, x1, y1 float64) error {
	ff, err := fitFace(prop, s, x1-x0, y1-y0)
	if err != nil {
		return err
	}
	o.dc.SetFont(ff.face)
	adv := ff.face.Advance(s)
	x := x0
	switch prop.Justify {
	case layout.HCentered:
		x = (x0 + x1 - adv) / 2
	case layout.Right:
		x = x1 - adv
	}
	var base float64
	switch prop.VJustify {
	case layout.Top:
		base = y0 + ff.ascent
	case layout.VCentered:
		base = (y0+y1)/2 + (ff.ascent-ff.descent)/2
	default:
		base = y1 - ff.descent
	}
	if prop.Shadow {
		o.dc.SetRGB(0, 0, 0)
		o.dc.DrawString(s, x+1, base+1)
	}
	o.dc.SetColor(prop.Color.Clamped())
	o.dc.DrawString(s, x, base)
	return nil
}

func (o *overlay) text(r *compose.Renderer, t *compose.TextWidget) error {
	x0, y0, x1, y1 := o.pixelRect(r, t.Box.Rect())
	if x1-x0 < 1 || y1-y0 < 1 {
		return nil
	}
	return o.drawText(t.Prop, t.Text, x0, y0, x1, y1)
}

const barSteps = 64

func (o *overlay) scalarBar(r *compose.Renderer, b *compose.ScalarBarWidget) error {
	bar := b.Bar
	if bar.Lookup == nil {
		return nil
	}
	x0, y0, x1, y1 := o.pixelRect(r, bar.Position)
	lo, hi := bar.Lookup.Range()
	for i := range barSteps {
		v := lo + (hi-lo)*(float64(i)+0.5)/barSteps
		o.dc.SetColor(bar.Lookup.Lookup(v).Clamped())
		f0, f1 := float64(i)/barSteps, float64(i+1)/barSteps
		if bar.Horizontal {
			o.dc.DrawRectangle(x0+f0*(x1-x0), y0, (f1-f0)*(x1-x0)+0.5, y1-y0)
		} else {
			o.dc.DrawRectangle(x0, y1-f1*(y1-y0), x1-x0, (f1-f0)*(y1-y0)+0.5)
		}
		_ = o.dc.Fill()
	}

	prop := scene.DefaultTextProperty()
	prop.Family = "Sans"
	lh := math.Max(12, (y1-y0)/12)
	if bar.Horizontal {
		lh = math.Max(12, (y1-y0)*0.8)
	}
	if bar.Title != "" {
		if err := o.drawText(prop, bar.Title, x0-lh, y0-lh*1.3, x1+lh, y0-lh*0.2); err != nil {
			return err
		}
	}
	n := bar.Labels
	if n < 2 {
		return nil
	}
	prop.Justify = layout.Left
	prop.VJustify = layout.VCentered
	for i := range n {
		f := float64(i) / float64(n-1)
		label := fmt.Sprintf("%.3g", lo+f*(hi-lo))
		if bar.Horizontal {
			x := x0 + f*(x1-x0)
			prop.Justify = layout.HCentered
			if err := o.drawText(prop, label, x-2*lh, y1+2, x+2*lh, y1+2+lh); err != nil {
				return err
			}
			continue
		}
		y := y1 - f*(y1-y0)
		if err := o.drawText(prop, label, x1+3, y-lh/2, x1+3+3*lh, y+lh/2); err != nil {
			return err
		}
	}
	return nil
}

func (o *overlay) slider(r *compose.Renderer, s *compose.Slider) error {
	x0, y0, x1, y1 := o.pixelRect(r, s.Position)
	mid := (y0 + y1) / 2
	o.dc.SetRGB(0.8, 0.8, 0.8)
	o.dc.SetLineWidth(math.Max(2, (y1-y0)/8))
	o.dc.DrawLine(x0, mid, x1, mid)
	_ = o.dc.Stroke()

	f := 0.0
	if s.Max > s.Min {
		f = (s.Value() - s.Min) / (s.Max - s.Min)
	}
	o.dc.SetRGB(1, 1, 1)
	o.dc.DrawCircle(x0+f*(x1-x0), mid, math.Max(3, (y1-y0)/4))
	_ = o.dc.Fill()

	prop := scene.DefaultTextProperty()
	prop.Family = "Sans"
	label := fmt.Sprintf("%s %.2f", s.Title, s.Value())
	return o.drawText(prop, label, x0, y0-(y1-y0), x1, y0)
}

var axisColors = [3]scene.Color{scene.RGB(1, 0, 0), scene.RGB(0, 1, 0), scene.RGB(0, 0, 1)}

// cubeEdges index the corners of scene.Bounds.Corners.
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// marker draws an orientation marker that shares the renderer camera's
// rotation but not its position.
func (o *overlay) marker(r *compose.Renderer, m *compose.MarkerWidget) error {
	x0, y0, x1, y1 := o.pixelRect(r, m.Marker.Viewport)
	cx, cy := (x0+x1)/2, (y0+y1)/2
	half := math.Min(x1-x0, y1-y0) * 0.4
	rot := r.Camera.ViewMatrix().Mat3()
	project := func(v mgl64.Vec3) (float64, float64, float64) {
		p := rot.Mul3x1(v)
		return cx + p[0]*half, cy - p[1]*half, p[2]
	}

	if m.Marker.Kind == scene.MarkerCube {
		corners := scene.NewBounds(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5}).Corners()
		o.dc.SetColor(m.Marker.Color.Clamped())
		o.dc.SetLineWidth(1.5)
		for _, e := range cubeEdges {
			ax, ay, _ := project(corners[e[0]])
			bx, by, _ := project(corners[e[1]])
			o.dc.DrawLine(ax, ay, bx, by)
		}
		_ = o.dc.Stroke()
	}

	type axis struct {
		i     int
		x, y  float64
		depth float64
	}
	axes := make([]axis, 3)
	for i := range axes {
		var dir mgl64.Vec3
		dir[i] = 1
		x, y, z := project(dir)
		axes[i] = axis{i: i, x: x, y: y, depth: z}
	}
	slices.SortFunc(axes, func(a, b axis) int {
		switch {
		case a.depth < b.depth:
			return -1
		case a.depth > b.depth:
			return 1
		}
		return 0
	})
	prop := scene.DefaultTextProperty()
	prop.Family = "Sans"
	prop.Color = m.Marker.Color
	lh := math.Max(8, half/3)
	for _, a := range axes {
		o.dc.SetColor(axisColors[a.i])
		o.dc.SetLineWidth(2)
		o.dc.DrawLine(cx, cy, a.x, a.y)
		_ = o.dc.Stroke()
		if label := m.Marker.Labels[a.i]; label != "" {
			if err := o.drawText(prop, label, a.x-lh, a.y-lh, a.x+lh, a.y+lh); err != nil {
				return err
			}
		}
	}
	return nil
}
