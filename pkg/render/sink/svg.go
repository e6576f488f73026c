package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/fonts"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// RenderSVG writes w as SVG. The 3D views are painted by the backdrop
// painter and embedded as a PNG; borders, titles and scalar bars are
// vectors on top.
func RenderSVG(w *compose.Window, opts ...Option) ([]byte, error) {
	return newEncoder(opts).svg(w)
}

type fontKey struct {
	family       fonts.Family
	bold, italic bool
}

func (e *encoder) svg(w *compose.Window) ([]byte, error) {
	img, err := e.backdrop.Paint(w)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "paint svg backdrop")
	}
	png, err := RenderPNG(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w.Width, w.Height, w.Width, w.Height)
	if e.fonts {
		renderFontFaces(&buf, usedFonts(w))
	}
	fmt.Fprintf(&buf, `  <image x="0" y="0" width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
		w.Width, w.Height, base64.StdEncoding.EncodeToString(png))

	buf.WriteString("  <g class=\"borders\" fill=\"none\" stroke-linecap=\"square\">\n")
	for _, r := range w.Renderers {
		for _, b := range r.Overlays {
			renderBorder(&buf, w, r, b)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"labels\">\n")
	for _, r := range w.Renderers {
		for _, t := range r.Texts() {
			if t.Enabled() {
				x0, y0, x1, y1 := pixelRect(w, r, t.Box.Rect())
				if err := renderText(&buf, t.Prop, t.Text, x0, y0, x1, y1); err != nil {
					return nil, err
				}
			}
		}
		if b := r.ScalarBar(); b != nil && b.Enabled() {
			if err := renderScalarBar(&buf, w, r, b.Bar); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func usedFonts(w *compose.Window) []fontKey {
	seen := map[fontKey]bool{}
	var out []fontKey
	add := func(k fontKey) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, r := range w.Renderers {
		for _, t := range r.Texts() {
			add(fontKey{fonts.ParseFamily(t.Prop.Family), t.Prop.Bold, t.Prop.Italic})
		}
		if r.ScalarBar() != nil {
			add(fontKey{family: fonts.Sans})
		}
	}
	return out
}

func renderFontFaces(buf *bytes.Buffer, keys []fontKey) {
	if len(keys) == 0 {
		return
	}
	buf.WriteString("  <style>\n")
	for _, k := range keys {
		weight, style := "normal", "normal"
		if k.bold {
			weight = "bold"
		}
		if k.italic {
			style = "italic"
		}
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			k.family.Name(), weight, style, fonts.Base64(k.family, k.bold, k.italic))
	}
	buf.WriteString("  </style>\n")
}

func toPixel(w *compose.Window, r *compose.Renderer, pt layout.Point) (float64, float64) {
	wp := r.Viewport.Map(pt)
	return wp.X * float64(w.Width), (1 - wp.Y) * float64(w.Height)
}

func pixelRect(w *compose.Window, r *compose.Renderer, rect layout.Rect) (float64, float64, float64, float64) {
	x0, y0 := toPixel(w, r, layout.Point{X: rect.XMin, Y: rect.YMax})
	x1, y1 := toPixel(w, r, layout.Point{X: rect.XMax, Y: rect.YMin})
	return x0, y0, x1, y1
}

func renderBorder(buf *bytes.Buffer, w *compose.Window, r *compose.Renderer, b *compose.BorderOverlay) {
	for _, pl := range b.Lines {
		pts := make([]string, len(pl))
		for i, pt := range pl {
			x, y := toPixel(w, r, pt)
			pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		}
		fmt.Fprintf(buf, `    <polyline points="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			strings.Join(pts, " "), b.Color.Clamped().Hex(), b.Width)
	}
}

// fitSize returns the font size at which s fills a w×h box without
// overflowing it.
func fitSize(prop scene.TextProperty, s string, w, h float64) (float64, error) {
	size := math.Max(h*0.8, 1)
	face, err := fonts.Face(fonts.ParseFamily(prop.Family), prop.Bold, prop.Italic, size)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "load %s font", prop.Family)
	}
	if adv := face.Advance(s); adv > w && adv > 0 {
		size = math.Max(size*w/adv, 1)
	}
	return size, nil
}

func renderText(buf *bytes.Buffer, prop scene.TextProperty, s string, x0, y0, x1, y1 float64) error {
	if x1-x0 < 1 || y1-y0 < 1 {
		return nil
	}
	size, err := fitSize(prop, s, x1-x0, y1-y0)
	if err != nil {
		return err
	}
	x, anchor := x0, "start"
	switch prop.Justify {
	case layout.HCentered:
		x, anchor = (x0+x1)/2, "middle"
	case layout.Right:
		x, anchor = x1, "end"
	}
	y, baseline := y1-0.2*size, "alphabetic"
	switch prop.VJustify {
	case layout.Top:
		y, baseline = y0, "hanging"
	case layout.VCentered:
		y, baseline = (y0+y1)/2, "central"
	}

	family := fonts.ParseFamily(prop.Family)
	attrs := fmt.Sprintf(`text-anchor="%s" dominant-baseline="%s" font-family="%s" font-size="%.1f"`,
		anchor, baseline, family.CSSFamily(), size)
	if prop.Bold {
		attrs += ` font-weight="bold"`
	}
	if prop.Italic {
		attrs += ` font-style="italic"`
	}
	var esc bytes.Buffer
	_ = xml.EscapeText(&esc, []byte(s))
	if prop.Shadow {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" %s fill="#000000">%s</text>`+"\n", x+1, y+1, attrs, esc.String())
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" %s fill="%s">%s</text>`+"\n", x, y, attrs, prop.Color.Clamped().Hex(), esc.String())
	return nil
}

const barSteps = 64

func renderScalarBar(buf *bytes.Buffer, w *compose.Window, r *compose.Renderer, bar scene.ScalarBar) error {
	if bar.Lookup == nil {
		return nil
	}
	x0, y0, x1, y1 := pixelRect(w, r, bar.Position)
	lo, hi := bar.Lookup.Range()
	buf.WriteString("    <g class=\"scalar-bar\">\n")
	for i := range barSteps {
		v := lo + (hi-lo)*(float64(i)+0.5)/barSteps
		f0, f1 := float64(i)/barSteps, float64(i+1)/barSteps
		x, y, bw, bh := x0, y1-f1*(y1-y0), x1-x0, (f1-f0)*(y1-y0)
		if bar.Horizontal {
			x, y, bw, bh = x0+f0*(x1-x0), y0, (f1-f0)*(x1-x0), y1-y0
		}
		fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			x, y, bw, bh, bar.Lookup.Lookup(v).Clamped().Hex())
	}
	buf.WriteString("    </g>\n")

	prop := scene.DefaultTextProperty()
	prop.Family = "Sans"
	lh := math.Max(12, (y1-y0)/12)
	if bar.Title != "" {
		if err := renderText(buf, prop, bar.Title, x0-lh, y0-lh*1.3, x1+lh, y0-lh*0.2); err != nil {
			return err
		}
	}
	if bar.Labels < 2 {
		return nil
	}
	prop.Justify, prop.VJustify = layout.Left, layout.VCentered
	for i := range bar.Labels {
		f := float64(i) / float64(bar.Labels-1)
		label := fmt.Sprintf("%.3g", lo+f*(hi-lo))
		if bar.Horizontal {
			prop.Justify = layout.HCentered
			x := x0 + f*(x1-x0)
			if err := renderText(buf, prop, label, x-2*lh, y1+2, x+2*lh, y1+2+lh); err != nil {
				return err
			}
			continue
		}
		y := y1 - f*(y1-y0)
		if err := renderText(buf, prop, label, x1+3, y-lh/2, x1+3+3*lh, y+lh/2); err != nil {
			return err
		}
	}
	return nil
}
