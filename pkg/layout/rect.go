package layout

import (
	"fmt"
	"math"
)

// Rect is a viewport in normalized window coordinates: XMin < XMax and
// YMin < YMax, all within [0, 1], origin at the bottom-left.
type Rect struct {
	XMin float64 `json:"xmin" yaml:"xmin" toml:"xmin"`
	YMin float64 `json:"ymin" yaml:"ymin" toml:"ymin"`
	XMax float64 `json:"xmax" yaml:"xmax" toml:"xmax"`
	YMax float64 `json:"ymax" yaml:"ymax" toml:"ymax"`
}

// UnitRect covers the whole window.
var UnitRect = Rect{XMin: 0, YMin: 0, XMax: 1, YMax: 1}

// Width returns XMax - XMin.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns YMax - YMin.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Valid reports whether r is a non-empty rectangle inside the unit square.
func (r Rect) Valid() bool {
	return r.XMin >= 0 && r.YMin >= 0 && r.XMax <= 1 && r.YMax <= 1 &&
		r.XMin < r.XMax && r.YMin < r.YMax
}

// Intersect returns the overlap of r and o. The result is the zero Rect
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := math.Max(r.XMin, o.XMin), math.Max(r.YMin, o.YMin)
	x1, y1 := math.Min(r.XMax, o.XMax), math.Min(r.YMax, o.YMax)
	if x0 >= x1 || y0 >= y1 {
		return Rect{}
	}
	return Rect{XMin: x0, YMin: y0, XMax: x1, YMax: y1}
}

// ApproxEqual reports whether r and o agree within eps on every bound.
func (r Rect) ApproxEqual(o Rect, eps float64) bool {
	return math.Abs(r.XMin-o.XMin) <= eps && math.Abs(r.YMin-o.YMin) <= eps &&
		math.Abs(r.XMax-o.XMax) <= eps && math.Abs(r.YMax-o.YMax) <= eps
}

// Map converts a point given in r's local normalized coordinates into
// window coordinates.
func (r Rect) Map(p Point) Point {
	return Point{X: r.XMin + p.X*r.Width(), Y: r.YMin + p.Y*r.Height()}
}

// Pixels converts r into a pixel rectangle of a w x h window with the origin
// at the top-left, as image libraries expect. The returned values are the
// left, top, right and bottom pixel edges.
func (r Rect) Pixels(w, h int) (x0, y0, x1, y1 int) {
	fw, fh := float64(w), float64(h)
	x0 = int(math.Round(r.XMin * fw))
	x1 = int(math.Round(r.XMax * fw))
	y0 = int(math.Round((1 - r.YMax) * fh))
	y1 = int(math.Round((1 - r.YMin) * fh))
	return x0, y0, x1, y1
}

// String formats r as (xmin, ymin, xmax, ymax).
func (r Rect) String() string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g, %.4g)", r.XMin, r.YMin, r.XMax, r.YMax)
}

// Point is a 2D point in normalized coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}
