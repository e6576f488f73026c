package colormap

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// PointSpace is the encoding of control point colors.
type PointSpace int

const (
	PointsRGB PointSpace = iota
	PointsHSV
)

func (s PointSpace) String() string {
	if s == PointsHSV {
		return "HSV"
	}
	return "RGB"
}

// Interpolation is the color space colors are blended in between control
// points.
type Interpolation int

const (
	InterpRGB Interpolation = iota
	InterpHSV
	InterpLab
	InterpCIEDE2000
	InterpDiverging
	InterpStep
)

var interpNames = [...]string{"RGB", "HSV", "Lab", "CIEDE2000", "Diverging", "Step"}

func (i Interpolation) String() string {
	if i < 0 || int(i) >= len(interpNames) {
		return "RGB"
	}
	return interpNames[i]
}

// ParseInterpolation maps the names found in colormap files onto an
// Interpolation. Unknown or empty names fall back to RGB.
func ParseInterpolation(s string) Interpolation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hsv":
		return InterpHSV
	case "lab", "cielab":
		return InterpLab
	case "ciede2000", "labciede2000":
		return InterpCIEDE2000
	case "diverging":
		return InterpDiverging
	case "step":
		return InterpStep
	}
	return InterpRGB
}

// Scale controls how scalars are positioned between control points.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog10
)

func (s Scale) String() string {
	if s == ScaleLog10 {
		return "Log10"
	}
	return "Linear"
}

// ParseScale accepts "log10"; anything else is linear.
func ParseScale(s string) Scale {
	if strings.EqualFold(strings.TrimSpace(s), "log10") {
		return ScaleLog10
	}
	return ScaleLinear
}

// Point is one control point. V holds r,g,b or h,s,v in [0, 1] depending
// on the owning Spec's PointSpace.
type Point struct {
	X       float64
	V       [3]float64
	Opacity float64
}

// Spec is the mutable description a CTF is built from.
type Spec struct {
	Name          string
	Creator       string
	Source        string
	Space         PointSpace
	Interpolation Interpolation
	Scale         Scale
	Points        []Point
	HasOpacity    bool

	NaN, Above, Below *[3]float64

	Discretize bool
	TableSize  int
}

// CTF is an immutable color transfer function. It implements
// scene.LookupTable so actors and scalar bars can share one by pointer.
type CTF struct {
	spec   Spec
	colors []scene.Color
	table  []scene.Color
}

var _ scene.LookupTable = (*CTF)(nil)

// New validates s and builds a CTF. s is copied.
func New(s Spec) (*CTF, error) {
	if len(s.Points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: no control points", s.label())
	}
	for i := 1; i < len(s.Points); i++ {
		if !(s.Points[i].X > s.Points[i-1].X) {
			return nil, errors.New(errors.ErrCodeInvalidColorMap,
				"%s: scalars must be strictly increasing (%g after %g)", s.label(), s.Points[i].X, s.Points[i-1].X)
		}
	}
	if s.Scale == ScaleLog10 && s.Points[0].X <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: log10 scale needs positive scalars", s.label())
	}
	if s.TableSize < 0 {
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: negative table size %d", s.label(), s.TableSize)
	}

	c := &CTF{spec: s}
	c.spec.Points = append([]Point(nil), s.Points...)
	c.spec.NaN, c.spec.Above, c.spec.Below = copyRGB(s.NaN), copyRGB(s.Above), copyRGB(s.Below)
	c.colors = make([]scene.Color, len(s.Points))
	for i, p := range s.Points {
		if s.Space == PointsHSV {
			c.colors[i] = colorful.Hsv(p.V[0]*360, p.V[1], p.V[2])
		} else {
			c.colors[i] = scene.RGB(p.V[0], p.V[1], p.V[2])
		}
	}
	c.table = c.buildTable()
	return c, nil
}

func (s Spec) label() string {
	if s.Name == "" {
		return "colormap"
	}
	return s.Name
}

func copyRGB(v *[3]float64) *[3]float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// With returns a copy of c with different discretization settings.
func (c *CTF) With(discretize bool, tableSize int) (*CTF, error) {
	s := c.Spec()
	s.Discretize, s.TableSize = discretize, tableSize
	return New(s)
}

// Spec returns a copy of the description c was built from.
func (c *CTF) Spec() Spec {
	s := c.spec
	s.Points = c.Points()
	s.NaN, s.Above, s.Below = copyRGB(s.NaN), copyRGB(s.Above), copyRGB(s.Below)
	return s
}

func (c *CTF) Name() string { return c.spec.Name }

// Points returns the control points in scalar order.
func (c *CTF) Points() []Point { return append([]Point(nil), c.spec.Points...) }

// Len returns the number of control points.
func (c *CTF) Len() int { return len(c.spec.Points) }

// TableSize returns the number of discrete table entries, max(size, N).
func (c *CTF) TableSize() int { return max(c.spec.TableSize, len(c.spec.Points)) }

// Range returns the scalar range of the control points.
func (c *CTF) Range() (lo, hi float64) {
	return c.spec.Points[0].X, c.spec.Points[len(c.spec.Points)-1].X
}

// Lookup maps v to a color, through the table when discretized.
func (c *CTF) Lookup(v float64) scene.Color {
	if col, ok := c.special(v); ok {
		return col
	}
	if !c.spec.Discretize {
		return c.Map(v)
	}
	lo, hi := c.Range()
	if hi == lo {
		return c.table[0]
	}
	n := len(c.table)
	i := int(c.position(v, lo, hi) * float64(n))
	return c.table[max(0, min(n-1, i))]
}

// Table returns the discretized colors, one per bin over the range.
func (c *CTF) Table() []scene.Color { return append([]scene.Color(nil), c.table...) }

func (c *CTF) buildTable() []scene.Color {
	n := c.TableSize()
	lo, hi := c.Range()
	out := make([]scene.Color, n)
	for i := range out {
		t := (float64(i) + 0.5) / float64(n)
		if n == 1 {
			t = 0
		}
		out[i] = c.Map(c.fromPosition(t, lo, hi))
	}
	return out
}

func (c *CTF) special(v float64) (scene.Color, bool) {
	lo, hi := c.Range()
	switch {
	case math.IsNaN(v):
		if c.spec.NaN != nil {
			return rgb(*c.spec.NaN), true
		}
		return scene.RGB(0.5, 0, 0), true
	case v < lo && c.spec.Below != nil:
		return rgb(*c.spec.Below), true
	case v > hi && c.spec.Above != nil:
		return rgb(*c.spec.Above), true
	}
	return scene.Color{}, false
}

func rgb(v [3]float64) scene.Color { return scene.RGB(v[0], v[1], v[2]) }

// position maps v onto [0, 1] over [lo, hi] honoring the scale.
func (c *CTF) position(v, lo, hi float64) float64 {
	if c.spec.Scale == ScaleLog10 && v > 0 {
		v, lo, hi = math.Log10(v), math.Log10(lo), math.Log10(hi)
	}
	return (v - lo) / (hi - lo)
}

func (c *CTF) fromPosition(t, lo, hi float64) float64 {
	if c.spec.Scale == ScaleLog10 {
		l0, l1 := math.Log10(lo), math.Log10(hi)
		return math.Pow(10, l0+t*(l1-l0))
	}
	return lo + t*(hi-lo)
}

// Map evaluates the continuous function at x. Values outside the range
// clamp to the end colors unless above/below colors are set.
func (c *CTF) Map(x float64) scene.Color {
	if col, ok := c.special(x); ok {
		return col
	}
	pts := c.spec.Points
	if x <= pts[0].X {
		return c.colors[0]
	}
	last := len(pts) - 1
	if x >= pts[last].X {
		return c.colors[last]
	}
	i := 1
	for pts[i].X < x {
		i++
	}
	a, b := pts[i-1].X, pts[i].X
	t := c.position(x, a, b)
	return c.blend(c.colors[i-1], c.colors[i], t)
}

func (c *CTF) blend(a, b scene.Color, t float64) scene.Color {
	switch c.spec.Interpolation {
	case InterpHSV:
		return a.BlendHsv(b, t).Clamped()
	case InterpLab:
		return a.BlendLab(b, t).Clamped()
	case InterpCIEDE2000:
		return blendCIEDE2000(a, b, t)
	case InterpDiverging:
		return blendDiverging(a, b, t)
	case InterpStep:
		if t < 0.5 {
			return a
		}
		return b
	}
	return a.BlendRgb(b, t)
}

// blendCIEDE2000 blends in Lab, reparametrized so equal steps in t cover
// equal perceptual distance.
func blendCIEDE2000(a, b scene.Color, t float64) scene.Color {
	const steps = 32
	var cum [steps + 1]float64
	prev := a
	for i := 1; i <= steps; i++ {
		cur := a.BlendLab(b, float64(i)/steps)
		cum[i] = cum[i-1] + prev.DistanceCIEDE2000(cur)
		prev = cur
	}
	total := cum[steps]
	if total == 0 {
		return a.BlendLab(b, t).Clamped()
	}
	target := t * total
	for i := 1; i <= steps; i++ {
		if cum[i] >= target {
			seg := cum[i] - cum[i-1]
			f := 0.0
			if seg > 0 {
				f = (target - cum[i-1]) / seg
			}
			return a.BlendLab(b, (float64(i-1)+f)/steps).Clamped()
		}
	}
	return b
}

type msh struct{ m, s, h float64 }

func toMsh(c scene.Color) msh {
	l, a, b := c.Lab()
	l, a, b = l*100, a*100, b*100
	m := math.Sqrt(l*l + a*a + b*b)
	if m == 0 {
		return msh{}
	}
	return msh{m: m, s: math.Acos(l / m), h: math.Atan2(b, a)}
}

func (v msh) color() scene.Color {
	l := v.m * math.Cos(v.s)
	a := v.m * math.Sin(v.s) * math.Cos(v.h)
	b := v.m * math.Sin(v.s) * math.Sin(v.h)
	return colorful.Lab(l/100, a/100, b/100).Clamped()
}

func adjustHue(v msh, unsatM float64) float64 {
	if v.m >= unsatM-0.1 {
		return v.h
	}
	spin := v.s * math.Sqrt(unsatM*unsatM-v.m*v.m) / (v.m * math.Sin(v.s))
	if v.h > -math.Pi/3 {
		return v.h + spin
	}
	return v.h - spin
}

// blendDiverging interpolates through Msh space, inserting a white-ish
// midpoint between two saturated colors of distant hue.
func blendDiverging(a, b scene.Color, t float64) scene.Color {
	m1, m2 := toMsh(a), toMsh(b)
	if m1.s > 0.05 && m2.s > 0.05 && angleDiff(m1.h, m2.h) > math.Pi/3 {
		mid := math.Max(math.Max(m1.m, m2.m), 88)
		if t < 0.5 {
			m2 = msh{m: mid}
			t *= 2
		} else {
			m1 = msh{m: mid}
			t = 2*t - 1
		}
	}
	switch {
	case m1.s < 0.05 && m2.s > 0.05:
		m1.h = adjustHue(m2, m1.m)
	case m2.s < 0.05 && m1.s > 0.05:
		m2.h = adjustHue(m1, m2.m)
	}
	return msh{
		m: (1-t)*m1.m + t*m2.m,
		s: (1-t)*m1.s + t*m2.s,
		h: (1-t)*m1.h + t*m2.h,
	}.color()
}

func angleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
