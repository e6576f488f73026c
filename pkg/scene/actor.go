package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LookupTable maps scalars to colors. Implementations must be safe to share
// between actors and must not change after construction.
type LookupTable interface {
	// Lookup returns the color of scalar v.
	Lookup(v float64) Color
	// Range returns the scalar interval the table is defined over.
	Range() (lo, hi float64)
}

// ScalarMode selects which mesh scalars color an actor.
type ScalarMode int

const (
	// ScalarsDefault uses point scalars if present, else cell scalars.
	ScalarsDefault ScalarMode = iota
	// ScalarsPoint interpolates point scalars across triangles.
	ScalarsPoint
	// ScalarsCell colors each triangle by its cell scalar.
	ScalarsCell
	// ScalarsOff ignores scalars and uses the actor color.
	ScalarsOff
)

// Actor places a mesh in a scene with a material.
type Actor struct {
	Name string
	Mesh *Mesh

	Color     Color
	Opacity   float64
	Specular  float64
	Wireframe bool
	Hidden    bool

	// Backface, when set, colors triangles seen from behind.
	Backface *Color

	// Lookup colors scalars. A nil Lookup uses Color.
	Lookup LookupTable
	// ScalarRange maps mesh scalars onto the lookup range. A zero span
	// uses the lookup range directly.
	ScalarRange [2]float64
	ScalarMode  ScalarMode

	Position mgl64.Vec3
	Scale    float64
}

// NewActor returns a visible white actor for m.
func NewActor(name string, m *Mesh) *Actor {
	return &Actor{
		Name:    name,
		Mesh:    m,
		Color:   RGB(1, 1, 1),
		Opacity: 1,
		Scale:   1,
	}
}

// Transform maps a mesh point into world coordinates.
func (a *Actor) Transform(p mgl64.Vec3) mgl64.Vec3 {
	s := a.Scale
	if s == 0 {
		s = 1
	}
	return p.Mul(s).Add(a.Position)
}

// Bounds returns the world-space bounds of the actor's mesh.
func (a *Actor) Bounds() Bounds {
	var b Bounds
	if a.Mesh == nil || a.Hidden {
		return b
	}
	for _, p := range a.Mesh.Points {
		b = b.Extend(a.Transform(p))
	}
	return b
}

// UsesPointScalars reports whether vertex colors come from point scalars.
func (a *Actor) UsesPointScalars() bool {
	if a.Lookup == nil || a.Mesh == nil || a.ScalarMode == ScalarsOff || a.ScalarMode == ScalarsCell {
		return false
	}
	return len(a.Mesh.PointScalars) == len(a.Mesh.Points) && len(a.Mesh.Points) > 0
}

// UsesCellScalars reports whether triangle colors come from cell scalars.
func (a *Actor) UsesCellScalars() bool {
	if a.Lookup == nil || a.Mesh == nil || a.ScalarMode == ScalarsOff || a.ScalarMode == ScalarsPoint {
		return false
	}
	if a.ScalarMode == ScalarsDefault && a.UsesPointScalars() {
		return false
	}
	return len(a.Mesh.CellScalars) == len(a.Mesh.Triangles) && len(a.Mesh.Triangles) > 0
}

// ScalarColor maps v through the actor's scalar range and lookup table.
func (a *Actor) ScalarColor(v float64) Color {
	if a.Lookup == nil {
		return a.Color
	}
	lo, hi := a.Lookup.Range()
	if span := a.ScalarRange[1] - a.ScalarRange[0]; span != 0 && hi != lo {
		t := (v - a.ScalarRange[0]) / span
		v = lo + t*(hi-lo)
	}
	return a.Lookup.Lookup(v)
}

// TriangleColors returns the colors of the three corners of triangle i.
func (a *Actor) TriangleColors(i int) [3]Color {
	t := a.Mesh.Triangles[i]
	switch {
	case a.UsesPointScalars():
		return [3]Color{
			a.ScalarColor(a.Mesh.PointScalars[t[0]]),
			a.ScalarColor(a.Mesh.PointScalars[t[1]]),
			a.ScalarColor(a.Mesh.PointScalars[t[2]]),
		}
	case a.UsesCellScalars():
		c := a.ScalarColor(a.Mesh.CellScalars[i])
		return [3]Color{c, c, c}
	}
	return [3]Color{a.Color, a.Color, a.Color}
}

// IndexedLookup is a table of discrete colors spread evenly over a range.
type IndexedLookup struct {
	Colors []Color
	Lo, Hi float64
}

// Lookup returns the table entry nearest to v.
func (l *IndexedLookup) Lookup(v float64) Color {
	n := len(l.Colors)
	if n == 0 {
		return Color{}
	}
	if n == 1 || l.Hi == l.Lo {
		return l.Colors[0]
	}
	t := (v - l.Lo) / (l.Hi - l.Lo)
	i := int(math.Round(t * float64(n-1)))
	return l.Colors[max(0, min(n-1, i))]
}

// Range returns [Lo, Hi].
func (l *IndexedLookup) Range() (float64, float64) { return l.Lo, l.Hi }
