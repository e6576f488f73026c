package source

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Solid selects a Platonic solid.
type Solid int

const (
	Tetrahedron Solid = iota
	Cube
	Octahedron
	Icosahedron
	Dodecahedron
)

var solidNames = [...]string{"Tetrahedron", "Cube", "Octahedron", "Icosahedron", "Dodecahedron"}

func (s Solid) String() string {
	if s >= 0 && int(s) < len(solidNames) {
		return solidNames[s]
	}
	return "Solid(?)"
}

// Solids returns all five solids in order.
func Solids() []Solid {
	return []Solid{Tetrahedron, Cube, Octahedron, Icosahedron, Dodecahedron}
}

// ParseSolid resolves a solid by name, ignoring case.
func ParseSolid(name string) (Solid, error) {
	for i, n := range solidNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Solid(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnknownSurface, "unknown solid %q", name)
}

// Faces returns the number of faces of s.
func (s Solid) Faces() int {
	return [...]int{4, 6, 8, 20, 12}[s]
}

var phi = (1 + math.Sqrt(5)) / 2

func tetraVerts() []mgl64.Vec3 {
	return []mgl64.Vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

func cubeVerts() []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				out = append(out, mgl64.Vec3{x, y, z})
			}
		}
	}
	return out
}

func octaVerts() []mgl64.Vec3 {
	return []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
}

func icosaVerts() []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-phi, phi} {
			out = append(out, mgl64.Vec3{0, a, b}, mgl64.Vec3{a, b, 0}, mgl64.Vec3{b, 0, a})
		}
	}
	return out
}

// dodecaVerts is oriented as the dual of icosaVerts: each vertex points at
// the center of an icosahedron face and vice versa.
func dodecaVerts() []mgl64.Vec3 {
	out := cubeVerts()
	for _, a := range []float64{-1 / phi, 1 / phi} {
		for _, b := range []float64{-phi, phi} {
			out = append(out, mgl64.Vec3{0, b, a}, mgl64.Vec3{a, 0, b}, mgl64.Vec3{b, a, 0})
		}
	}
	return out
}

// Platonic returns solid s scaled to unit circumradius. Face i carries cell
// scalar i, so a lookup table over [0, 19] colors every face of every solid
// distinctly.
func Platonic(s Solid) (*scene.Mesh, error) {
	var verts, normals []mgl64.Vec3
	switch s {
	case Tetrahedron:
		verts = tetraVerts()
		for _, v := range verts {
			normals = append(normals, v.Mul(-1))
		}
	case Cube:
		verts, normals = cubeVerts(), octaVerts()
	case Octahedron:
		verts, normals = octaVerts(), cubeVerts()
	case Icosahedron:
		verts, normals = icosaVerts(), dodecaVerts()
	case Dodecahedron:
		verts, normals = dodecaVerts(), icosaVerts()
	default:
		return nil, errors.New(errors.ErrCodeUnknownSurface, "unknown solid %d", int(s))
	}

	m := &scene.Mesh{}
	for _, v := range verts {
		m.AddPoint(v.Normalize())
	}
	for i, n := range normals {
		m.AddPolygon(faceLoop(m.Points, n.Normalize()), float64(i))
	}
	return m, nil
}

// faceLoop returns, in counter-clockwise order seen from outside, the
// vertices lying furthest along n. For a regular solid these are exactly the
// vertices of the face whose normal is n.
func faceLoop(pts []mgl64.Vec3, n mgl64.Vec3) []int {
	best := math.Inf(-1)
	for _, p := range pts {
		best = math.Max(best, p.Dot(n))
	}
	var idx []int
	var c mgl64.Vec3
	for i, p := range pts {
		if p.Dot(n) > best-1e-9 {
			idx = append(idx, i)
			c = c.Add(p)
		}
	}
	c = c.Mul(1 / float64(len(idx)))

	e1 := pts[idx[0]].Sub(c).Normalize()
	e2 := n.Cross(e1)
	angle := func(i int) float64 {
		d := pts[i].Sub(c)
		return math.Atan2(d.Dot(e2), d.Dot(e1))
	}
	sort.Slice(idx, func(a, b int) bool { return angle(idx[a]) < angle(idx[b]) })
	return idx
}
