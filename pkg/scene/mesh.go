package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Mesh is an indexed triangle mesh with optional point and cell scalars.
//
// CellScalars, when present, hold one value per triangle; polygons added
// through AddPolygon give every triangle of the fan the polygon's scalar.
type Mesh struct {
	Points       []mgl64.Vec3
	Triangles    [][3]int
	Normals      []mgl64.Vec3
	PointScalars []float64
	CellScalars  []float64
}

// AddPoint appends p and returns its index.
func (m *Mesh) AddPoint(p mgl64.Vec3) int {
	m.Points = append(m.Points, p)
	return len(m.Points) - 1
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.Triangles = append(m.Triangles, [3]int{a, b, c})
}

// AddPolygon fan-triangulates a convex polygon and tags every resulting
// triangle with scalar.
func (m *Mesh) AddPolygon(idx []int, scalar float64) {
	for i := 1; i+1 < len(idx); i++ {
		m.Triangles = append(m.Triangles, [3]int{idx[0], idx[i], idx[i+1]})
		m.CellScalars = append(m.CellScalars, scalar)
	}
}

// Append merges o into m, offsetting o's indices. Scalars are kept only if
// both meshes carry them.
func (m *Mesh) Append(o *Mesh) {
	off := len(m.Points)
	keepPoint := len(m.PointScalars) == len(m.Points) && len(o.PointScalars) == len(o.Points)
	keepCell := len(m.CellScalars) == len(m.Triangles) && len(o.CellScalars) == len(o.Triangles)
	keepNormals := len(m.Normals) == len(m.Points) && len(o.Normals) == len(o.Points)

	m.Points = append(m.Points, o.Points...)
	for _, t := range o.Triangles {
		m.Triangles = append(m.Triangles, [3]int{t[0] + off, t[1] + off, t[2] + off})
	}
	if keepPoint {
		m.PointScalars = append(m.PointScalars, o.PointScalars...)
	} else {
		m.PointScalars = nil
	}
	if keepCell {
		m.CellScalars = append(m.CellScalars, o.CellScalars...)
	} else {
		m.CellScalars = nil
	}
	if keepNormals {
		m.Normals = append(m.Normals, o.Normals...)
	} else {
		m.Normals = nil
	}
}

// Bounds returns the bounding box of all points.
func (m *Mesh) Bounds() Bounds {
	var b Bounds
	for _, p := range m.Points {
		b = b.Extend(p)
	}
	return b
}

// FaceNormal returns the unit normal of triangle i, or the zero vector for
// a degenerate triangle.
func (m *Mesh) FaceNormal(i int) mgl64.Vec3 {
	t := m.Triangles[i]
	a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// ComputeNormals sets area-weighted per-point normals.
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]mgl64.Vec3, len(m.Points))
	for _, t := range m.Triangles {
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, i := range t {
			m.Normals[i] = m.Normals[i].Add(n)
		}
	}
	for i, n := range m.Normals {
		if l := n.Len(); l > 0 {
			m.Normals[i] = n.Mul(1 / l)
		}
	}
}

// Validate checks index ranges and scalar array lengths.
func (m *Mesh) Validate() error {
	for i, t := range m.Triangles {
		for _, v := range t {
			if v < 0 || v >= len(m.Points) {
				return errors.New(errors.ErrCodeInvalidScene, "triangle %d references point %d of %d", i, v, len(m.Points))
			}
		}
	}
	if n := len(m.PointScalars); n != 0 && n != len(m.Points) {
		return errors.New(errors.ErrCodeInvalidScene, "%d point scalars for %d points", n, len(m.Points))
	}
	if n := len(m.CellScalars); n != 0 && n != len(m.Triangles) {
		return errors.New(errors.ErrCodeInvalidScene, "%d cell scalars for %d triangles", n, len(m.Triangles))
	}
	if n := len(m.Normals); n != 0 && n != len(m.Points) {
		return errors.New(errors.ErrCodeInvalidScene, "%d normals for %d points", n, len(m.Points))
	}
	return nil
}

// ScalarRange returns the min and max of the active scalars, preferring
// point scalars. ok is false when the mesh has none.
func (m *Mesh) ScalarRange() (lo, hi float64, ok bool) {
	s := m.PointScalars
	if len(s) == 0 {
		s = m.CellScalars
	}
	if len(s) == 0 {
		return 0, 0, false
	}
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi, true
}
