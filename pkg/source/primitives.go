package source

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Revolve sweeps profile, given as (radius, height) pairs from bottom to
// top, around the y axis in res steps. Profile points with zero radius
// become single poles, which is how caps and apexes are closed. With closed
// the last profile point connects back to the first.
func Revolve(profile []mgl64.Vec2, res int, closed bool) *scene.Mesh {
	res = max(res, 3)
	m := &scene.Mesh{}
	rings := make([][]int, len(profile))
	for i, p := range profile {
		if p[0] == 0 {
			rings[i] = []int{m.AddPoint(mgl64.Vec3{0, p[1], 0})}
			continue
		}
		for j := range res {
			t := 2 * math.Pi * float64(j) / float64(res)
			rings[i] = append(rings[i], m.AddPoint(mgl64.Vec3{p[0] * math.Cos(t), p[1], p[0] * math.Sin(t)}))
		}
	}

	band := func(a, b []int) {
		at := func(r []int, j int) int { return r[j%len(r)] }
		for j := range res {
			switch {
			case len(a) == 1 && len(b) == 1:
				return
			case len(a) == 1:
				m.AddPolygon([]int{a[0], at(b, j), at(b, j+1)}, 0)
			case len(b) == 1:
				m.AddPolygon([]int{at(a, j), b[0], at(a, j+1)}, 0)
			default:
				m.AddPolygon([]int{at(a, j), at(b, j), at(b, j+1), at(a, j+1)}, 0)
			}
		}
	}
	for i := 1; i < len(rings); i++ {
		band(rings[i-1], rings[i])
	}
	if closed && len(rings) > 2 {
		band(rings[len(rings)-1], rings[0])
	}
	return m
}

// Orient rotates m so that its +y axis points along dir.
func Orient(m *scene.Mesh, dir mgl64.Vec3) *scene.Mesh {
	if dir.Len() == 0 {
		return m
	}
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, dir.Normalize())
	for i, p := range m.Points {
		m.Points[i] = q.Rotate(p)
	}
	return m
}

// Scale multiplies every point of m component-wise by s.
func Scale(m *scene.Mesh, s mgl64.Vec3) *scene.Mesh {
	for i, p := range m.Points {
		m.Points[i] = mgl64.Vec3{p[0] * s[0], p[1] * s[1], p[2] * s[2]}
	}
	return m
}

// Sphere returns a sphere of radius 0.5 with theta slices and phi stacks.
func Sphere(theta, phi int) *scene.Mesh {
	phi = max(phi, 3)
	profile := []mgl64.Vec2{{0, -0.5}}
	for i := 1; i < phi-1; i++ {
		a := math.Pi * float64(i) / float64(phi-1)
		profile = append(profile, mgl64.Vec2{0.5 * math.Sin(a), -0.5 * math.Cos(a)})
	}
	return Revolve(append(profile, mgl64.Vec2{0, 0.5}), theta, false)
}

// Cone returns a capped cone centered at the origin whose apex points
// along dir.
func Cone(res int, height, radius float64, dir mgl64.Vec3) *scene.Mesh {
	h := height / 2
	return Orient(Revolve([]mgl64.Vec2{{0, -h}, {radius, -h}, {0, h}}, res, false), dir)
}

// Cylinder returns a capped cylinder of radius 0.5 and height 1 along y.
func Cylinder(res int) *scene.Mesh {
	return Frustum(res, 0.5, 0.5, 1)
}

// Frustum returns a capped truncated cone along y.
func Frustum(res int, bottom, top, height float64) *scene.Mesh {
	h := height / 2
	return Revolve([]mgl64.Vec2{{0, -h}, {bottom, -h}, {top, h}, {0, h}}, res, false)
}

// Prism returns an n-sided prism along y.
func Prism(n int) *scene.Mesh { return Cylinder(n) }

// Pyramid returns a square pyramid along y.
func Pyramid() *scene.Mesh {
	return Revolve([]mgl64.Vec2{{0, -0.5}, {0.7, -0.5}, {0, 0.5}}, 4, false)
}

// Tube returns a thick-walled open cylinder along y.
func Tube(res int, inner, outer, height float64) *scene.Mesh {
	h := height / 2
	return Revolve([]mgl64.Vec2{{inner, -h}, {outer, -h}, {outer, h}, {inner, h}}, res, true)
}

// Torus returns a ring torus around y.
func Torus(res int, ring, cross float64) *scene.Mesh {
	var profile []mgl64.Vec2
	for i := range res {
		t := 2 * math.Pi * float64(i) / float64(res)
		profile = append(profile, mgl64.Vec2{ring + cross*math.Cos(t), cross * math.Sin(t)})
	}
	return Revolve(profile, res, true)
}

// Capsule returns a cylinder with hemispherical ends along y.
func Capsule(res int, radius, length float64) *scene.Mesh {
	h := length / 2
	profile := []mgl64.Vec2{{0, -h - radius}}
	steps := max(res/4, 2)
	for i := 1; i <= steps; i++ {
		a := math.Pi / 2 * float64(i) / float64(steps)
		profile = append(profile, mgl64.Vec2{radius * math.Sin(a), -h - radius*math.Cos(a)})
	}
	for i := steps; i >= 1; i-- {
		a := math.Pi / 2 * float64(i) / float64(steps)
		profile = append(profile, mgl64.Vec2{radius * math.Sin(a), h + radius*math.Cos(a)})
	}
	return Revolve(append(profile, mgl64.Vec2{0, h + radius}), res, false)
}

// Arrow returns an arrow of length 1 from the origin along +x.
func Arrow(res int) *scene.Mesh {
	const (
		shaft     = 0.03
		tipRadius = 0.1
		tipLength = 0.35
	)
	profile := []mgl64.Vec2{{0, 0}, {shaft, 0}, {shaft, 1 - tipLength}, {tipRadius, 1 - tipLength}, {0, 1}}
	return Orient(Revolve(profile, res, false), mgl64.Vec3{1, 0, 0})
}

// Box returns an axis-aligned box centered at the origin.
func Box(x, y, z float64) *scene.Mesh {
	m := &scene.Mesh{}
	for _, p := range cubeVerts() {
		m.AddPoint(mgl64.Vec3{p[0] * x / 2, p[1] * y / 2, p[2] * z / 2})
	}
	for i, n := range octaVerts() {
		m.AddPolygon(faceLoop(m.Points, n), float64(i))
	}
	return m
}

// Plane returns a unit square in the xy plane facing +z.
func Plane() *scene.Mesh {
	m := &scene.Mesh{}
	for _, p := range []mgl64.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0}} {
		m.AddPoint(p)
	}
	m.AddPolygon([]int{0, 1, 2, 3}, 0)
	return m
}

// RegularPolygon returns an n-gon of the given radius in the xy plane.
func RegularPolygon(n int, radius float64) *scene.Mesh {
	n = max(n, 3)
	m := &scene.Mesh{}
	idx := make([]int, n)
	for i := range n {
		t := 2 * math.Pi * float64(i) / float64(n)
		idx[i] = m.AddPoint(mgl64.Vec3{radius * math.Cos(t), radius * math.Sin(t), 0})
	}
	m.AddPolygon(idx, 0)
	return m
}

// Disk returns a flat annulus in the xy plane.
func Disk(inner, outer float64, res int) *scene.Mesh {
	res = max(res, 3)
	m := &scene.Mesh{}
	for i := range res {
		t := 2 * math.Pi * float64(i) / float64(res)
		c, s := math.Cos(t), math.Sin(t)
		m.AddPoint(mgl64.Vec3{inner * c, inner * s, 0})
		m.AddPoint(mgl64.Vec3{outer * c, outer * s, 0})
	}
	for i := range res {
		j := (i + 1) % res
		m.AddPolygon([]int{2 * i, 2*i + 1, 2*j + 1, 2 * j}, 0)
	}
	return m
}

// Named is a mesh with a display name.
type Named struct {
	Name string
	Mesh *scene.Mesh
}

// Shapes returns sixteen primitives for a 4x4 gallery.
func Shapes() []Named {
	return []Named{
		{"Sphere", Sphere(21, 21)},
		{"Cone", Cone(51, 1, 0.5, mgl64.Vec3{1, 0, 0})},
		{"Cylinder", Cylinder(51)},
		{"Cube", Box(1, 1, 1)},
		{"Plane", Plane()},
		{"Disk", Disk(0.25, 0.5, 51)},
		{"Regular Polygon", RegularPolygon(6, 0.5)},
		{"Arrow", Arrow(16)},
		{"Torus", Torus(32, 0.5, 0.2)},
		{"Frustum", Frustum(32, 0.5, 0.25, 1)},
		{"Pyramid", Pyramid()},
		{"Prism", Prism(6)},
		{"Ellipsoid", Scale(Sphere(32, 16), mgl64.Vec3{1, 0.6, 0.4})},
		{"Wedge", Prism(3)},
		{"Tube", Tube(32, 0.3, 0.5, 1)},
		{"Capsule", Capsule(32, 0.25, 0.6)},
	}
}

// Elevation sets m's point scalars to the normalized projection of every
// point onto the segment low→high, clamped to [0, 1].
func Elevation(m *scene.Mesh, low, high mgl64.Vec3) *scene.Mesh {
	d := high.Sub(low)
	l2 := d.Dot(d)
	m.PointScalars = make([]float64, len(m.Points))
	if l2 == 0 {
		return m
	}
	for i, p := range m.Points {
		m.PointScalars[i] = math.Max(0, math.Min(1, p.Sub(low).Dot(d)/l2))
	}
	return m
}

// ElevationY colors m by height between its lowest and highest point.
func ElevationY(m *scene.Mesh) *scene.Mesh {
	b := m.Bounds()
	if b.Empty() {
		return m
	}
	return Elevation(m, mgl64.Vec3{0, b.Min[1], 0}, mgl64.Vec3{0, b.Max[1], 0})
}
