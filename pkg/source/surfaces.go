package source

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// DefaultResolution is the u and v sample count used by the surface demos.
const DefaultResolution = 51

// Surface is a parametric surface over a rectangular (u, v) domain.
type Surface struct {
	Name       string
	UMin, UMax float64
	VMin, VMax float64
	Eval       func(u, v float64) mgl64.Vec3
}

// Tessellate samples s on a ures x vres grid of points and returns the
// resulting quad mesh with area-weighted normals. Seams are duplicated
// rather than welded, so twisted surfaces need no special casing.
func Tessellate(s Surface, ures, vres int) *scene.Mesh {
	ures, vres = max(ures, 2), max(vres, 2)
	m := &scene.Mesh{}
	for j := range vres {
		v := s.VMin + (s.VMax-s.VMin)*float64(j)/float64(vres-1)
		for i := range ures {
			u := s.UMin + (s.UMax-s.UMin)*float64(i)/float64(ures-1)
			m.AddPoint(s.Eval(u, v))
		}
	}
	for j := 0; j+1 < vres; j++ {
		for i := 0; i+1 < ures; i++ {
			a := j*ures + i
			m.AddPolygon([]int{a, a + 1, a + ures + 1, a + ures}, 0)
		}
	}
	m.CellScalars = nil
	m.ComputeNormals()
	return m
}

// spow is the signed power used by superquadrics.
func spow(x, n float64) float64 {
	return math.Copysign(math.Pow(math.Abs(x), n), x)
}

var surfaces = map[string]Surface{}

func register(s Surface) { surfaces[strings.ToLower(s.Name)] = s }

func init() {
	register(Surface{Name: "Boy", UMax: math.Pi, VMax: math.Pi, Eval: boy})
	register(Surface{Name: "Conic Spiral", UMax: 2 * math.Pi, VMax: 2 * math.Pi, Eval: conicSpiral})
	register(Surface{Name: "Cross-Cap", UMax: math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		cu, su, sv, cv := math.Cos(u), math.Sin(u), math.Sin(v), math.Cos(v)
		return mgl64.Vec3{cu * math.Sin(2*v), su * math.Sin(2*v), cv*cv - cu*cu*sv*sv}
	}})
	register(Surface{Name: "Dini", UMax: 4 * math.Pi, VMin: 0.001, VMax: 2, Eval: func(u, v float64) mgl64.Vec3 {
		const a, b = 1.0, 0.2
		return mgl64.Vec3{a * math.Cos(u) * math.Sin(v), a * math.Sin(u) * math.Sin(v), a*(math.Cos(v)+math.Log(math.Tan(v/2))) + b*u}
	}})
	register(Surface{Name: "Ellipsoid", UMax: 2 * math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{0.5 * math.Sin(v) * math.Cos(u), 2 * math.Sin(v) * math.Sin(u), math.Cos(v)}
	}})
	register(Surface{Name: "Enneper", UMin: -2, UMax: 2, VMin: -2, VMax: 2, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{u - u*u*u/3 + u*v*v, v - v*v*v/3 + v*u*u, u*u - v*v}
	}})
	register(Surface{Name: "Figure-8 Klein", UMin: -math.Pi, UMax: math.Pi, VMin: -math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		const r = 1.0
		c2, s2 := math.Cos(u/2), math.Sin(u/2)
		w := r + c2*math.Sin(v) - s2*math.Sin(2*v)
		return mgl64.Vec3{w * math.Cos(u), w * math.Sin(u), s2*math.Sin(v) + c2*math.Sin(2*v)}
	}})
	register(Surface{Name: "Klein", UMax: math.Pi, VMax: 2 * math.Pi, Eval: klein})
	register(Surface{Name: "Mobius", UMax: 2 * math.Pi, VMin: -0.5, VMax: 0.5, Eval: func(u, v float64) mgl64.Vec3 {
		const r = 2.0
		w := r - v*math.Sin(u/2)
		return mgl64.Vec3{w * math.Sin(u), w * math.Cos(u), v * math.Cos(u/2)}
	}})
	register(Surface{Name: "Random Hills", UMin: -10, UMax: 10, VMin: -10, VMax: 10, Eval: randomHills(1, 30)})
	register(Surface{Name: "Roman", UMax: math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		cv := math.Cos(v)
		return mgl64.Vec3{math.Sin(2*u) * cv * cv / 2, math.Sin(u) * math.Sin(2*v) / 2, math.Cos(u) * math.Sin(2*v) / 2}
	}})
	register(Surface{Name: "Super Ellipsoid", UMin: -math.Pi, UMax: math.Pi, VMin: -math.Pi / 2, VMax: math.Pi / 2, Eval: func(u, v float64) mgl64.Vec3 {
		const n1, n2 = 0.5, 0.4
		cv := spow(math.Cos(v), n1)
		return mgl64.Vec3{cv * spow(math.Cos(u), n2), cv * spow(math.Sin(u), n2), spow(math.Sin(v), n1)}
	}})
	register(Surface{Name: "Super Toroid", UMax: 2 * math.Pi, VMax: 2 * math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		const n1, n2, ring, cross = 0.5, 3.0, 1.0, 0.5
		w := ring + cross*spow(math.Cos(v), n2)
		return mgl64.Vec3{w * spow(math.Cos(u), n1), w * spow(math.Sin(u), n1), cross * spow(math.Sin(v), n2)}
	}})
	register(Surface{Name: "Torus", UMax: 2 * math.Pi, VMax: 2 * math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		const ring, cross = 1.0, 0.5
		w := ring + cross*math.Cos(v)
		return mgl64.Vec3{w * math.Cos(u), w * math.Sin(u), cross * math.Sin(v)}
	}})
	register(Surface{Name: "Spline", UMax: 1, VMax: 2 * math.Pi, Eval: splineTube(8775070, 10, 0.04)})
	register(Surface{Name: "Bohemian Dome", UMin: -math.Pi, UMax: math.Pi, VMin: -math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		const a, b, c = 5.0, 1.0, 2.0
		return mgl64.Vec3{a * math.Cos(u), b*math.Cos(v) + a*math.Sin(u), c * math.Sin(v)}
	}})
	register(Surface{Name: "Bour", UMax: 1, VMax: 4 * math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{
			u*math.Cos(v) - u*u*math.Cos(2*v)/2,
			-u*math.Sin(v) - u*u*math.Sin(2*v)/2,
			4.0 / 3 * math.Pow(u, 1.5) * math.Cos(1.5*v),
		}
	}})
	register(Surface{Name: "Catalan Minimal", UMin: -4 * math.Pi, UMax: 4 * math.Pi, VMin: -1.5, VMax: 1.5, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{u - math.Sin(u)*math.Cosh(v), 1 - math.Cos(u)*math.Cosh(v), 4 * math.Sin(u/2) * math.Sinh(v/2)}
	}})
	register(Surface{Name: "Henneberg", UMin: -1, UMax: 1, VMin: -math.Pi / 2, VMax: math.Pi / 2, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{
			2*math.Sinh(u)*math.Cos(v) - 2.0/3*math.Sinh(3*u)*math.Cos(3*v),
			2*math.Sinh(u)*math.Sin(v) + 2.0/3*math.Sinh(3*u)*math.Sin(3*v),
			2 * math.Cosh(2*u) * math.Cos(2*v),
		}
	}})
	register(Surface{Name: "Kuen", UMin: -4.5, UMax: 4.5, VMin: 0.001, VMax: math.Pi - 0.001, Eval: func(u, v float64) mgl64.Vec3 {
		sv := math.Sin(v)
		d := 1 + u*u*sv*sv
		return mgl64.Vec3{
			2 * (math.Cos(u) + u*math.Sin(u)) * sv / d,
			2 * (math.Sin(u) - u*math.Cos(u)) * sv / d,
			math.Log(math.Tan(v/2)) + 2*math.Cos(v)/d,
		}
	}})
	register(Surface{Name: "Plucker Conoid", UMax: 3, VMax: 2 * math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{u * math.Cos(v), u * math.Sin(v), math.Sin(2 * v)}
	}})
	register(Surface{Name: "Pseudosphere", UMin: -5, UMax: 5, VMin: -math.Pi, VMax: math.Pi, Eval: func(u, v float64) mgl64.Vec3 {
		sech := 1 / math.Cosh(u)
		return mgl64.Vec3{sech * math.Cos(v), sech * math.Sin(v), u - math.Tanh(u)}
	}})
}

func boy(u, v float64) mgl64.Vec3 {
	const zScale = 0.125
	x, y, z := math.Cos(u)*math.Sin(v), math.Sin(u)*math.Sin(v), math.Cos(v)
	x2, y2, z2 := x*x, y*y, z*z
	s := x + y + z
	return mgl64.Vec3{
		0.5 * ((2*x2 - y2 - z2) + 2*y*z*(y2-z2) + z*x*(x2-z2) + x*y*(y2-x2)),
		math.Sqrt(3) / 2 * ((y2 - z2) + z*x*(z2-x2) + x*y*(y2-x2)),
		zScale * s * (s*s*s + 4*(y-x)*(z-y)*(x-z)),
	}
}

func conicSpiral(u, v float64) mgl64.Vec3 {
	const a, b, c, n = 0.2, 1.0, 0.1, 2.0
	t := 1 - v/(2*math.Pi)
	return mgl64.Vec3{
		a*t*math.Cos(n*v)*(1+math.Cos(u)) + c*math.Cos(n*v),
		a*t*math.Sin(n*v)*(1+math.Cos(u)) + c*math.Sin(n*v),
		b*v/(2*math.Pi) + a*t*math.Sin(u),
	}
}

func klein(u, v float64) mgl64.Vec3 {
	cu, su, cv, sv := math.Cos(u), math.Sin(u), math.Cos(v), math.Sin(v)
	cu2 := cu * cu
	cu4 := cu2 * cu2
	cu6 := cu4 * cu2
	return mgl64.Vec3{
		-2.0 / 15 * cu * (3*cv - 30*su + 90*cu4*su - 60*cu6*su + 5*cu*cv*su),
		-1.0 / 15 * su * (3*cv - 3*cu2*cv - 48*cu4*cv + 48*cu6*cv - 60*su +
			5*cu*cv*su - 5*cu2*cu*cv*su - 80*cu4*cu*cv*su + 80*cu6*cu*cv*su),
		2.0 / 15 * (3 + 5*cu*su) * sv,
	}
}

// randomHills returns a height field of n Gaussian hills placed by a
// generator seeded with seed.
func randomHills(seed uint64, n int) func(u, v float64) mgl64.Vec3 {
	type hill struct{ x, y, sx, sy, amp float64 }
	rng := rand.New(rand.NewPCG(seed, 0))
	hills := make([]hill, n)
	for i := range hills {
		hills[i] = hill{
			x:   rng.Float64()*20 - 10,
			y:   rng.Float64()*20 - 10,
			sx:  2.5 * (1 + rng.Float64()) / 2,
			sy:  2.5 * (1 + rng.Float64()) / 2,
			amp: 2 * (1 + rng.Float64()) / 3,
		}
	}
	return func(u, v float64) mgl64.Vec3 {
		z := 0.0
		for _, h := range hills {
			dx, dy := (u-h.x)/h.sx, (v-h.y)/h.sy
			z += h.amp * math.Exp(-(dx*dx+dy*dy)/2)
		}
		return mgl64.Vec3{u, v, z}
	}
}

// splineTube sweeps a circle of the given radius along a closed
// Catmull-Rom spline through n seeded points in [-1, 1]^3.
func splineTube(seed uint64, n int, radius float64) func(u, v float64) mgl64.Vec3 {
	rng := rand.New(rand.NewPCG(seed, 0))
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		pts[i] = mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
	}
	curve := func(u float64) mgl64.Vec3 {
		u = u - math.Floor(u)
		f := u * float64(n)
		i := int(f)
		t := f - float64(i)
		p0, p1 := pts[(i+n-1)%n], pts[i%n]
		p2, p3 := pts[(i+1)%n], pts[(i+2)%n]
		t2, t3 := t*t, t*t*t
		return p1.Mul(2).
			Add(p2.Sub(p0).Mul(t)).
			Add(p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)).
			Add(p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)).
			Mul(0.5)
	}
	return func(u, v float64) mgl64.Vec3 {
		const du = 1e-4
		tangent := curve(u + du).Sub(curve(u - du)).Normalize()
		ref := mgl64.Vec3{0, 0, 1}
		if math.Abs(tangent.Dot(ref)) > 0.9 {
			ref = mgl64.Vec3{1, 0, 0}
		}
		normal := tangent.Cross(ref).Normalize()
		binormal := tangent.Cross(normal)
		return curve(u).Add(normal.Mul(radius * math.Cos(v))).Add(binormal.Mul(radius * math.Sin(v)))
	}
}

// SurfaceNames returns the built-in surface names sorted alphabetically.
func SurfaceNames() []string {
	names := make([]string, 0, len(surfaces))
	for _, s := range surfaces {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// LookupSurface finds a surface by name, ignoring case. Unknown names fail
// with UNKNOWN_SURFACE.
func LookupSurface(name string) (Surface, error) {
	s, ok := surfaces[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Surface{}, errors.New(errors.ErrCodeUnknownSurface, "nonexistent surface %q", name)
	}
	return s, nil
}

// FormatSurfaceNames lays names out perRow to a line, comma separated.
func FormatSurfaceNames(perRow int) string {
	names := SurfaceNames()
	perRow = max(perRow, 1)
	var b strings.Builder
	for i := 0; i < len(names); i += perRow {
		row := names[i:min(i+perRow, len(names))]
		b.WriteString("   ")
		b.WriteString(strings.Join(row, ", "))
		if i+perRow < len(names) {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	return b.String()
}
