package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
)

func quad() *Mesh {
	m := &Mesh{}
	for _, p := range []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
		m.AddPoint(p)
	}
	m.AddPolygon([]int{0, 1, 2, 3}, 7)
	return m
}

func TestMeshAddPolygon(t *testing.T) {
	m := quad()
	if len(m.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(m.Triangles))
	}
	if m.CellScalars[0] != 7 || m.CellScalars[1] != 7 {
		t.Errorf("cell scalars = %v", m.CellScalars)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"index out of range", &Mesh{Points: []mgl64.Vec3{{}}, Triangles: [][3]int{{0, 0, 1}}}},
		{"point scalars", &Mesh{Points: []mgl64.Vec3{{}, {}}, PointScalars: []float64{1}}},
		{"cell scalars", &Mesh{Points: []mgl64.Vec3{{}}, Triangles: [][3]int{{0, 0, 0}}, CellScalars: []float64{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mesh.Validate(); !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Validate() = %v, want INVALID_SCENE", err)
			}
		})
	}
}

func TestMeshAppend(t *testing.T) {
	a, b := quad(), quad()
	a.Append(b)
	if len(a.Points) != 8 || len(a.Triangles) != 4 {
		t.Fatalf("got %d points / %d triangles", len(a.Points), len(a.Triangles))
	}
	if a.Triangles[2] != [3]int{4, 5, 6} {
		t.Errorf("appended triangle = %v, want offset indices", a.Triangles[2])
	}
	if len(a.CellScalars) != 4 {
		t.Errorf("cell scalars dropped: %v", a.CellScalars)
	}
}

func TestMeshNormals(t *testing.T) {
	m := quad()
	m.ComputeNormals()
	for i, n := range m.Normals {
		if !n.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
			t.Errorf("normal %d = %v", i, n)
		}
	}
}

func TestIndexedLookup(t *testing.T) {
	lut := &IndexedLookup{Colors: []Color{RGB(0, 0, 0), RGB(1, 0, 0), RGB(0, 1, 0)}, Lo: 0, Hi: 2}
	tests := []struct {
		v    float64
		want Color
	}{
		{-5, RGB(0, 0, 0)},
		{0, RGB(0, 0, 0)},
		{1, RGB(1, 0, 0)},
		{1.6, RGB(0, 1, 0)},
		{9, RGB(0, 1, 0)},
	}
	for _, tt := range tests {
		if got := lut.Lookup(tt.v); got != tt.want {
			t.Errorf("Lookup(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestActorColors(t *testing.T) {
	lut := &IndexedLookup{Colors: []Color{RGB(0, 0, 1), RGB(1, 0, 0)}, Lo: 0, Hi: 1}
	a := NewActor("q", quad())
	if c := a.TriangleColors(0); c[0] != RGB(1, 1, 1) {
		t.Errorf("no lookup: color = %v, want actor color", c[0])
	}

	a.Lookup = lut
	a.ScalarRange = [2]float64{0, 7}
	if c := a.TriangleColors(1); c[2] != RGB(1, 0, 0) {
		t.Errorf("cell scalar 7 over [0,7] = %v, want top of table", c[2])
	}

	a.ScalarMode = ScalarsOff
	if a.UsesCellScalars() {
		t.Error("ScalarsOff still uses cell scalars")
	}
}

func TestActorBounds(t *testing.T) {
	a := NewActor("q", quad())
	a.Position = mgl64.Vec3{10, 0, 0}
	a.Scale = 2
	b := a.Bounds()
	if b.Min != (mgl64.Vec3{10, 0, 0}) || b.Max != (mgl64.Vec3{12, 2, 0}) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
	a.Hidden = true
	if !a.Bounds().Empty() {
		t.Error("hidden actor contributes bounds")
	}
}

func TestCellBuildCamera(t *testing.T) {
	c := NewCell().
		AddActor(NewActor("q", quad())).
		NudgeCamera(30, -30, 0.9, 0)
	cam := c.BuildCamera()

	ref := NewCamera()
	ref.Reset(c.Bounds())
	if !near(cam.Distance(), ref.Distance()/0.9) {
		t.Errorf("distance = %v, want %v", cam.Distance(), ref.Distance()/0.9)
	}
	if cam.Record.Azimuth != 30 || cam.Record.Elevation != -30 {
		t.Errorf("record = %+v", cam.Record)
	}
}

func TestCellPlacementKeepsDirection(t *testing.T) {
	c := NewCell().
		AddActor(NewActor("q", quad())).
		SetCamera(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	cam := c.BuildCamera()
	if !cam.DirectionOfProjection().ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Errorf("direction = %v, want -X", cam.DirectionOfProjection())
	}
	if !cam.FocalPoint.ApproxEqual(c.Bounds().Center()) {
		t.Errorf("focal = %v, want bounds center", cam.FocalPoint)
	}
}

func TestCellViewport(t *testing.T) {
	c := NewCell()
	if _, ok := c.Viewport(); ok {
		t.Fatal("fresh cell reports a viewport")
	}
	r := layout.Rect{XMin: 0, YMin: 0, XMax: 0.5, YMax: 0.5}
	c.SetViewport(r)
	if got, ok := c.Viewport(); !ok || got != r {
		t.Errorf("Viewport() = %v, %v", got, ok)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"White", RGB(1, 1, 1), false},
		{"  black ", RGB(0, 0, 0), false},
		{"#ff0000", RGB(1, 0, 0), false},
		{"0, 0.5, 1", RGB(0, 0.5, 1), false},
		{"1,2,3", Color{}, true},
		{"not-a-color", Color{}, true},
		{"#zz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && !got.AlmostEqualRgb(tt.want) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorNamesResolve(t *testing.T) {
	for _, n := range ColorNames() {
		if _, ok := Named(n); !ok {
			t.Errorf("palette entry %q does not parse", n)
		}
	}
	bkg := MustNamed("ParaViewBkg")
	if !bkg.AlmostEqualRgb(RGB255(82, 87, 110)) {
		t.Errorf("ParaViewBkg = %v", bkg)
	}
}
