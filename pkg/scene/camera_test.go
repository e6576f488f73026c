package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-6 }

func unitCube() Bounds {
	return NewBounds(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5})
}

func TestCameraReset(t *testing.T) {
	c := NewCamera()
	b := NewBounds(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{3, 3, 3})
	c.Reset(b)

	if !c.FocalPoint.ApproxEqual(mgl64.Vec3{2, 2, 2}) {
		t.Errorf("focal = %v, want box center", c.FocalPoint)
	}
	want := b.Radius() / math.Sin(mgl64.DegToRad(15))
	if !near(c.Distance(), want) {
		t.Errorf("distance = %v, want %v", c.Distance(), want)
	}
	if !c.DirectionOfProjection().ApproxEqual(mgl64.Vec3{0, 0, -1}) {
		t.Errorf("direction changed: %v", c.DirectionOfProjection())
	}
	if c.Near <= 0 || c.Far <= c.Near {
		t.Errorf("clipping range = [%v, %v]", c.Near, c.Far)
	}
}

func TestCameraResetEmptyBounds(t *testing.T) {
	c := NewCamera()
	c.Reset(Bounds{})
	want := 0.5 / math.Sin(mgl64.DegToRad(15))
	if !near(c.Distance(), want) {
		t.Errorf("distance = %v, want %v", c.Distance(), want)
	}
}

func TestCameraZoomAfterReset(t *testing.T) {
	c := NewCamera()
	c.Reset(unitCube())
	d0 := c.Distance()

	c.Azimuth(30)
	c.Elevation(-30)
	c.Zoom(0.9)

	if !near(c.Distance(), d0/0.9) {
		t.Errorf("distance = %v, want %v", c.Distance(), d0/0.9)
	}
	r := c.Record
	if r.Azimuth != 30 || r.Elevation != -30 || !near(r.Zoom, 0.9) || r.Dolly != 1 {
		t.Errorf("record = %+v", r)
	}
}

func TestCameraZoomIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	c.Reset(unitCube())
	d0 := c.Distance()
	c.Zoom(0)
	c.Dolly(-2)
	if !near(c.Distance(), d0) {
		t.Errorf("distance changed to %v", c.Distance())
	}
	if c.Record.Zoom != 1 || c.Record.Dolly != 1 {
		t.Errorf("record = %+v", c.Record)
	}
}

func TestCameraAzimuth(t *testing.T) {
	c := NewCamera()
	c.Reset(unitCube())
	d := c.Distance()
	c.Azimuth(90)

	// +90 degrees about +Y moves a camera on +Z to +X.
	if !c.Position.ApproxEqualThreshold(mgl64.Vec3{d, 0, 0}, 1e-6) {
		t.Errorf("position = %v, want (%v, 0, 0)", c.Position, d)
	}
	if !near(c.Distance(), d) {
		t.Errorf("azimuth changed distance: %v", c.Distance())
	}
}

func TestCameraElevationKeepsUpOrthogonal(t *testing.T) {
	c := NewCamera()
	c.Reset(unitCube())
	for _, deg := range []float64{10, 30, 45, -60} {
		c.Elevation(deg)
		if dot := c.ViewUp.Dot(c.DirectionOfProjection()); math.Abs(dot) > 1e-6 {
			t.Errorf("after %v: up.dop = %v", deg, dot)
		}
		if !near(c.ViewUp.Len(), 1) {
			t.Errorf("after %v: |up| = %v", deg, c.ViewUp.Len())
		}
	}
	if c.Record.Elevation != 25 {
		t.Errorf("elevation sum = %v, want 25", c.Record.Elevation)
	}
	if c.Position[1] <= 0 {
		t.Errorf("positive elevation should raise the camera, got %v", c.Position)
	}
}

func TestCameraResetClearsRecord(t *testing.T) {
	c := NewCamera()
	c.Azimuth(10)
	c.Zoom(2)
	c.Reset(unitCube())
	if c.Record != (NudgeRecord{Zoom: 1, Dolly: 1}) {
		t.Errorf("record = %+v", c.Record)
	}
}

func TestCameraClone(t *testing.T) {
	c := NewCamera()
	cp := c.Clone()
	cp.Azimuth(45)
	if c.Record.Azimuth != 0 || c.Position != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("clone shares state with original")
	}
}

func TestCameraMatrices(t *testing.T) {
	c := NewCamera()
	c.Reset(unitCube())
	v := c.ViewMatrix()
	p := v.Mul4x1(c.FocalPoint.Vec4(1))
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -c.Distance()) {
		t.Errorf("focal point in eye space = %v", p)
	}
	proj := c.ProjectionMatrix(2)
	if math.Abs(proj.At(0, 0)*2-proj.At(1, 1)) > eps {
		t.Errorf("aspect not applied: %v", proj)
	}
}

func TestNudgeOrder(t *testing.T) {
	a := NewCamera()
	a.Reset(unitCube())
	Nudge{Azimuth: 30, Elevation: 20, Zoom: 2}.Apply(a)

	b := NewCamera()
	b.Reset(unitCube())
	b.Azimuth(30)
	b.Elevation(20)
	b.Zoom(2)

	if !a.Position.ApproxEqual(b.Position) {
		t.Errorf("Apply order differs: %v vs %v", a.Position, b.Position)
	}
}
