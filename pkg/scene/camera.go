package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultViewAngle is the vertical field of view in degrees.
const DefaultViewAngle = 30.0

// NudgeRecord accumulates every nudge applied since the last reset.
type NudgeRecord struct {
	Azimuth   float64 `json:"azimuth" yaml:"azimuth"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
	Zoom      float64 `json:"zoom" yaml:"zoom"`
	Dolly     float64 `json:"dolly" yaml:"dolly"`
}

// Camera is a perspective pinhole camera.
type Camera struct {
	Position   mgl64.Vec3
	FocalPoint mgl64.Vec3
	ViewUp     mgl64.Vec3
	ViewAngle  float64
	Near, Far  float64
	Record     NudgeRecord
}

// NewCamera returns a camera at (0,0,1) looking at the origin with +Y up.
func NewCamera() *Camera {
	return &Camera{
		Position:  mgl64.Vec3{0, 0, 1},
		ViewUp:    mgl64.Vec3{0, 1, 0},
		ViewAngle: DefaultViewAngle,
		Near:      0.01,
		Far:       1000,
		Record:    NudgeRecord{Zoom: 1, Dolly: 1},
	}
}

// Clone returns an independent copy.
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}

// Distance returns the distance between position and focal point.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.FocalPoint).Len()
}

// DirectionOfProjection returns the unit vector from position to focal point.
func (c *Camera) DirectionOfProjection() mgl64.Vec3 {
	d := c.FocalPoint.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *Camera) setDistance(d float64) {
	c.Position = c.FocalPoint.Sub(c.DirectionOfProjection().Mul(d))
}

// Reset frames b: the focal point moves to the box center and the camera
// backs off along its current direction until the bounding sphere fits the
// view angle. The nudge record is cleared.
func (c *Camera) Reset(b Bounds) {
	dop := c.DirectionOfProjection()
	radius := b.Radius()
	if radius == 0 {
		radius = 0.5
	}
	angle := c.ViewAngle
	if angle <= 0 {
		angle = DefaultViewAngle
	}
	dist := radius / math.Sin(mgl64.DegToRad(angle)/2)

	c.FocalPoint = b.Center()
	c.Position = c.FocalPoint.Sub(dop.Mul(dist))
	c.orthogonalizeViewUp()
	c.Record = NudgeRecord{Zoom: 1, Dolly: 1}
	c.ResetClippingRange(b)
}

// Azimuth rotates the position about the view-up vector centered at the
// focal point.
func (c *Camera) Azimuth(deg float64) {
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), c.ViewUp.Normalize())
	c.Position = c.FocalPoint.Add(q.Rotate(c.Position.Sub(c.FocalPoint)))
	c.Record.Azimuth += deg
}

// Elevation rotates the position about the negative right axis centered at
// the focal point, then re-orthogonalizes view-up.
func (c *Camera) Elevation(deg float64) {
	right := c.DirectionOfProjection().Cross(c.ViewUp)
	if right.Len() == 0 {
		return
	}
	axis := right.Normalize().Mul(-1)
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), axis)
	c.Position = c.FocalPoint.Add(q.Rotate(c.Position.Sub(c.FocalPoint)))
	c.ViewUp = q.Rotate(c.ViewUp)
	c.orthogonalizeViewUp()
	c.Record.Elevation += deg
}

// Zoom divides the camera distance by f. Non-positive factors are ignored.
func (c *Camera) Zoom(f float64) {
	if f <= 0 {
		return
	}
	c.setDistance(c.Distance() / f)
	c.Record.Zoom *= f
}

// Dolly moves the camera toward the focal point by factor f.
func (c *Camera) Dolly(f float64) {
	if f <= 0 {
		return
	}
	c.setDistance(c.Distance() / f)
	c.Record.Dolly *= f
}

func (c *Camera) orthogonalizeViewUp() {
	dop := c.DirectionOfProjection()
	up := c.ViewUp.Sub(dop.Mul(c.ViewUp.Dot(dop)))
	if up.Len() < 1e-9 {
		// view-up parallel to the view direction; pick any perpendicular
		alt := mgl64.Vec3{0, 0, 1}
		if math.Abs(dop[2]) > 0.9 {
			alt = mgl64.Vec3{0, 1, 0}
		}
		up = alt.Sub(dop.Mul(alt.Dot(dop)))
	}
	c.ViewUp = up.Normalize()
}

// ResetClippingRange fits the near and far planes around b.
func (c *Camera) ResetClippingRange(b Bounds) {
	if b.Empty() {
		return
	}
	dop := c.DirectionOfProjection()
	near, far := math.Inf(1), math.Inf(-1)
	for _, p := range b.Corners() {
		d := p.Sub(c.Position).Dot(dop)
		near, far = math.Min(near, d), math.Max(far, d)
	}
	pad := (far - near) * 0.01
	if pad == 0 {
		pad = 0.01
	}
	near, far = near-pad, far+pad
	if near < 0.001*far {
		near = 0.001 * far
	}
	if far <= 0 {
		far = 1
		near = 0.001
	}
	c.Near, c.Far = near, far
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.FocalPoint, c.ViewUp)
}

// ProjectionMatrix returns the perspective transform for the given aspect
// ratio (width / height).
func (c *Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.ViewAngle), aspect, c.Near, c.Far)
}

// Placement is a hand-set camera pose.
type Placement struct {
	Position   mgl64.Vec3
	FocalPoint mgl64.Vec3
	ViewUp     mgl64.Vec3
}

// Nudge is the set of adjustments applied after a reset. Zero Zoom and
// Dolly mean "unchanged".
type Nudge struct {
	Azimuth   float64 `json:"azimuth,omitempty" yaml:"azimuth,omitempty" toml:"azimuth,omitempty"`
	Elevation float64 `json:"elevation,omitempty" yaml:"elevation,omitempty" toml:"elevation,omitempty"`
	Zoom      float64 `json:"zoom,omitempty" yaml:"zoom,omitempty" toml:"zoom,omitempty"`
	Dolly     float64 `json:"dolly,omitempty" yaml:"dolly,omitempty" toml:"dolly,omitempty"`
}

// Apply performs the nudge in order: azimuth, elevation, zoom, dolly.
func (n Nudge) Apply(c *Camera) {
	if n.Azimuth != 0 {
		c.Azimuth(n.Azimuth)
	}
	if n.Elevation != 0 {
		c.Elevation(n.Elevation)
	}
	if n.Zoom != 0 {
		c.Zoom(n.Zoom)
	}
	if n.Dolly != 0 {
		c.Dolly(n.Dolly)
	}
}
