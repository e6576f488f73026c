package raster

import (
	"image"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// headlight shades with a light at the camera position. Both sides of a
// surface are lit.
type headlight struct {
	matrix   fauxgl.Matrix
	eye      fauxgl.Vector
	ambient  float64
	diffuse  float64
	specular float64
	power    float64
	opacity  float64
}

func (s *headlight) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.matrix.MulPositionW(v.Position)
	return v
}

func (s *headlight) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := unit(v.Normal)
	l := unit(fauxgl.Vector{X: s.eye.X - v.Position.X, Y: s.eye.Y - v.Position.Y, Z: s.eye.Z - v.Position.Z})
	d := math.Abs(n.X*l.X + n.Y*l.Y + n.Z*l.Z)
	k := s.ambient + s.diffuse*d
	spec := 0.0
	if s.specular > 0 {
		spec = s.specular * math.Pow(d, s.power)
	}
	return fauxgl.Color{
		R: clamp01(v.Color.R*k + spec),
		G: clamp01(v.Color.G*k + spec),
		B: clamp01(v.Color.B*k + spec),
		A: s.opacity,
	}
}

func unit(v fauxgl.Vector) fauxgl.Vector {
	l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if l == 0 {
		return v
	}
	return fauxgl.Vector{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

func clamp01(x float64) float64 { return math.Max(0, math.Min(1, x)) }

func vec(v mgl64.Vec3) fauxgl.Vector { return fauxgl.Vector{X: v[0], Y: v[1], Z: v[2]} }

func color(c scene.Color) fauxgl.Color {
	c = c.Clamped()
	return fauxgl.Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// drawScene rasterizes r into a w×h image filled with r's background.
// Opaque actors are drawn first; translucent ones blend over them without
// writing depth.
func (p *Painter) drawScene(r *compose.Renderer, w, h int) image.Image {
	ctx := fauxgl.NewContext(w, h)
	ctx.ClearColorBufferWith(color(r.Background))
	cam := r.ViewCamera()
	if cam == nil {
		return ctx.Image()
	}
	ctx.Cull = fauxgl.CullNone
	aspect := float64(w) / float64(h)
	matrix := fauxgl.LookAt(vec(cam.Position), vec(cam.FocalPoint), vec(cam.ViewUp)).
		Perspective(cam.ViewAngle, aspect, cam.Near, cam.Far)

	var translucent []*scene.Actor
	for _, a := range r.Actors {
		if a.Hidden || a.Mesh == nil || len(a.Mesh.Triangles) == 0 {
			continue
		}
		if a.Opacity < 1 {
			translucent = append(translucent, a)
			continue
		}
		p.drawActor(ctx, matrix, cam, a)
	}
	if len(translucent) > 0 {
		ctx.WriteDepth = false
		for _, a := range translucent {
			p.drawActor(ctx, matrix, cam, a)
		}
		ctx.WriteDepth = true
	}
	return ctx.Image()
}

func (p *Painter) drawActor(ctx *fauxgl.Context, matrix fauxgl.Matrix, cam *scene.Camera, a *scene.Actor) {
	if a.Opacity <= 0 {
		return
	}
	ctx.Shader = &headlight{
		matrix:   matrix,
		eye:      vec(cam.Position),
		ambient:  p.ambient,
		diffuse:  p.diffuse,
		specular: a.Specular,
		power:    p.power,
		opacity:  math.Min(a.Opacity, 1),
	}
	ctx.Wireframe = a.Wireframe
	ctx.DrawMesh(fauxgl.NewTriangleMesh(triangles(a, cam.Position)))
}

// triangles converts an actor mesh into world-space fauxgl triangles with
// per-corner colors. Triangles facing away from eye take the backface color
// when the actor has one.
func triangles(a *scene.Actor, eye mgl64.Vec3) []*fauxgl.Triangle {
	m := a.Mesh
	smooth := len(m.Normals) == len(m.Points)
	out := make([]*fauxgl.Triangle, 0, len(m.Triangles))
	for i, t := range m.Triangles {
		var pos [3]mgl64.Vec3
		for k, idx := range t {
			pos[k] = a.Transform(m.Points[idx])
		}
		face := pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[0]))
		if face.Len() == 0 {
			continue
		}
		cols := a.TriangleColors(i)
		if a.Backface != nil && face.Dot(eye.Sub(pos[0])) < 0 {
			cols = [3]scene.Color{*a.Backface, *a.Backface, *a.Backface}
		}
		var vs [3]fauxgl.Vertex
		for k, idx := range t {
			n := face
			if smooth {
				n = m.Normals[idx]
			}
			vs[k] = fauxgl.Vertex{Position: vec(pos[k]), Normal: vec(n), Color: color(cols[k])}
		}
		out = append(out, &fauxgl.Triangle{V1: vs[0], V2: vs[1], V3: vs[2]})
	}
	return out
}
