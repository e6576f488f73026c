package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/colormap"
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// Plan is the grid a scene resolves to once file values, options and
// defaults are combined.
type Plan struct {
	Rows, Cols  int
	Size        int
	ShareCamera bool
}

// plan fills grid fields from the file first, then opts, then defaults.
func (sf *SceneFile) plan(opts Options) (Plan, error) {
	p := Plan{
		Rows:        firstPositive(sf.Rows, opts.Rows),
		Cols:        firstPositive(sf.Cols, opts.Cols),
		Size:        firstPositive(sf.Size, opts.Size, DefaultSize),
		ShareCamera: sf.ShareCamera || opts.ShareCamera,
	}
	n := max(len(sf.Cells), 1)
	switch {
	case p.Rows == 0 && p.Cols == 0:
		rows, cols, err := layout.GridFor(n, DefaultMaxCols)
		if err != nil {
			return Plan{}, err
		}
		p.Rows, p.Cols = rows, cols
	case p.Rows == 0:
		p.Rows = (n + p.Cols - 1) / p.Cols
	case p.Cols == 0:
		p.Cols = (n + p.Rows - 1) / p.Rows
	}
	return p, nil
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// lookup loads the scene colormap, if any. Relative paths resolve against
// the directory of the scene file.
func (sf *SceneFile) lookup() (*colormap.CTF, error) {
	if sf.Colormap == nil {
		return nil, nil
	}
	if sf.Colormap.File == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "colormap needs a file")
	}
	return colormap.Load(sf.colormapPath(), sf.Colormap.Name, sf.Colormap.Discretize, sf.Colormap.TableSize)
}

func (sf *SceneFile) colormapPath() string {
	path := sf.Colormap.File
	if !filepath.IsAbs(path) && sf.dir != "" {
		path = filepath.Join(sf.dir, path)
	}
	return colormap.ResolvePath(path)
}

// textProperty overlays the file's text settings on the default.
func (sf *SceneFile) textProperty() (scene.TextProperty, error) {
	p := scene.DefaultTextProperty()
	t := sf.Text
	if t.Family != "" {
		p.Family = t.Family
	}
	if t.Size > 0 {
		p.Size = t.Size
	}
	p.Bold, p.Italic, p.Shadow = t.Bold, t.Italic, t.Shadow
	if t.Color != "" {
		c, err := scene.ParseColor(t.Color)
		if err != nil {
			return p, err
		}
		p.Color = c
	}
	if t.Justify != nil {
		p.Justify = *t.Justify
	}
	if t.VJustify != nil {
		p.VJustify = *t.VJustify
	}
	return p, nil
}

// Cells builds the scene cells in file order.
func (sf *SceneFile) Cells() ([]*scene.Cell, error) {
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	ctf, err := sf.lookup()
	if err != nil {
		return nil, err
	}
	text, err := sf.textProperty()
	if err != nil {
		return nil, err
	}
	bg := scene.RGB(0, 0, 0)
	if sf.Background != "" {
		if bg, err = scene.ParseColor(sf.Background); err != nil {
			return nil, err
		}
	}

	cells := make([]*scene.Cell, 0, len(sf.Cells))
	for i, spec := range sf.Cells {
		c, err := spec.build(bg, text, ctf)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "cell %d", i)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// ComposeOptions returns the window options set by the file.
func (sf *SceneFile) ComposeOptions() ([]compose.Option, error) {
	var opts []compose.Option
	if sf.Name != "" {
		opts = append(opts, compose.WithName(sf.Name))
	}
	if sf.BorderColor != "" {
		c, err := scene.ParseColor(sf.BorderColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithBorderColor(c))
	}
	if sf.BorderWidth > 0 {
		opts = append(opts, compose.WithBorderWidth(sf.BorderWidth))
	}
	if sf.FillerBackground != "" {
		c, err := scene.ParseColor(sf.FillerBackground)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithFillerBackground(c))
	}
	if sf.Text.Justify != nil || sf.Text.VJustify != nil {
		text, err := sf.textProperty()
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithTitleLayout(text.Justify, text.VJustify,
			layout.DefaultTextWidth, layout.DefaultTextHeight))
	}
	return opts, nil
}

func (spec CellSpec) mesh() (*scene.Mesh, string, error) {
	switch {
	case spec.Solid != "":
		s, err := source.ParseSolid(spec.Solid)
		if err != nil {
			return nil, "", err
		}
		m, err := source.Platonic(s)
		return m, s.String(), err
	case spec.Shape != "":
		for _, n := range source.Shapes() {
			if strings.EqualFold(n.Name, strings.TrimSpace(spec.Shape)) {
				return n.Mesh, n.Name, nil
			}
		}
		return nil, "", errors.New(errors.ErrCodeInvalidScene, "unknown shape %q", spec.Shape)
	case spec.Surface != "":
		s, err := source.LookupSurface(spec.Surface)
		if err != nil {
			return nil, "", err
		}
		res := spec.Resolution
		if res <= 0 {
			res = source.DefaultResolution
		}
		return source.Tessellate(s, res, res), s.Name, nil
	}
	return nil, "", nil
}

func (spec CellSpec) build(bg scene.Color, text scene.TextProperty, ctf *colormap.CTF) (*scene.Cell, error) {
	c := scene.NewCell().SetTitle(spec.Title).SetTextProperty(text).SetBackground(bg)
	if spec.Background != "" {
		col, err := scene.ParseColor(spec.Background)
		if err != nil {
			return nil, err
		}
		c.SetBackground(col)
	}

	m, name, err := spec.mesh()
	if err != nil {
		return nil, err
	}
	if m != nil {
		a, err := spec.actor(name, m, ctf)
		if err != nil {
			return nil, err
		}
		c.AddActor(a)
	}

	cam := spec.Camera
	if cam.Position != nil || cam.FocalPoint != nil || cam.ViewUp != nil {
		pos, focal, up := mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}
		if cam.Position != nil {
			pos = mgl64.Vec3(*cam.Position)
		}
		if cam.FocalPoint != nil {
			focal = mgl64.Vec3(*cam.FocalPoint)
		}
		if cam.ViewUp != nil {
			up = mgl64.Vec3(*cam.ViewUp)
		}
		c.SetCamera(pos, focal, up)
	}
	c.NudgeCamera(cam.Azimuth, cam.Elevation, cam.Zoom, cam.Dolly)

	if spec.Viewport != nil {
		c.SetViewport(*spec.Viewport)
	}
	switch strings.ToLower(spec.Marker) {
	case "":
	case "axes":
		c.SetOrientationMarker(scene.DefaultMarker())
	case "cube":
		mk := scene.DefaultMarker()
		mk.Kind = scene.MarkerCube
		c.SetOrientationMarker(mk)
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown marker %q, want axes or cube", spec.Marker)
	}
	if spec.ScalarBar != "" {
		c.SetScalarBar(scene.NewScalarBar(spec.ScalarBar, ctf))
	}
	return c, nil
}

func (spec CellSpec) actor(name string, m *scene.Mesh, ctf *colormap.CTF) (*scene.Actor, error) {
	a := scene.NewActor(name, m)
	a.ScalarMode = scene.ScalarsOff
	a.Wireframe = spec.Wireframe
	if spec.Opacity != nil {
		a.Opacity = max(0, min(1, *spec.Opacity))
	}
	if spec.Color != "" {
		col, err := scene.ParseColor(spec.Color)
		if err != nil {
			return nil, err
		}
		a.Color = col
	}
	if spec.Backface != "" {
		col, err := scene.ParseColor(spec.Backface)
		if err != nil {
			return nil, err
		}
		a.Backface = &col
	}

	switch {
	case spec.Elevation:
		source.ElevationY(m)
		a.Lookup, a.ScalarMode, a.ScalarRange = ctf, scene.ScalarsPoint, [2]float64{0, 1}
	case len(spec.FaceColors) > 0:
		lut := &scene.IndexedLookup{Hi: float64(len(spec.FaceColors) - 1)}
		for _, s := range spec.FaceColors {
			col, err := scene.ParseColor(s)
			if err != nil {
				return nil, err
			}
			lut.Colors = append(lut.Colors, col)
		}
		a.Lookup, a.ScalarMode = lut, scene.ScalarsCell
	}
	return a, nil
}
