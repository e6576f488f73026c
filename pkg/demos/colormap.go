package demos

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/colormap"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// DefaultColormap is used when no colormap file is given: a diverging
// blue to red map.
func DefaultColormap(discretize bool, tableSize int) (*colormap.CTF, error) {
	return colormap.New(colormap.Spec{
		Name:          "Cool to Warm",
		Interpolation: colormap.InterpDiverging,
		Points: []colormap.Point{
			{X: 0, V: [3]float64{0.230, 0.299, 0.754}, Opacity: 1},
			{X: 1, V: [3]float64{0.706, 0.016, 0.150}, Opacity: 1},
		},
		Discretize: discretize,
		TableSize:  tableSize,
	})
}

func loadColormap(opts Options) (*colormap.CTF, error) {
	if opts.Colormap == "" {
		return DefaultColormap(opts.Discretize, opts.TableSize)
	}
	return colormap.Load(opts.Colormap, opts.ColormapName, opts.Discretize, opts.TableSize)
}

// Colormap colors a cone by height through a colormap and shows the
// mapping on a scalar bar.
func Colormap(opts Options) (*Program, error) {
	opts.setDefaults()
	ctf, err := loadColormap(opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("colormap loaded", "name", ctf.Name(), "points", ctf.Len(), "table", ctf.TableSize())

	m := source.ElevationY(source.Cone(6, 1, 0.5, mgl64.Vec3{0, 1, 0}))
	a := scene.NewActor("Cone", m)
	a.Lookup, a.ScalarMode, a.ScalarRange = ctf, scene.ScalarsPoint, [2]float64{0, 1}

	cell := scene.NewCell().
		AddActor(a).
		SetTitle(ctf.Name()).
		SetBackground(scene.MustNamed("ParaViewBkg")).
		SetScalarBar(scene.NewScalarBar("Elevation", ctf)).
		NudgeCamera(30, 15, 0, 0)

	return &Program{
		Name:  "ColorMapToLUT",
		Cells: []*scene.Cell{cell},
		Rows:  1,
		Cols:  1,
		Size:  sizeOr(opts.Size, 480),
	}, nil
}
