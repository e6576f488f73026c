package demos

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// Shapes lays sixteen primitives out on a 4x4 grid. The wireframe plane
// and disk show their back faces in a second color.
func Shapes(opts Options) (*Program, error) {
	opts.setDefaults()
	bg := scene.MustNamed("BkgColor")
	text := scene.DefaultTextProperty()
	text.Color = scene.MustNamed("LightGoldenrodYellow")
	back := scene.MustNamed("Tomato")

	shapes := source.Shapes()
	cells := make([]*scene.Cell, 0, len(shapes))
	for _, s := range shapes {
		a := scene.NewActor(s.Name, s.Mesh)
		a.Color = scene.MustNamed("PeachPuff")
		a.ScalarMode = scene.ScalarsOff
		a.Backface = &back
		cells = append(cells, scene.NewCell().
			AddActor(a).
			SetTitle(s.Name).
			SetTextProperty(text).
			SetBackground(bg).
			NudgeCamera(30, 30, 0.8, 0))
	}
	return &Program{
		Name:        "SourceObjects",
		Cells:       cells,
		Rows:        4,
		Cols:        4,
		Size:        sizeOr(opts.Size, 300),
		ShareCamera: opts.ShareCamera,
		Options:     []compose.Option{compose.WithBorderColor(text.Color)},
	}, nil
}
