package demos

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// Linked shows one torus four times with a shared camera, so moving any
// view moves them all. Each view uses a different material.
func Linked(opts Options) (*Program, error) {
	opts.setDefaults()
	mesh := source.Torus(48, 0.5, 0.2)

	looks := []struct {
		title, bg, color string
		wireframe        bool
		opacity          float64
	}{
		{"Solid", "DarkSlateGray", "Gold", false, 1},
		{"Wireframe", "MidnightBlue", "White", true, 1},
		{"Translucent", "DimGray", "SteelBlue", false, 0.5},
		{"Two-sided", "DarkOliveGreen", "Wheat", false, 1},
	}
	back := scene.MustNamed("Crimson")
	cells := make([]*scene.Cell, 0, len(looks))
	for i, l := range looks {
		a := scene.NewActor("Torus", mesh)
		a.Color = scene.MustNamed(l.color)
		a.Wireframe, a.Opacity = l.wireframe, l.opacity
		a.ScalarMode = scene.ScalarsOff
		if i == len(looks)-1 {
			a.Backface = &back
		}
		cells = append(cells, scene.NewCell().
			AddActor(a).
			SetTitle(l.title).
			SetBackground(scene.MustNamed(l.bg)).
			NudgeCamera(20, 35, 0, 0))
	}
	return &Program{
		Name:        "LinkedViews",
		Cells:       cells,
		Rows:        2,
		Cols:        2,
		Size:        sizeOr(opts.Size, 300),
		ShareCamera: true,
		Options:     []compose.Option{compose.WithBorderColor(scene.MustNamed("Silver"))},
	}, nil
}
