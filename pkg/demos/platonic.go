package demos

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// faceColors has one entry per face of the solid with most faces.
var faceColors = []string{
	"Gold", "Banana", "Tomato", "Wheat", "Lavender",
	"Chartreuse", "CornflowerBlue", "Salmon", "MistyRose", "GreenYellow",
	"DarkGreen", "Coral", "Thistle", "RoyalBlue", "Orange",
	"Crimson", "Khaki", "SteelBlue", "Honeydew", "Tan",
}

// faceLookup returns an indexed table mapping face index to color.
func faceLookup() *scene.IndexedLookup {
	lut := &scene.IndexedLookup{Hi: float64(len(faceColors) - 1)}
	for _, n := range faceColors {
		lut.Colors = append(lut.Colors, scene.MustNamed(n))
	}
	return lut
}

func titleText() scene.TextProperty {
	p := scene.DefaultTextProperty()
	p.Bold, p.Italic, p.Shadow = true, true, true
	p.Color = scene.MustNamed("AliceBlue")
	return p
}

// Platonic shows the five Platonic solids on a 2x3 grid, faces colored
// through one shared lookup table.
func Platonic(opts Options) (*Program, error) {
	opts.setDefaults()
	lut := faceLookup()
	bg := scene.MustNamed("SlateGray")
	text := titleText()

	var cells []*scene.Cell
	for _, s := range source.Solids() {
		m, err := source.Platonic(s)
		if err != nil {
			return nil, err
		}
		a := scene.NewActor(s.String(), m)
		a.Lookup, a.ScalarMode = lut, scene.ScalarsCell
		cells = append(cells, scene.NewCell().
			AddActor(a).
			SetTitle(s.String()).
			SetTextProperty(text).
			SetBackground(bg).
			NudgeCamera(-30, 15, 0, 0))
	}
	return &Program{
		Name:        "PlatonicSolids",
		Cells:       cells,
		Rows:        2,
		Cols:        3,
		Size:        sizeOr(opts.Size, 300),
		ShareCamera: opts.ShareCamera,
		Options: []compose.Option{
			compose.WithBorderColor(scene.MustNamed("Yellow")),
			compose.WithBorderWidth(4),
		},
	}, nil
}
