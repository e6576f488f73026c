package scene

import (
	"github.com/matzehuels/viewgrid/pkg/layout"
)

// MarkerKind selects the orientation marker drawn in a cell corner.
type MarkerKind int

const (
	MarkerAxes MarkerKind = iota
	MarkerCube
)

func (k MarkerKind) String() string {
	if k == MarkerCube {
		return "cube"
	}
	return "axes"
}

// Marker is an orientation marker request. It rotates with the cell camera.
type Marker struct {
	Kind MarkerKind
	// Viewport is the marker's sub-viewport in cell-normalized coordinates.
	Viewport layout.Rect
	// Labels name the +X, +Y and +Z directions.
	Labels [3]string
	Color  Color
}

// DefaultMarker returns an axes marker in the lower-left corner.
func DefaultMarker() *Marker {
	return &Marker{
		Kind:     MarkerAxes,
		Viewport: layout.Rect{XMin: 0, YMin: 0, XMax: 0.2, YMax: 0.2},
		Labels:   [3]string{"X", "Y", "Z"},
		Color:    RGB(1, 1, 1),
	}
}

// ScalarBar shows the mapping of a lookup table next to the scene.
type ScalarBar struct {
	Title      string
	Lookup     LookupTable
	Labels     int
	Horizontal bool
	// Position is the bar's box in cell-normalized coordinates.
	Position layout.Rect
}

// NewScalarBar returns a vertical bar along the right edge.
func NewScalarBar(title string, lut LookupTable) *ScalarBar {
	return &ScalarBar{
		Title:    title,
		Lookup:   lut,
		Labels:   5,
		Position: layout.Rect{XMin: 0.85, YMin: 0.1, XMax: 0.95, YMax: 0.8},
	}
}

// TextProperty styles a title.
type TextProperty struct {
	Family   string
	Size     int
	Bold     bool
	Italic   bool
	Shadow   bool
	Color    Color
	Justify  layout.HJustify
	VJustify layout.VJustify
}

// DefaultTextProperty returns white 16pt Courier text, centered.
func DefaultTextProperty() TextProperty {
	return TextProperty{
		Family:   "Courier",
		Size:     16,
		Color:    RGB(1, 1, 1),
		Justify:  layout.HCentered,
		VJustify: layout.Bottom,
	}
}
