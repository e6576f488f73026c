package compose

import (
	"math"

	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// MinLineWidth keeps borders visible at the window edges, where half of
// the stroke falls outside the viewport.
const MinLineWidth = 2.0

// Decorator installs borders and labels on renderers.
type Decorator struct{}

// Decorate draws style around r and, when label is non-empty and box is
// given, installs a label widget at the box.
func (Decorator) Decorate(r *Renderer, style layout.BorderStyle, color scene.Color, lineWidth float64,
	label string, box *layout.TextBox, prop scene.TextProperty) error {
	lines, err := layout.BorderLines(style)
	if err != nil {
		return err
	}
	r.Overlays = append(r.Overlays, &BorderOverlay{
		Style: style,
		Lines: lines,
		Color: color,
		Width: math.Max(lineWidth, MinLineWidth),
	})
	if label == "" || box == nil {
		return nil
	}
	return r.AddWidget(NewTextWidget(label, *box, prop))
}
