package demos

import (
	"math"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// Resolution slider keys.
const (
	ResolutionUp   = "]"
	ResolutionDown = "["
)

// Surfaces shows every parametric surface on a 5x5 grid, or only
// opts.Surface in one large view. An unknown surface fails with
// UNKNOWN_SURFACE before anything is built.
func Surfaces(opts Options) (*Program, error) {
	opts.setDefaults()
	var selected []source.Surface
	if opts.Surface != "" {
		s, err := source.LookupSurface(opts.Surface)
		if err != nil {
			return nil, err
		}
		selected = append(selected, s)
	} else {
		for _, n := range source.SurfaceNames() {
			s, err := source.LookupSurface(n)
			if err != nil {
				return nil, err
			}
			selected = append(selected, s)
		}
	}

	bg := scene.MustNamed("MidnightBlue")
	back := scene.MustNamed("Peru")
	text := scene.DefaultTextProperty()
	text.Color = scene.MustNamed("LavenderBlush")

	cells := make([]*scene.Cell, 0, len(selected))
	for _, s := range selected {
		a := scene.NewActor(s.Name, source.Tessellate(s, source.DefaultResolution, source.DefaultResolution))
		a.Color = scene.MustNamed("NavajoWhite")
		a.Backface = &back
		a.ScalarMode = scene.ScalarsOff
		cells = append(cells, scene.NewCell().
			AddActor(a).
			SetTitle(s.Name).
			SetTextProperty(text).
			SetBackground(bg).
			SetOrientationMarker(scene.DefaultMarker()).
			NudgeCamera(30, -30, 0.9, 0))
	}

	p := &Program{
		Name:        "ParametricObjects",
		Cells:       cells,
		ShareCamera: opts.ShareCamera,
	}
	if len(selected) == 1 {
		p.Rows, p.Cols, p.Size = 1, 1, sizeOr(opts.Size, 1000)
	} else {
		p.Cols = 5
		p.Rows = (len(cells) + p.Cols - 1) / p.Cols
		p.Size = sizeOr(opts.Size, 200)
	}
	if !opts.NoSliders {
		p.Setup = func(w *compose.Window) error { return addResolutionSliders(w, selected) }
	}
	return p, nil
}

// addResolutionSliders gives every view a slider that re-tessellates its
// surface, stepped with the [ and ] keys.
func addResolutionSliders(w *compose.Window, surfaces []source.Surface) error {
	for i, r := range w.ContentRenderers() {
		if i >= len(surfaces) || len(r.Actors) == 0 {
			continue
		}
		s := surfaces[i]
		sl := compose.NewSlider("Resolution", r.Actors[0], 3, 101, source.DefaultResolution,
			func(a *scene.Actor, v float64) {
				n := int(math.Round(v))
				a.Mesh = source.Tessellate(s, n, n)
			})
		sl.Step = 4
		sl.IncKey, sl.DecKey = ResolutionUp, ResolutionDown
		if err := r.AddWidget(sl); err != nil {
			return err
		}
	}
	return nil
}
