package sink

import (
	"encoding/json"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

type jsonOutput struct {
	Name        string         `json:"name"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Renderers   []jsonRenderer `json:"renderers"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

type jsonRenderer struct {
	Index      int                  `json:"index"`
	Row        int                  `json:"row"`
	Col        int                  `json:"col"`
	Filler     bool                 `json:"filler,omitempty"`
	Title      string               `json:"title,omitempty"`
	Viewport   layout.Rect          `json:"viewport"`
	Pixels     [4]int               `json:"pixels"`
	Background string               `json:"background"`
	Borders    []layout.BorderStyle `json:"borders"`
	TitleBox   *layout.TextBox      `json:"title_box,omitempty"`
	Camera     *jsonCamera          `json:"camera,omitempty"`
	Actors     []string             `json:"actors,omitempty"`
}

type jsonCamera struct {
	// SharedWith is the index of the first renderer using this camera when
	// it is not this renderer.
	SharedWith *int              `json:"shared_with,omitempty"`
	Position   [3]float64        `json:"position"`
	FocalPoint [3]float64        `json:"focal_point"`
	ViewUp     [3]float64        `json:"view_up"`
	ViewAngle  float64           `json:"view_angle"`
	Nudges     scene.NudgeRecord `json:"nudges"`
}

// RenderJSON exports the window layout as indented JSON: one entry per
// renderer with its viewport, pixel rectangle, border styles, title box and
// camera pose. Diagnostics recorded while composing are included.
func RenderJSON(w *compose.Window) ([]byte, error) {
	out := jsonOutput{
		Name:   w.Name,
		Width:  w.Width,
		Height: w.Height,
		Rows:   w.Grid.Rows,
		Cols:   w.Grid.Cols,
	}
	for _, d := range w.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.Error())
	}

	owners := map[*scene.Camera]int{}
	for _, r := range w.Renderers {
		x0, y0, x1, y1 := r.Viewport.Pixels(w.Width, w.Height)
		jr := jsonRenderer{
			Index:      r.Index,
			Row:        r.Row,
			Col:        r.Col,
			Filler:     r.Filler,
			Title:      r.Title,
			Viewport:   r.Viewport,
			Pixels:     [4]int{x0, y0, x1, y1},
			Background: r.Background.Clamped().Hex(),
		}
		for _, b := range r.Overlays {
			jr.Borders = append(jr.Borders, b.Style)
		}
		if ts := r.Texts(); len(ts) > 0 {
			box := ts[0].Box
			jr.TitleBox = &box
		}
		if c := r.Camera; c != nil {
			jc := &jsonCamera{
				Position:   c.Position,
				FocalPoint: c.FocalPoint,
				ViewUp:     c.ViewUp,
				ViewAngle:  c.ViewAngle,
				Nudges:     c.Record,
			}
			if owner, ok := owners[c]; ok {
				jc.SharedWith = &owner
			} else {
				owners[c] = r.Index
			}
			jr.Camera = jc
		}
		for _, a := range r.Actors {
			jr.Actors = append(jr.Actors, a.Name)
		}
		out.Renderers = append(out.Renderers, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}
