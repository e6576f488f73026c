package colormap

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// jsonColorMap mirrors one entry of a ParaView colormap export.
type jsonColorMap struct {
	Name       string    `json:"Name"`
	Creator    string    `json:"Creator,omitempty"`
	ColorSpace *string   `json:"ColorSpace,omitempty"`
	Scale      string    `json:"InterpolationType,omitempty"`
	RGBPoints  []float64 `json:"RGBPoints,omitempty"`
	HSVPoints  []float64 `json:"HSVPoints,omitempty"`
	NanColor   []float64 `json:"NanColor,omitempty"`
	AboveColor []float64 `json:"AboveColor,omitempty"`
	BelowColor []float64 `json:"BelowColor,omitempty"`
}

// ParseJSON reads a JSON array of colormaps. Entries without a ColorSpace
// are not colormaps and are skipped.
func ParseJSON(r io.Reader, source string) (*Set, error) {
	var raw []jsonColorMap
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColorMap, err, "%s: decode JSON", source)
	}
	set := newSet(source)
	for _, jm := range raw {
		if jm.ColorSpace == nil {
			continue
		}
		spec := Spec{
			Name:          jm.Name,
			Creator:       jm.Creator,
			Source:        source,
			Interpolation: ParseInterpolation(*jm.ColorSpace),
			Scale:         ParseScale(jm.Scale),
		}
		flat := jm.RGBPoints
		if len(jm.HSVPoints) > 0 {
			flat, spec.Space = jm.HSVPoints, PointsHSV
		}
		if len(flat)%4 != 0 {
			return nil, errors.New(errors.ErrCodeInvalidColorMap,
				"%s: %s: the data values length must be the same as colors", source, spec.label())
		}
		for i := 0; i+3 < len(flat); i += 4 {
			spec.Points = append(spec.Points, Point{X: flat[i], V: [3]float64{flat[i+1], flat[i+2], flat[i+3]}, Opacity: 1})
		}
		var err error
		if spec.NaN, err = triple(jm.NanColor, source, "NanColor"); err != nil {
			return nil, err
		}
		if spec.Above, err = triple(jm.AboveColor, source, "AboveColor"); err != nil {
			return nil, err
		}
		if spec.Below, err = triple(jm.BelowColor, source, "BelowColor"); err != nil {
			return nil, err
		}
		c, err := New(spec)
		if err != nil {
			return nil, err
		}
		if err := set.add(c); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func triple(v []float64, source, field string) (*[3]float64, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: %s needs 3 components, got %d", source, field, len(v))
	}
	return &[3]float64{v[0], v[1], v[2]}, nil
}

// MarshalJSON writes c back in the export format ParseJSON reads.
func (c *CTF) MarshalJSON() ([]byte, error) {
	s := c.spec
	space := s.Interpolation.String()
	jm := jsonColorMap{Name: s.Name, Creator: s.Creator, ColorSpace: &space}
	if s.Scale == ScaleLog10 {
		jm.Scale = s.Scale.String()
	}
	flat := make([]float64, 0, 4*len(s.Points))
	for _, p := range s.Points {
		flat = append(flat, p.X, p.V[0], p.V[1], p.V[2])
	}
	if s.Space == PointsHSV {
		jm.HSVPoints = flat
	} else {
		jm.RGBPoints = flat
	}
	for _, f := range []struct {
		src *[3]float64
		dst *[]float64
	}{{s.NaN, &jm.NanColor}, {s.Above, &jm.AboveColor}, {s.Below, &jm.BelowColor}} {
		if f.src != nil {
			*f.dst = f.src[:]
		}
	}
	return json.Marshal(jm)
}
