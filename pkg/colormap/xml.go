package colormap

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

type xmlColorMap struct {
	Name        string     `xml:"name,attr,omitempty"`
	Space       string     `xml:"space,attr,omitempty"`
	InterpSpace string     `xml:"interpolationspace,attr,omitempty"`
	InterpType  string     `xml:"interpolationtype,attr,omitempty"`
	Creator     string     `xml:"creator,attr,omitempty"`
	Points      []xmlPoint `xml:"Point"`
	NaN         *xmlPoint  `xml:"NaN"`
	Above       *xmlPoint  `xml:"Above"`
	Below       *xmlPoint  `xml:"Below"`
}

// xmlPoint keeps attributes as text; some exports leave "o" empty.
type xmlPoint struct {
	X string `xml:"x,attr,omitempty"`
	R string `xml:"r,attr,omitempty"`
	G string `xml:"g,attr,omitempty"`
	B string `xml:"b,attr,omitempty"`
	O string `xml:"o,attr,omitempty"`
}

// ParseXML reads every <ColorMap> element in r, at any depth.
func ParseXML(r io.Reader, source string) (*Set, error) {
	dec := xml.NewDecoder(r)
	set := newSet(source)
	found := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColorMap, err, "%s: decode XML", source)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "ColorMap" {
			continue
		}
		found = true
		var xm xmlColorMap
		if err := dec.DecodeElement(&xm, &start); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColorMap, err, "%s: decode ColorMap", source)
		}
		c, err := xm.ctf(source)
		if err != nil {
			return nil, err
		}
		if err := set.add(c); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: no ColorMap element found", source)
	}
	return set, nil
}

func (xm *xmlColorMap) ctf(source string) (*CTF, error) {
	spec := Spec{Name: xm.Name, Creator: xm.Creator, Source: source}
	interp := xm.InterpSpace
	switch strings.ToLower(xm.Space) {
	case "hsv":
		spec.Space = PointsHSV
	case "rgb", "":
	default:
		// a non rgb/hsv space names the interpolation; points are RGB
		interp = xm.Space
	}
	spec.Interpolation = ParseInterpolation(interp)
	spec.Scale = ParseScale(xm.InterpType)

	opacities := 0
	for i, p := range xm.Points {
		v, err := p.values(source, i)
		if err != nil {
			return nil, err
		}
		pt := Point{X: v[0], V: [3]float64{v[1], v[2], v[3]}, Opacity: 1}
		if strings.TrimSpace(p.O) != "" {
			o, err := strconv.ParseFloat(strings.TrimSpace(p.O), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidColorMap, err, "%s: point %d opacity", source, i)
			}
			pt.Opacity = o
			opacities++
		}
		spec.Points = append(spec.Points, pt)
	}
	if opacities > 0 && opacities != len(spec.Points) {
		return nil, errors.New(errors.ErrCodeInvalidColorMap,
			"%s: %s: the opacity values length must be the same as colors", source, spec.label())
	}
	spec.HasOpacity = opacities > 0

	for _, f := range []struct {
		src  *xmlPoint
		dst  **[3]float64
		name string
	}{{xm.NaN, &spec.NaN, "NaN"}, {xm.Above, &spec.Above, "Above"}, {xm.Below, &spec.Below, "Below"}} {
		if f.src == nil {
			continue
		}
		rgb, err := parseFloats(source, f.name, f.src.R, f.src.G, f.src.B)
		if err != nil {
			return nil, err
		}
		*f.dst = &[3]float64{rgb[0], rgb[1], rgb[2]}
	}
	return New(spec)
}

func (p xmlPoint) values(source string, i int) ([]float64, error) {
	return parseFloats(source, "point "+strconv.Itoa(i), p.X, p.R, p.G, p.B)
}

func parseFloats(source, what string, vals ...string) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, s := range vals {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColorMap, err, "%s: %s", source, what)
		}
		out[i] = f
	}
	return out, nil
}

// WriteXML writes c as a single <ColorMap> document.
func WriteXML(w io.Writer, c *CTF) error {
	s := c.spec
	xm := xmlColorMap{
		Name:        s.Name,
		Space:       strings.ToLower(s.Space.String()),
		InterpSpace: s.Interpolation.String(),
		Creator:     s.Creator,
	}
	if s.Scale == ScaleLog10 {
		xm.InterpType = s.Scale.String()
	}
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	for _, p := range s.Points {
		xp := xmlPoint{X: ff(p.X), R: ff(p.V[0]), G: ff(p.V[1]), B: ff(p.V[2])}
		if s.HasOpacity {
			xp.O = ff(p.Opacity)
		}
		xm.Points = append(xm.Points, xp)
	}
	for _, f := range []struct {
		src *[3]float64
		dst **xmlPoint
	}{{s.NaN, &xm.NaN}, {s.Above, &xm.Above}, {s.Below, &xm.Below}} {
		if f.src != nil {
			*f.dst = &xmlPoint{R: ff(f.src[0]), G: ff(f.src[1]), B: ff(f.src[2])}
		}
	}
	doc := struct {
		XMLName xml.Name    `xml:"ColorMaps"`
		Map     xmlColorMap `xml:"ColorMap"`
	}{Map: xm}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
