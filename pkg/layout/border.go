package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// BorderStyle selects which edges of a viewport are stroked.
type BorderStyle int

// The thirteen border styles. The grid planner only hands out TopLeft,
// RightTopLeft, TopLeftBottom and TopLeftBottomRight; the rest are for
// viewports decorated by hand.
const (
	BorderTop BorderStyle = iota
	BorderLeft
	BorderBottom
	BorderRight
	BorderLeftBottom
	BorderBottomRight
	BorderRightTop
	BorderRightTopLeft
	BorderTopLeft
	BorderTopLeftBottom
	BorderTopLeftBottomRight
	BorderTopBottom
	BorderLeftRight

	numBorderStyles
)

// Polyline is an open sequence of points in normalized viewport coordinates.
type Polyline []Point

// corners of the unit square, walked counter-clockwise from the top-right
// corner and closed back onto it.
var corners = [5]Point{
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

type borderSpec struct {
	short string
	long  string
	// paths holds one corner-index walk per polyline.
	paths [][]int
}

var borderSpecs = [numBorderStyles]borderSpec{
	BorderTop:                {"T", "top", [][]int{{0, 1}}},
	BorderLeft:               {"L", "left", [][]int{{1, 2}}},
	BorderBottom:             {"B", "bottom", [][]int{{2, 3}}},
	BorderRight:              {"R", "right", [][]int{{3, 4}}},
	BorderLeftBottom:         {"LB", "left_bottom", [][]int{{1, 2, 3}}},
	BorderBottomRight:        {"BR", "bottom_right", [][]int{{2, 3, 4}}},
	BorderRightTop:           {"RT", "right_top", [][]int{{3, 4, 1}}},
	BorderRightTopLeft:       {"RTL", "right_top_left", [][]int{{3, 4, 1, 2}}},
	BorderTopLeft:            {"TL", "top_left", [][]int{{0, 1, 2}}},
	BorderTopLeftBottom:      {"TLB", "top_left_bottom", [][]int{{0, 1, 2, 3}}},
	BorderTopLeftBottomRight: {"TLBR", "top_left_bottom_right", [][]int{{0, 1, 2, 3, 4}}},
	BorderTopBottom:          {"TB", "top_bottom", [][]int{{0, 1}, {2, 3}}},
	BorderLeftRight:          {"LR", "left_right", [][]int{{1, 2}, {3, 4}}},
}

// Valid reports whether s is one of the thirteen styles.
func (s BorderStyle) Valid() bool {
	return s >= 0 && s < numBorderStyles
}

// String returns the short edge code, e.g. "TLB".
func (s BorderStyle) String() string {
	if !s.Valid() {
		return fmt.Sprintf("BorderStyle(%d)", int(s))
	}
	return borderSpecs[s].short
}

// MarshalText implements encoding.TextMarshaler.
func (s BorderStyle) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeUnknownStyle, "border style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *BorderStyle) UnmarshalText(b []byte) error {
	v, err := ParseBorderStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseBorderStyle accepts either the short edge code ("TL", "RTL") or the
// long snake-case name ("top_left"), case-insensitively.
func ParseBorderStyle(name string) (BorderStyle, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	for s := BorderStyle(0); s < numBorderStyles; s++ {
		spec := borderSpecs[s]
		if n == strings.ToLower(spec.short) || n == spec.long {
			return s, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnknownStyle, "unknown border style %q", name)
}

// BorderStyles returns all styles in declaration order.
func BorderStyles() []BorderStyle {
	out := make([]BorderStyle, numBorderStyles)
	for i := range out {
		out[i] = BorderStyle(i)
	}
	return out
}

// BorderLines returns the polylines that draw style in normalized viewport
// coordinates. TopBottom and LeftRight yield two disjoint polylines; every
// other style yields one. Unknown styles fail with UNKNOWN_STYLE.
func BorderLines(style BorderStyle) ([]Polyline, error) {
	if !style.Valid() {
		return nil, errors.New(errors.ErrCodeUnknownStyle, "border style %d", int(style))
	}
	paths := borderSpecs[style].paths
	lines := make([]Polyline, len(paths))
	for i, path := range paths {
		line := make(Polyline, len(path))
		for j, c := range path {
			line[j] = corners[c]
		}
		lines[i] = line
	}
	return lines, nil
}
