package layout

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Defaults for title boxes.
const (
	// DefaultTextWidth is the widest a title box may be.
	DefaultTextWidth = 0.96

	// DefaultTextHeight is the default title box height.
	DefaultTextHeight = 0.1

	// MaxTextHeight is the tallest a title box may be.
	MaxTextHeight = 0.9

	textMarginX = 0.02
	textMarginY = 0.01
)

// HJustify is the horizontal justification of a title inside its viewport.
type HJustify int

// Horizontal justifications.
const (
	Left HJustify = iota
	HCentered
	Right
)

// VJustify is the vertical justification of a title inside its viewport.
type VJustify int

// Vertical justifications.
const (
	Bottom VJustify = iota
	VCentered
	Top
)

var hNames = [...]string{"left", "centered", "right"}
var vNames = [...]string{"bottom", "centered", "top"}

func (h HJustify) String() string {
	if h >= 0 && int(h) < len(hNames) {
		return hNames[h]
	}
	return fmt.Sprintf("HJustify(%d)", int(h))
}

func (v VJustify) String() string {
	if v >= 0 && int(v) < len(vNames) {
		return vNames[v]
	}
	return fmt.Sprintf("VJustify(%d)", int(v))
}

// ParseHJustify parses "left", "center"/"centered" or "right".
func ParseHJustify(s string) (HJustify, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return Left, nil
	case "center", "centered", "centre":
		return HCentered, nil
	case "right":
		return Right, nil
	}
	return Left, errors.New(errors.ErrCodeInvalidRange, "unknown horizontal justification %q", s)
}

// ParseVJustify parses "bottom", "center"/"centered" or "top".
func ParseVJustify(s string) (VJustify, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom", "":
		return Bottom, nil
	case "center", "centered", "centre":
		return VCentered, nil
	case "top":
		return Top, nil
	}
	return Bottom, errors.New(errors.ErrCodeInvalidRange, "unknown vertical justification %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (h HJustify) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HJustify) UnmarshalText(b []byte) error {
	v, err := ParseHJustify(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v VJustify) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VJustify) UnmarshalText(b []byte) error {
	p, err := ParseVJustify(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// TextBox is the placement of a title inside its owning viewport. P is the
// lower-left corner and P2 the width and height, both in normalized viewport
// coordinates. The third component is always zero.
type TextBox struct {
	P  [3]float64 `json:"p" yaml:"p"`
	P2 [3]float64 `json:"p2" yaml:"p2"`
}

// X returns the left edge.
func (b TextBox) X() float64 { return b.P[0] }

// Y returns the bottom edge.
func (b TextBox) Y() float64 { return b.P[1] }

// W returns the width.
func (b TextBox) W() float64 { return b.P2[0] }

// H returns the height.
func (b TextBox) H() float64 { return b.P2[1] }

// Rect returns the box as a Rect in viewport coordinates.
func (b TextBox) Rect() Rect {
	return Rect{XMin: b.X(), YMin: b.Y(), XMax: b.X() + b.W(), YMax: b.Y() + b.H()}
}

// TextPositions computes one box per distinct non-empty label.
//
// Box widths are proportional to label length, so the longest label spans
// maxWidth and every title renders at the same font scale. maxWidth is
// clamped to |maxWidth| <= DefaultTextWidth and height to |height| <=
// MaxTextHeight. Empty labels get no box.
//
// It fails with INVALID_RANGE when no label is non-empty or when a clamped
// size is zero.
func TextPositions(labels []string, h HJustify, v VJustify, maxWidth, height float64) (map[string]TextBox, error) {
	maxWidth = math.Min(math.Abs(maxWidth), DefaultTextWidth)
	height = math.Min(math.Abs(height), MaxTextHeight)
	if maxWidth == 0 || height == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRange, "text box size must be non-zero (width %g, height %g)", maxWidth, height)
	}

	longest := 0
	for _, l := range labels {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	if longest == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRange, "no non-empty labels to lay out")
	}

	y0 := textMarginY
	switch v {
	case Top:
		y0 = 1 - (height + textMarginY)
	case VCentered:
		y0 = 0.5 - (height/2 + textMarginY)
	}

	boxes := make(map[string]TextBox, len(labels))
	for _, l := range labels {
		n := utf8.RuneCountInString(l)
		if n == 0 {
			continue
		}
		w := math.Min(maxWidth*float64(n)/float64(longest), maxWidth)

		var x0 float64
		switch h {
		case HCentered:
			x0 = 0.5 - w/2
		case Right:
			x0 = 1 - textMarginX - w
		default:
			x0 = textMarginX
		}
		boxes[l] = TextBox{P: [3]float64{x0, y0, 0}, P2: [3]float64{w, height, 0}}
	}
	return boxes, nil
}
