package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

func pts(xy ...float64) Polyline {
	out := make(Polyline, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestBorderLines(t *testing.T) {
	tests := []struct {
		style BorderStyle
		want  []Polyline
	}{
		{BorderTop, []Polyline{pts(1, 1, 0, 1)}},
		{BorderLeft, []Polyline{pts(0, 1, 0, 0)}},
		{BorderBottom, []Polyline{pts(0, 0, 1, 0)}},
		{BorderRight, []Polyline{pts(1, 0, 1, 1)}},
		{BorderLeftBottom, []Polyline{pts(0, 1, 0, 0, 1, 0)}},
		{BorderBottomRight, []Polyline{pts(0, 0, 1, 0, 1, 1)}},
		{BorderRightTop, []Polyline{pts(1, 0, 1, 1, 0, 1)}},
		{BorderRightTopLeft, []Polyline{pts(1, 0, 1, 1, 0, 1, 0, 0)}},
		{BorderTopLeft, []Polyline{pts(1, 1, 0, 1, 0, 0)}},
		{BorderTopLeftBottom, []Polyline{pts(1, 1, 0, 1, 0, 0, 1, 0)}},
		{BorderTopLeftBottomRight, []Polyline{pts(1, 1, 0, 1, 0, 0, 1, 0, 1, 1)}},
		{BorderTopBottom, []Polyline{pts(1, 1, 0, 1), pts(0, 0, 1, 0)}},
		{BorderLeftRight, []Polyline{pts(0, 1, 0, 0), pts(1, 0, 1, 1)}},
	}

	if len(tests) != len(BorderStyles()) {
		t.Fatalf("table covers %d styles, want %d", len(tests), len(BorderStyles()))
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			got, err := BorderLines(tt.style)
			if err != nil {
				t.Fatalf("BorderLines() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BorderLines(%v) = %v, want %v", tt.style, got, tt.want)
			}
		})
	}
}

func TestBorderLinesInUnitSquare(t *testing.T) {
	for _, s := range BorderStyles() {
		lines, err := BorderLines(s)
		if err != nil {
			t.Fatal(err)
		}
		for _, l := range lines {
			if len(l) < 2 {
				t.Errorf("%v: polyline with %d points", s, len(l))
			}
			for _, p := range l {
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					t.Errorf("%v: point %v outside unit square", s, p)
				}
			}
		}
	}
}

func TestBorderLinesUnknownStyle(t *testing.T) {
	for _, s := range []BorderStyle{-1, 13, 99} {
		if _, err := BorderLines(s); !errors.Is(err, errors.ErrCodeUnknownStyle) {
			t.Errorf("BorderLines(%d) error = %v, want UNKNOWN_STYLE", int(s), err)
		}
	}
}

func TestBorderStyleEnumOrder(t *testing.T) {
	if BorderTop != 0 || BorderLeftRight != 12 {
		t.Errorf("enum order changed: top=%d left_right=%d", BorderTop, BorderLeftRight)
	}
	if BorderTopLeft != 8 || BorderTopLeftBottomRight != 10 {
		t.Errorf("enum order changed: tl=%d tlbr=%d", BorderTopLeft, BorderTopLeftBottomRight)
	}
}

func TestParseBorderStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    BorderStyle
		wantErr bool
	}{
		{"TL", BorderTopLeft, false},
		{"tlbr", BorderTopLeftBottomRight, false},
		{"right_top_left", BorderRightTopLeft, false},
		{"top-left-bottom", BorderTopLeftBottom, false},
		{"LR", BorderLeftRight, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBorderStyle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBorderStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBorderStyle(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBorderStyleText(t *testing.T) {
	for _, s := range BorderStyles() {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back BorderStyle
		if err := back.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if back != s {
			t.Errorf("text round trip %v -> %s -> %v", s, b, back)
		}
	}
	if _, err := BorderStyle(42).MarshalText(); err == nil {
		t.Error("MarshalText of unknown style should fail")
	}
}
