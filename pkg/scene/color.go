package scene

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Color is an RGB color with components in [0, 1].
type Color = colorful.Color

// RGB builds a Color from components in [0, 1].
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// RGB255 builds a Color from 8-bit components.
func RGB255(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var namedHex = map[string]string{
	"aliceblue":            "#f0f8ff",
	"azure":                "#f0ffff",
	"banana":               "#e3cf57",
	"bisque":               "#ffe4c4",
	"bkgcolor":             "#1a3366",
	"black":                "#000000",
	"blue":                 "#0000ff",
	"chartreuse":           "#7fff00",
	"coral":                "#ff7f50",
	"cornflowerblue":       "#6495ed",
	"crimson":              "#dc143c",
	"cyan":                 "#00ffff",
	"darkgreen":            "#006400",
	"darkolivegreen":       "#556b2f",
	"darkslategray":        "#2f4f4f",
	"dimgray":              "#696969",
	"gainsboro":            "#dcdcdc",
	"gold":                 "#ffd700",
	"green":                "#008000",
	"greenyellow":          "#adff2f",
	"honeydew":             "#f0fff0",
	"khaki":                "#f0e68c",
	"lavender":             "#e6e6fa",
	"lavenderblush":        "#fff0f5",
	"lightgoldenrodyellow": "#fafad2",
	"lightsteelblue":       "#b0c4de",
	"magenta":              "#ff00ff",
	"midnightblue":         "#191970",
	"mistyrose":            "#ffe4e1",
	"navajowhite":          "#ffdead",
	"orange":               "#ffa500",
	"papayawhip":           "#ffefd5",
	"paraviewbkg":          "#52576e",
	"peachpuff":            "#ffdab9",
	"peru":                 "#cd853f",
	"red":                  "#ff0000",
	"royalblue":            "#4169e1",
	"salmon":               "#fa8072",
	"seashell":             "#fff5ee",
	"silver":               "#c0c0c0",
	"slategray":            "#708090",
	"steelblue":            "#4682b4",
	"tan":                  "#d2b48c",
	"thistle":              "#d8bfd8",
	"tomato":               "#ff6347",
	"wheat":                "#f5deb3",
	"white":                "#ffffff",
	"yellow":               "#ffff00",
}

// Named returns the palette color called name, ignoring case.
func Named(name string) (Color, bool) {
	hex, ok := namedHex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// MustNamed is Named for compile-time constants; it panics on unknown names.
func MustNamed(name string) Color {
	c, ok := Named(name)
	if !ok {
		panic("scene: unknown color " + name)
	}
	return c
}

// ColorNames returns the palette names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(namedHex))
	for n := range namedHex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts a palette name, a "#rrggbb" hex string, or a
// comma-separated "r,g,b" triple with components in [0, 1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Named(s); ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "color %q", s)
		}
		return c, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) == 3 {
		var v [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || f < 0 || f > 1 {
				return Color{}, errors.New(errors.ErrCodeInvalidScene, "color %q: component %q must be in [0, 1]", s, p)
			}
			v[i] = f
		}
		return RGB(v[0], v[1], v[2]), nil
	}
	return Color{}, errors.New(errors.ErrCodeInvalidScene, "unknown color %q", s)
}
