// Package fonts provides the embedded Go fonts used for titles, scalar bar
// labels and SVG output.
//
// Fonts come from golang.org/x/image/font/gofont and are compiled into the
// binary, so rendering never depends on fonts installed on the host. Parsed
// sources are cached after first use.
package fonts

import (
	"encoding/base64"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is a generic font family.
type Family int

const (
	Sans Family = iota
	Mono
)

// ParseFamily maps a family name to Sans or Mono. Courier and other
// monospace names map to Mono; everything else, including Arial and Times,
// maps to Sans.
func ParseFamily(name string) Family {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "courier", "courier new", "mono", "monospace", "go mono":
		return Mono
	}
	return Sans
}

// Name is the family name of the embedded face.
func (f Family) Name() string {
	if f == Mono {
		return "Go Mono"
	}
	return "Go"
}

// CSSFamily is the font-family value written to SVG output.
func (f Family) CSSFamily() string {
	if f == Mono {
		return `'Go Mono', 'Courier New', Courier, monospace`
	}
	return `'Go', Arial, Helvetica, sans-serif`
}

type key struct {
	family       Family
	bold, italic bool
}

var ttf = map[key][]byte{
	{Sans, false, false}: goregular.TTF,
	{Sans, true, false}:  gobold.TTF,
	{Sans, false, true}:  goitalic.TTF,
	{Sans, true, true}:   gobolditalic.TTF,
	{Mono, false, false}: gomono.TTF,
	{Mono, true, false}:  gomonobold.TTF,
	{Mono, false, true}:  gomonoitalic.TTF,
	{Mono, true, true}:   gomonobolditalic.TTF,
}

var (
	mu      sync.Mutex
	sources = map[key]*text.FontSource{}
)

// TTF returns the raw font data for a family and style.
func TTF(f Family, bold, italic bool) []byte {
	return ttf[key{f, bold, italic}]
}

// Source returns the parsed font source for a family and style.
func Source(f Family, bold, italic bool) (*text.FontSource, error) {
	k := key{f, bold, italic}
	mu.Lock()
	defer mu.Unlock()
	if s, ok := sources[k]; ok {
		return s, nil
	}
	s, err := text.NewFontSource(ttf[k])
	if err != nil {
		return nil, err
	}
	sources[k] = s
	return s, nil
}

// Face returns a face of the given size in points.
func Face(f Family, bold, italic bool, size float64) (text.Face, error) {
	s, err := Source(f, bold, italic)
	if err != nil {
		return nil, err
	}
	return s.Face(size), nil
}

var (
	b64Mu sync.Mutex
	b64   = map[key]string{}
)

// Base64 returns the font data base64 encoded for embedding in SVG
// @font-face rules. The result is cached after first computation.
func Base64(f Family, bold, italic bool) string {
	k := key{f, bold, italic}
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[k]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(ttf[k])
	b64[k] = s
	return s
}
