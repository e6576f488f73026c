package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Format is an output file format.
type Format int

const (
	PNG Format = iota
	JPEG
	SVG
	DOT
	JSON
)

var formatNames = [...]string{"png", "jpeg", "svg", "dot", "json"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// MIME returns the content type served for f.
func (f Format) MIME() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	case DOT:
		return "text/vnd.graphviz"
	case JSON:
		return "application/json"
	}
	return "image/png"
}

// Raster reports whether f is a bitmap format.
func (f Format) Raster() bool { return f == PNG || f == JPEG }

// Formats returns every format in declaration order.
func Formats() []Format { return []Format{PNG, JPEG, SVG, DOT, JSON} }

// ParseFormat accepts a format name or file extension, case-insensitively.
// "jpg" is an alias for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	case "dot", "gv":
		return DOT, nil
	case "json":
		return JSON, nil
	}
	return PNG, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", s)
}

// FormatOf derives the format from a file name.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, errors.New(errors.ErrCodeInvalidFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}
