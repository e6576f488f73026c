package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
)

// SceneFile is the declarative description of a window read from TOML or
// YAML. Grid fields left at zero are filled from Options or chosen by
// layout.GridFor.
type SceneFile struct {
	Name        string `toml:"name" yaml:"name"`
	Rows        int    `toml:"rows" yaml:"rows"`
	Cols        int    `toml:"cols" yaml:"cols"`
	Size        int    `toml:"size" yaml:"size"`
	ShareCamera bool   `toml:"share_camera" yaml:"share_camera"`

	Background       string  `toml:"background" yaml:"background"`
	FillerBackground string  `toml:"filler_background" yaml:"filler_background"`
	BorderColor      string  `toml:"border_color" yaml:"border_color"`
	BorderWidth      float64 `toml:"border_width" yaml:"border_width"`

	Text     TextSpec      `toml:"text" yaml:"text"`
	Colormap *ColormapSpec `toml:"colormap" yaml:"colormap"`
	Cells    []CellSpec    `toml:"cell" yaml:"cells"`

	// dir resolves relative colormap paths.
	dir string
}

// TextSpec styles the cell titles. Justification also selects the
// whole-grid title layout.
type TextSpec struct {
	Family   string           `toml:"family" yaml:"family"`
	Size     int              `toml:"size" yaml:"size"`
	Bold     bool             `toml:"bold" yaml:"bold"`
	Italic   bool             `toml:"italic" yaml:"italic"`
	Shadow   bool             `toml:"shadow" yaml:"shadow"`
	Color    string           `toml:"color" yaml:"color"`
	Justify  *layout.HJustify `toml:"justify" yaml:"justify"`
	VJustify *layout.VJustify `toml:"vjustify" yaml:"vjustify"`
}

// ColormapSpec selects a color transfer function from a JSON or XML file.
type ColormapSpec struct {
	File       string `toml:"file" yaml:"file"`
	Name       string `toml:"name" yaml:"name"`
	Discretize bool   `toml:"discretize" yaml:"discretize"`
	TableSize  int    `toml:"table_size" yaml:"table_size"`
}

// CameraSpec places and nudges a cell camera. Angles are in degrees.
type CameraSpec struct {
	Position   *[3]float64 `toml:"position" yaml:"position"`
	FocalPoint *[3]float64 `toml:"focal_point" yaml:"focal_point"`
	ViewUp     *[3]float64 `toml:"view_up" yaml:"view_up"`
	Azimuth    float64     `toml:"azimuth" yaml:"azimuth"`
	Elevation  float64     `toml:"elevation" yaml:"elevation"`
	Zoom       float64     `toml:"zoom" yaml:"zoom"`
	Dolly      float64     `toml:"dolly" yaml:"dolly"`
}

// CellSpec describes one grid cell. Exactly one of Solid, Shape and
// Surface names its geometry; a cell with none is empty.
type CellSpec struct {
	Title      string `toml:"title" yaml:"title"`
	Background string `toml:"background" yaml:"background"`

	Solid      string `toml:"solid" yaml:"solid"`
	Shape      string `toml:"shape" yaml:"shape"`
	Surface    string `toml:"surface" yaml:"surface"`
	Resolution int    `toml:"resolution" yaml:"resolution"`

	Color     string   `toml:"color" yaml:"color"`
	Backface  string   `toml:"backface" yaml:"backface"`
	Opacity   *float64 `toml:"opacity" yaml:"opacity"`
	Wireframe bool     `toml:"wireframe" yaml:"wireframe"`

	// FaceColors colors faces by their cell scalar.
	FaceColors []string `toml:"face_colors" yaml:"face_colors"`

	// Elevation colors points by height through the scene colormap.
	Elevation bool `toml:"elevation" yaml:"elevation"`

	Camera    CameraSpec   `toml:"camera" yaml:"camera"`
	Viewport  *layout.Rect `toml:"viewport" yaml:"viewport"`
	Marker    string       `toml:"marker" yaml:"marker"`
	ScalarBar string       `toml:"scalar_bar" yaml:"scalar_bar"`
}

// SceneFormat is the syntax of a scene file.
type SceneFormat string

const (
	SceneTOML SceneFormat = "toml"
	SceneYAML SceneFormat = "yaml"
)

// SceneFormatOf picks the syntax from a file extension.
func SceneFormatOf(path string) (SceneFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SceneTOML, nil
	case ".yaml", ".yml":
		return SceneYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s: scene files must be .toml, .yaml or .yml", path)
}

// DecodeScene parses a scene file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func DecodeScene(data []byte, format SceneFormat) (*SceneFile, error) {
	var sf SceneFile
	switch format {
	case SceneTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&sf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String())
		}
	case SceneYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return &sf, nil
}

// ReadScene loads and decodes the scene file at path. It also returns the
// raw bytes, which key the artifact cache.
func ReadScene(path string) (*SceneFile, []byte, error) {
	format, err := SceneFormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	if err := errors.RequireFile(path); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeMissingFile, err, "read %s", path)
	}
	sf, err := DecodeScene(data, format)
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	sf.dir = filepath.Dir(path)
	return sf, data, nil
}

// Validate checks the fields that do not need geometry.
func (sf *SceneFile) Validate() error {
	if sf.Rows < 0 || sf.Cols < 0 || sf.Size < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "rows, cols and size must not be negative")
	}
	if sf.Rows > 0 && sf.Cols > 0 && len(sf.Cells) > sf.Rows*sf.Cols {
		return errors.New(errors.ErrCodeInvalidLayout, "%d cells do not fit a %dx%d grid", len(sf.Cells), sf.Rows, sf.Cols)
	}
	for i, c := range sf.Cells {
		n := 0
		for _, s := range []string{c.Solid, c.Shape, c.Surface} {
			if s != "" {
				n++
			}
		}
		if n > 1 {
			return errors.New(errors.ErrCodeInvalidScene, "cell %d names more than one of solid, shape and surface", i)
		}
		if c.Viewport != nil && !c.Viewport.Valid() {
			return errors.New(errors.ErrCodeInvalidRange, "cell %d viewport %v is empty or outside the unit square", i, *c.Viewport)
		}
		if (c.Elevation || c.ScalarBar != "") && sf.Colormap == nil {
			return errors.New(errors.ErrCodeInvalidScene, "cell %d uses scalars but the scene has no colormap", i)
		}
	}
	return nil
}
