package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/viewgrid/pkg/cache"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

func TestSceneFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    SceneFormat
		wantErr bool
	}{
		{"grid.toml", SceneTOML, false},
		{"grid.YAML", SceneYAML, false},
		{"dir/grid.yml", SceneYAML, false},
		{"grid.json", "", true},
		{"grid", "", true},
	}
	for _, tt := range tests {
		got, err := SceneFormatOf(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("SceneFormatOf(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestDecodeSceneFormatsAgree(t *testing.T) {
	tomlData := []byte(`
rows = 1
cols = 2
[text]
justify = "left"
[[cell]]
title = "A"
shape = "Sphere"
camera = { zoom = 0.8 }
`)
	yamlData := []byte(`
rows: 1
cols: 2
text:
  justify: left
cells:
  - title: A
    shape: Sphere
    camera: {zoom: 0.8}
`)
	a, err := DecodeScene(tomlData, SceneTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	b, err := DecodeScene(yamlData, SceneYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	for _, sf := range []*SceneFile{a, b} {
		if sf.Rows != 1 || sf.Cols != 2 || len(sf.Cells) != 1 {
			t.Errorf("grid = %dx%d with %d cells", sf.Rows, sf.Cols, len(sf.Cells))
			continue
		}
		if sf.Cells[0].Shape != "Sphere" || sf.Cells[0].Camera.Zoom != 0.8 {
			t.Errorf("cell = %+v", sf.Cells[0])
		}
		if sf.Text.Justify == nil || *sf.Text.Justify != layout.Left {
			t.Errorf("justify = %v, want left", sf.Text.Justify)
		}
	}
}

func TestDecodeSceneRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format SceneFormat
	}{
		{"toml top level", "rowz = 2", SceneTOML},
		{"toml cell", "[[cell]]\ntitel = \"x\"", SceneTOML},
		{"yaml cell", "cells:\n  - titel: x\n", SceneYAML},
		{"bad syntax", "rows = [", SceneTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScene([]byte(tt.data), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("DecodeScene() = %v, want INVALID_SCENE", err)
			}
		})
	}
}

func TestReadSceneErrors(t *testing.T) {
	if _, _, err := ReadScene("testdata/missing.toml"); !errors.Is(err, errors.ErrCodeMissingFile) {
		t.Errorf("missing file = %v, want MISSING_FILE", err)
	}
	if _, _, err := ReadScene("testdata/gray.json"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("json scene = %v, want INVALID_FORMAT", err)
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name string
		sf   SceneFile
		code errors.Code
	}{
		{"overfull grid", SceneFile{Rows: 1, Cols: 1, Cells: make([]CellSpec, 2)}, errors.ErrCodeInvalidLayout},
		{"two geometries", SceneFile{Cells: []CellSpec{{Solid: "cube", Shape: "Sphere"}}}, errors.ErrCodeInvalidScene},
		{"bad viewport", SceneFile{Cells: []CellSpec{{Viewport: &layout.Rect{XMax: 2, YMax: 1}}}}, errors.ErrCodeInvalidRange},
		{"scalars without colormap", SceneFile{Cells: []CellSpec{{Shape: "Cone", Elevation: true}}}, errors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sf.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		sf     SceneFile
		opts   Options
		rows   int
		cols   int
		size   int
		shared bool
	}{
		{"file wins", SceneFile{Rows: 2, Cols: 3, Size: 50}, Options{Rows: 4, Cols: 4, Size: 10}, 2, 3, 50, false},
		{"options fill", SceneFile{}, Options{Rows: 4, Cols: 4, ShareCamera: true}, 4, 4, DefaultSize, true},
		{"chosen", SceneFile{Cells: make([]CellSpec, 5)}, Options{}, 2, 3, DefaultSize, false},
		{"cols given", SceneFile{Cols: 2, Cells: make([]CellSpec, 5)}, Options{}, 3, 2, DefaultSize, false},
		{"empty scene", SceneFile{}, Options{}, 1, 1, DefaultSize, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.sf.plan(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if p.Rows != tt.rows || p.Cols != tt.cols || p.Size != tt.size || p.ShareCamera != tt.shared {
				t.Errorf("plan = %+v", p)
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	o := Options{Scene: "x.toml", Formats: []render.Format{render.SVG, render.PNG, render.SVG}}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 2 || o.Quality == 0 || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}

	o = Options{Scene: "x.toml"}
	if err := o.ValidateAndSetDefaults(); err != nil || len(o.Formats) != 1 || o.Formats[0] != render.PNG {
		t.Errorf("default formats = %v, %v", o.Formats, err)
	}

	bad := []Options{
		{},
		{Scene: "x.toml", Rows: -1},
		{Scene: "x.toml", Quality: 101},
		{Scene: "x.toml", Formats: []render.Format{render.Format(42)}},
	}
	for _, o := range bad {
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%+v accepted", o)
		}
	}
}

func TestCellsPlatonic(t *testing.T) {
	sf, _, err := ReadScene("testdata/platonic.toml")
	if err != nil {
		t.Fatal(err)
	}
	cells, err := sf.Cells()
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 5 {
		t.Fatalf("cells = %d, want 5", len(cells))
	}
	c := cells[0]
	if c.Title != "Tetrahedron" || c.Background != scene.MustNamed("SlateGray") {
		t.Errorf("cell 0 = %q on %v", c.Title, c.Background)
	}
	if !c.Text.Bold || !c.Text.Italic || !c.Text.Shadow || c.Text.Color != scene.MustNamed("AliceBlue") {
		t.Errorf("text = %+v", c.Text)
	}
	a := c.Actors[0]
	if a.ScalarMode != scene.ScalarsCell || a.Lookup == nil {
		t.Fatalf("face colors not wired: mode %v", a.ScalarMode)
	}
	if got := a.TriangleColors(0)[0]; got != scene.MustNamed("Red") {
		t.Errorf("first face = %v, want red", got)
	}
	if cells[1].Nudge().Azimuth != 30 {
		t.Errorf("nudge = %+v", cells[1].Nudge())
	}
	if !cells[3].Actors[0].Wireframe || cells[4].Actors[0].Color != scene.MustNamed("Tomato") {
		t.Error("material fields not applied")
	}
}

func TestCellsColormap(t *testing.T) {
	sf, _, err := ReadScene("testdata/cone.yaml")
	if err != nil {
		t.Fatal(err)
	}
	cells, err := sf.Cells()
	if err != nil {
		t.Fatal(err)
	}
	cone := cells[0]
	if cone.ScalarBar == nil || cone.ScalarBar.Lookup != cone.Actors[0].Lookup {
		t.Error("scalar bar must share the actor lookup")
	}
	if cone.Marker == nil || cone.Marker.Kind != scene.MarkerCube {
		t.Errorf("marker = %+v", cone.Marker)
	}
	if len(cone.Actors[0].Mesh.PointScalars) != len(cone.Actors[0].Mesh.Points) {
		t.Error("elevation scalars missing")
	}
	torus := cells[1].Actors[0]
	if torus.Backface == nil || *torus.Backface != scene.MustNamed("Peru") {
		t.Errorf("backface = %v", torus.Backface)
	}
	if _, ok := cells[1].Viewport(); !ok {
		t.Error("viewport not set")
	}
}

func TestCellsUnknownGeometry(t *testing.T) {
	tests := []struct {
		spec CellSpec
		code errors.Code
	}{
		{CellSpec{Surface: "Teapot"}, errors.ErrCodeUnknownSurface},
		{CellSpec{Solid: "Hexahedron"}, errors.ErrCodeUnknownSurface},
		{CellSpec{Shape: "Blob"}, errors.ErrCodeInvalidScene},
		{CellSpec{Marker: "compass"}, errors.ErrCodeInvalidScene},
		{CellSpec{Color: "not-a-color"}, errors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		sf := &SceneFile{Cells: []CellSpec{tt.spec}}
		if tt.spec.Color != "" {
			sf.Cells[0].Shape = "Sphere"
		}
		if _, err := sf.Cells(); !errors.Is(err, tt.code) {
			t.Errorf("Cells(%+v) = %v, want %s", tt.spec, err, tt.code)
		}
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(fc, nil, nil)
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Scene: "testdata/platonic.toml", Formats: []render.Format{render.PNG, render.JSON}}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Window == nil || res.Window.Width != 180 || res.Window.Height != 120 {
		t.Fatalf("window = %+v", res.Window)
	}
	if res.Window.Name != "platonic" {
		t.Errorf("name = %q", res.Window.Name)
	}
	if res.Stats.Cells != 5 || res.Stats.Renderers != 6 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.CacheInfo.Hits) != 0 || len(res.CacheInfo.Misses) != 2 {
		t.Errorf("first run cache info = %+v", res.CacheInfo)
	}
	png := res.Artifacts[render.PNG]
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.AllHit() || again.Window != nil {
		t.Errorf("second run cache info = %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[render.PNG], png) {
		t.Error("cached png differs")
	}

	opts.NoCache = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Window == nil || len(fresh.CacheInfo.Hits) != 0 {
		t.Errorf("no-cache run cache info = %+v", fresh.CacheInfo)
	}
}

func TestRunnerPartialHit(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	if _, err := r.Execute(ctx, Options{Scene: "testdata/cone.yaml", Formats: []render.Format{render.DOT}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Scene: "testdata/cone.yaml", Formats: []render.Format{render.DOT, render.SVG}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.CacheInfo.Hits) != 1 || res.CacheInfo.Hits[0] != render.DOT {
		t.Errorf("hits = %v, want [dot]", res.CacheInfo.Hits)
	}
	if !bytes.Contains(res.Artifacts[render.SVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
}

func TestRunnerCacheKeyCoversColormap(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cone.yaml", "gray.json"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sf, data, err := ReadScene(filepath.Join(dir, "cone.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	before := sceneHash(sf, data)
	inverted := `[{"ColorSpace": "RGB", "Name": "Gray", "RGBPoints": [0, 1, 1, 1, 1, 0, 0, 0]}]`
	if err := os.WriteFile(filepath.Join(dir, "gray.json"), []byte(inverted), 0o644); err != nil {
		t.Fatal(err)
	}
	if sceneHash(sf, data) == before {
		t.Error("editing the colormap did not change the scene hash")
	}
}

func TestRunnerCompose(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	w, plan, err := r.Compose(context.Background(), Options{Scene: "testdata/cone.yaml", ShareCamera: true})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Rows != 1 || plan.Cols != 2 || !plan.ShareCamera {
		t.Errorf("plan = %+v", plan)
	}
	if w.Renderers[0].Camera != w.Renderers[1].Camera {
		t.Error("cameras not shared")
	}
	if w.Frame() != nil {
		t.Error("Compose must not render")
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[[cell]]\nsurface = \"Teapot\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := r.Execute(context.Background(), Options{Scene: path})
	if !errors.Is(err, errors.ErrCodeUnknownSurface) {
		t.Errorf("Execute() = %v, want UNKNOWN_SURFACE", err)
	}
}
