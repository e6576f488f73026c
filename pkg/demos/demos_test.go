package demos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

func TestRegistry(t *testing.T) {
	want := []string{"colormap", "linked", "platonic", "shapes", "surfaces"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if d, err := Get(" Platonic "); err != nil || d.Name != "platonic" {
		t.Errorf("Get(Platonic) = %v, %v", d.Name, err)
	}
	if _, err := Get("teapot"); !errors.Is(err, errors.ErrCodeUnknownDemo) {
		t.Errorf("Get(teapot) code = %s, want UNKNOWN_DEMO", errors.GetCode(err))
	}
}

func TestDemosCompose(t *testing.T) {
	tests := []struct {
		name          string
		opts          Options
		rows, cols    int
		width, height int
		content       int
	}{
		{"platonic", Options{}, 2, 3, 900, 600, 5},
		{"shapes", Options{}, 4, 4, 1200, 1200, 16},
		{"surfaces", Options{Surface: "Boy"}, 1, 1, 1000, 1000, 1},
		{"colormap", Options{Size: 100}, 1, 1, 100, 100, 1},
		{"linked", Options{}, 2, 2, 600, 600, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			p, err := d.Build(tt.opts)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if p.Rows != tt.rows || p.Cols != tt.cols {
				t.Errorf("grid = %dx%d, want %dx%d", p.Rows, p.Cols, tt.rows, tt.cols)
			}
			w, err := p.Window()
			if err != nil {
				t.Fatalf("Window() error = %v", err)
			}
			if w.Width != tt.width || w.Height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", w.Width, w.Height, tt.width, tt.height)
			}
			if n := len(w.ContentRenderers()); n != tt.content {
				t.Errorf("content renderers = %d, want %d", n, tt.content)
			}
			if len(w.Diagnostics) != 0 {
				t.Errorf("diagnostics = %v", w.Diagnostics)
			}
		})
	}
}

func TestPlatonicFaces(t *testing.T) {
	p, err := Platonic(Options{})
	if err != nil {
		t.Fatal(err)
	}
	w, err := p.Window()
	if err != nil {
		t.Fatal(err)
	}
	var lut scene.LookupTable
	for i, r := range w.ContentRenderers() {
		a := r.Actors[0]
		if a.ScalarMode != scene.ScalarsCell {
			t.Errorf("view %d scalar mode = %v, want cell scalars", i, a.ScalarMode)
		}
		if lut == nil {
			lut = a.Lookup
		} else if a.Lookup != lut {
			t.Errorf("view %d does not share the face lookup table", i)
		}
		if r.Title != source.Solids()[i].String() {
			t.Errorf("view %d title = %q", i, r.Title)
		}
	}
	if fillers := len(w.Renderers) - len(w.ContentRenderers()); fillers != 1 {
		t.Errorf("filler renderers = %d, want 1", fillers)
	}
}

func TestSurfaces(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		p, err := Surfaces(Options{})
		if err != nil {
			t.Fatal(err)
		}
		n := len(source.SurfaceNames())
		if len(p.Cells) != n || p.Cols != 5 || p.Rows != (n+4)/5 || p.Size != 200 {
			t.Errorf("program = %d cells %dx%d @%d", len(p.Cells), p.Rows, p.Cols, p.Size)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Surfaces(Options{Surface: "Teapot"})
		if !errors.Is(err, errors.ErrCodeUnknownSurface) {
			t.Errorf("code = %s, want UNKNOWN_SURFACE", errors.GetCode(err))
		}
	})

	t.Run("slider", func(t *testing.T) {
		p, err := Surfaces(Options{Surface: "Torus", Size: 50})
		if err != nil {
			t.Fatal(err)
		}
		w, err := p.Window()
		if err != nil {
			t.Fatal(err)
		}
		r := w.ContentRenderers()[0]
		if len(r.Sliders()) != 1 {
			t.Fatalf("sliders = %d, want 1", len(r.Sliders()))
		}
		if err := w.Render(); err != nil {
			t.Fatal(err)
		}
		before := len(r.Actors[0].Mesh.Points)
		w.KeyPress(ResolutionDown)
		if got := r.Sliders()[0].Value(); got != source.DefaultResolution-4 {
			t.Errorf("slider = %v, want %d", got, source.DefaultResolution-4)
		}
		if after := len(r.Actors[0].Mesh.Points); after >= before {
			t.Errorf("points %d -> %d, want fewer after lowering resolution", before, after)
		}
	})

	t.Run("no sliders", func(t *testing.T) {
		p, err := Surfaces(Options{Surface: "Torus", NoSliders: true, Size: 50})
		if err != nil {
			t.Fatal(err)
		}
		w, err := p.Window()
		if err != nil {
			t.Fatal(err)
		}
		if n := len(w.ContentRenderers()[0].Sliders()); n != 0 {
			t.Errorf("sliders = %d, want 0", n)
		}
	})
}

func TestColormapFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	data := `[{"Name": "Ramp", "ColorSpace": "RGB", "RGBPoints": [0, 0, 0, 0, 1, 1, 1, 1]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Colormap(Options{Colormap: path, Discretize: true, TableSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	c := p.Cells[0]
	if c.Title != "Ramp" {
		t.Errorf("title = %q, want Ramp", c.Title)
	}
	if c.ScalarBar == nil || c.ScalarBar.Lookup != c.Actors[0].Lookup {
		t.Error("scalar bar does not share the actor lookup table")
	}

	if _, err := Colormap(Options{Colormap: filepath.Join(t.TempDir(), "none.json")}); err == nil {
		t.Error("missing colormap file did not fail")
	}
}

func TestLinkedSharesCamera(t *testing.T) {
	p, err := Linked(Options{})
	if err != nil {
		t.Fatal(err)
	}
	w, err := p.Window(compose.WithBorderWidth(3))
	if err != nil {
		t.Fatal(err)
	}
	rs := w.ContentRenderers()
	for _, r := range rs[1:] {
		if r.Camera != rs[0].Camera {
			t.Fatal("views do not share one camera")
		}
	}
}
