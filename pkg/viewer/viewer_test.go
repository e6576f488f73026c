package viewer

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
	"github.com/matzehuels/viewgrid/pkg/source"
)

// flatPainter fills the frame with one color and counts calls.
type flatPainter struct {
	calls int
	fill  color.RGBA
}

func (p *flatPainter) Paint(w *compose.Window) (*image.RGBA, error) {
	p.calls++
	img := image.NewRGBA(image.Rect(0, 0, w.Width, w.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p.fill.R, p.fill.G, p.fill.B, 255
	}
	return img, nil
}

func testWindow(t *testing.T, n int, share bool) (*compose.Window, *flatPainter) {
	t.Helper()
	cells := make([]*scene.Cell, n)
	for i := range cells {
		m, err := source.Platonic(source.Cube)
		if err != nil {
			t.Fatal(err)
		}
		cells[i] = scene.NewCell().AddActor(scene.NewActor("cube", m)).SetTitle(source.Solids()[i%5].String())
	}
	p := &flatPainter{fill: color.RGBA{R: 200, G: 10, B: 10, A: 255}}
	w, err := compose.Compose(cells, n, 1, 40, share, compose.WithPainter(p), compose.WithName("test"))
	if err != nil {
		t.Fatal(err)
	}
	return w, p
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"term", KindTerm, false},
		{" Remote ", KindRemote, false},
		{"desktop", KindDesktop, false},
		{"none", KindNone, false},
		{"x11", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeUnsupported) {
				t.Errorf("code = %s, want UNSUPPORTED", errors.GetCode(err))
			}
		})
	}
}

func TestNewInteractors(t *testing.T) {
	for _, k := range []Kind{KindTerm, KindRemote, KindNone} {
		it, err := New(k)
		if err != nil {
			t.Fatalf("New(%s) error = %v", k, err)
		}
		if it == nil {
			t.Fatalf("New(%s) = nil", k)
		}
	}
	if _, err := New("bogus"); err == nil {
		t.Error("New(bogus) error = nil")
	}
}

func TestNoneStartsAndCloses(t *testing.T) {
	w, p := testWindow(t, 2, false)
	ran := false
	w.Post(func() { ran = true })
	if err := w.Start(context.Background(), None{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !ran {
		t.Error("posted work did not run")
	}
	if p.calls != 1 {
		t.Errorf("paint calls = %d, want 1", p.calls)
	}
	if w.State() != compose.Closed {
		t.Errorf("state = %s, want Closed", w.State())
	}
}

func TestControls(t *testing.T) {
	w, _ := testWindow(t, 2, false)
	if err := w.Render(); err != nil {
		t.Fatal(err)
	}
	c := NewControls()
	first := c.Active(w)
	if first != w.ContentRenderers()[0] {
		t.Fatal("first renderer is not active")
	}

	if !c.Handle(w, KeyLeft) {
		t.Error("Left did not change the view")
	}
	if got := first.Camera.Record.Azimuth; got != -10 {
		t.Errorf("azimuth = %v, want -10", got)
	}
	c.Handle(w, "+")
	if got := first.Camera.Record.Zoom; got < 1.09 || got > 1.11 {
		t.Errorf("zoom = %v, want 1.1", got)
	}
	if c.Handle(w, "x") {
		t.Error("unbound key reported a change")
	}

	c.Handle(w, KeyTab)
	second := c.Active(w)
	if second == first {
		t.Fatal("Tab did not move to the next view")
	}
	c.Handle(w, KeyUp)
	if second.Camera.Record.Elevation != 10 || first.Camera.Record.Elevation != 0 {
		t.Errorf("elevation = %v/%v, want only the active view to move",
			first.Camera.Record.Elevation, second.Camera.Record.Elevation)
	}

	c.Handle(w, KeyTab)
	if c.Active(w) != first {
		t.Error("Tab did not wrap around")
	}
	c.Handle(w, "r")
	if first.Camera.Record.Azimuth != 0 {
		t.Errorf("azimuth after reset = %v, want 0", first.Camera.Record.Azimuth)
	}
}

func TestControlsSharedCamera(t *testing.T) {
	w, _ := testWindow(t, 3, true)
	c := NewControls()
	c.Handle(w, KeyTab)
	c.Handle(w, KeyRight)
	for i, r := range w.ContentRenderers() {
		if r.Camera.Record.Azimuth != 10 {
			t.Errorf("view %d azimuth = %v, want 10", i, r.Camera.Record.Azimuth)
		}
	}
}

func TestPress(t *testing.T) {
	w, p := testWindow(t, 1, false)
	if err := w.Render(); err != nil {
		t.Fatal(err)
	}
	var keys []string
	w.AddObserver(compose.KeyPress, func(ev compose.Event) { keys = append(keys, ev.Key) })

	c := NewControls()
	for _, k := range []string{KeyLeft, SnapshotKey, "z"} {
		if err := press(w, c, k); err != nil {
			t.Fatalf("press(%q) error = %v", k, err)
		}
	}
	if len(keys) != 3 {
		t.Errorf("observed %d keys, want 3", len(keys))
	}
	// Initial render plus Left and z; the snapshot key does not repaint.
	if p.calls != 3 {
		t.Errorf("paint calls = %d, want 3", p.calls)
	}

	w.Close()
	if err := press(w, c, KeyLeft); err != nil {
		t.Errorf("press on closed window error = %v", err)
	}
}
