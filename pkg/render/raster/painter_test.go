package raster

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

func box() *scene.Mesh {
	m := &scene.Mesh{}
	for _, p := range scene.NewBounds(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5}).Corners() {
		m.AddPoint(p)
	}
	for _, f := range [][]int{{0, 2, 3, 1}, {4, 5, 7, 6}, {0, 1, 5, 4}, {2, 6, 7, 3}, {1, 3, 7, 5}, {0, 4, 6, 2}} {
		m.AddPolygon(f, 0)
	}
	return m
}

func near(img *image.RGBA, x, y int, want scene.Color) bool {
	c := img.RGBAAt(x, y)
	r, g, b := want.RGB255()
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c.R, r) <= 3 && d(c.G, g) <= 3 && d(c.B, b) <= 3
}

func paint(t *testing.T, cells []*scene.Cell, cols, rows, size int, opts ...compose.Option) *image.RGBA {
	t.Helper()
	opts = append(opts, compose.WithPainter(New()))
	w, err := compose.Compose(cells, cols, rows, size, false, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := w.Frame()
	if img.Bounds().Dx() != w.Width || img.Bounds().Dy() != w.Height {
		t.Fatalf("frame %v, want %dx%d", img.Bounds(), w.Width, w.Height)
	}
	return img
}

func TestPaintBackgrounds(t *testing.T) {
	red, blue := scene.RGB(1, 0, 0), scene.RGB(0, 0, 1)
	cells := []*scene.Cell{scene.NewCell().SetBackground(red), scene.NewCell().SetBackground(blue)}
	img := paint(t, cells, 3, 1, 40, compose.WithFillerBackground(scene.MustNamed("SlateGray")))

	tests := []struct {
		name string
		x, y int
		want scene.Color
	}{
		{"first cell", 20, 20, red},
		{"second cell", 60, 20, blue},
		{"filler", 100, 20, scene.MustNamed("SlateGray")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(img, tt.x, tt.y, tt.want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, img.RGBAAt(tt.x, tt.y), tt.want.Hex())
			}
		})
	}
}

func TestPaintBorders(t *testing.T) {
	yellow := scene.MustNamed("Yellow")
	cells := []*scene.Cell{scene.NewCell(), scene.NewCell()}
	img := paint(t, cells, 2, 1, 50, compose.WithBorderColor(yellow), compose.WithBorderWidth(4))

	for _, pt := range [][2]int{{0, 25}, {99, 25}, {25, 0}, {75, 99}, {50, 25}} {
		if !near(img, pt[0], pt[1], yellow) {
			t.Errorf("border pixel %v = %v, want yellow", pt, img.RGBAAt(pt[0], pt[1]))
		}
	}
	if near(img, 25, 25, yellow) {
		t.Error("cell interior painted with the border color")
	}
}

func TestPaintActor(t *testing.T) {
	bg := scene.RGB(0, 0, 0)
	a := scene.NewActor("box", box())
	a.Color = scene.RGB(1, 0.5, 0)
	cell := scene.NewCell().AddActor(a).SetBackground(bg)
	img := paint(t, []*scene.Cell{cell}, 1, 1, 64)
	if near(img, 32, 32, bg) {
		t.Error("actor not drawn at the viewport center")
	}
	if c := img.RGBAAt(32, 32); c.R <= c.B {
		t.Errorf("center pixel %v does not carry the actor color", c)
	}
	if !near(img, 4, 4, bg) {
		t.Errorf("corner pixel %v, want background", img.RGBAAt(4, 4))
	}
}

func TestPaintSharedCameraClipsEachView(t *testing.T) {
	bg := scene.RGB(0, 0, 0)
	front := scene.NewActor("front", box())
	back := scene.NewActor("back", box())
	back.Position = mgl64.Vec3{0, 0, -40}
	for _, a := range []*scene.Actor{front, back} {
		a.Color = scene.RGB(1, 0, 0)
	}
	cells := []*scene.Cell{
		scene.NewCell().AddActor(front).SetBackground(bg),
		scene.NewCell().AddActor(back).SetBackground(bg),
	}
	w, err := compose.Compose(cells, 2, 1, 200, true, compose.WithPainter(New()))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Render(); err != nil {
		t.Fatal(err)
	}
	img := w.Frame()

	tests := []struct {
		name   string
		x0, x1 int
	}{
		{"front view", 0, 200},
		{"back view", 200, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawn := 0
			for y := 10; y < 190; y++ {
				for x := tt.x0 + 10; x < tt.x1-10; x++ {
					if !near(img, x, y, bg) {
						drawn++
					}
				}
			}
			if drawn == 0 {
				t.Error("actor clipped away")
			}
		})
	}
}

func TestPaintHiddenActor(t *testing.T) {
	a := scene.NewActor("box", box())
	a.Hidden = true
	img := paint(t, []*scene.Cell{scene.NewCell().AddActor(a)}, 1, 1, 32)
	if !near(img, 16, 16, scene.RGB(0, 0, 0)) {
		t.Errorf("hidden actor drawn: %v", img.RGBAAt(16, 16))
	}
}

func TestPaintTitle(t *testing.T) {
	bg := scene.RGB(0, 0, 0)
	cell := scene.NewCell().SetBackground(bg).SetTitle("Icosahedron")
	img := paint(t, []*scene.Cell{cell}, 1, 1, 200)

	// The title box sits at the bottom of the cell.
	lit := 0
	for y := 180; y < 198; y++ {
		for x := 10; x < 190; x++ {
			if !near(img, x, y, bg) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no title pixels drawn")
	}
}

func TestPaintEmptyWindow(t *testing.T) {
	_, err := New().Paint(&compose.Window{Name: "empty"})
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("Paint() = %v, want INVALID_LAYOUT", err)
	}
}

func TestPaintLayers(t *testing.T) {
	yellow := scene.MustNamed("Yellow")
	w, err := compose.Compose([]*scene.Cell{scene.NewCell()}, 1, 1, 40, false,
		compose.WithBorderColor(yellow), compose.WithBorderWidth(4))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		layers Layer
		border bool
	}{
		{"all", AllLayers, true},
		{"scene only", LayerScene, false},
		{"borders only", LayerBorders, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(WithLayers(tt.layers)).Paint(w)
			if err != nil {
				t.Fatal(err)
			}
			if got := near(img, 0, 20, yellow); got != tt.border {
				t.Errorf("border drawn = %v, want %v", got, tt.border)
			}
		})
	}
}
