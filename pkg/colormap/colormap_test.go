package colormap

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

func gray(t *testing.T) *CTF {
	t.Helper()
	c, err := New(Spec{
		Name:   "gray",
		Points: []Point{{X: 0, V: [3]float64{0, 0, 0}}, {X: 1, V: [3]float64{1, 1, 1}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestLoadFileJSON(t *testing.T) {
	set, err := LoadFile("testdata/fast.json")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("got %d colormaps, want 1 (entries without ColorSpace are skipped)", set.Len())
	}
	c, err := set.Get("")
	if err != nil {
		t.Fatal(err)
	}
	s := c.Spec()
	if s.Name != "Fast" || s.Creator != "Francesca Samsel" {
		t.Errorf("name/creator = %q/%q", s.Name, s.Creator)
	}
	if s.Interpolation != InterpLab || s.Space != PointsRGB || s.Scale != ScaleLinear {
		t.Errorf("interp/space/scale = %v/%v/%v", s.Interpolation, s.Space, s.Scale)
	}
	if c.Len() != 9 {
		t.Errorf("got %d points, want 9", c.Len())
	}
	if s.NaN == nil || *s.NaN != [3]float64{0, 1, 0} {
		t.Errorf("NaN = %v", s.NaN)
	}
	if got := c.Lookup(math.NaN()); got != scene.RGB(0, 1, 0) {
		t.Errorf("Lookup(NaN) = %v", got)
	}
}

func TestLoadFileDefaultsToJSON(t *testing.T) {
	set, err := LoadFile("testdata/fast")
	if err != nil {
		t.Fatalf("LoadFile() without extension error = %v", err)
	}
	if set.Names()[0] != "Fast" {
		t.Errorf("names = %v", set.Names())
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", "testdata/nope.json", errors.ErrCodeMissingFile},
		{"missing xml", "testdata/nope.xml", errors.ErrCodeMissingFile},
		{"empty", "", errors.ErrCodeMissingFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadFile(%q) = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestSetGet(t *testing.T) {
	set, err := LoadFile("testdata/multi.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := set.Get(""); !errors.Is(err, errors.ErrCodeInvalidColorMap) {
		t.Errorf("Get(\"\") on two maps = %v, want INVALID_COLORMAP", err)
	}
	if _, err := set.Get("Missing"); err == nil || !strings.Contains(err.Error(), "Gray, Hue") {
		t.Errorf("Get(unknown) = %v, want list of names", err)
	}
	hue, err := set.Get("Hue")
	if err != nil {
		t.Fatal(err)
	}
	if hue.Spec().Space != PointsHSV || hue.Spec().Interpolation != InterpHSV {
		t.Errorf("Hue spec = %+v", hue.Spec())
	}
	if got := hue.Lookup(2); got != scene.RGB(1, 1, 1) {
		t.Errorf("above range = %v, want white", got)
	}
	if got := hue.Lookup(-1); got != scene.RGB(0, 0, 0) {
		t.Errorf("below range = %v, want black", got)
	}
	if got := hue.Map(0); !got.AlmostEqualRgb(scene.RGB(1, 0, 0)) {
		t.Errorf("hue 0 = %v, want red", got)
	}
}

func TestParseXML(t *testing.T) {
	set, err := LoadFile("testdata/3w_gby.xml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	c, err := set.Get("3w_gby")
	if err != nil {
		t.Fatal(err)
	}
	s := c.Spec()
	if s.Interpolation != InterpLab || s.Space != PointsRGB {
		t.Errorf("space %q should become the interpolation with RGB points, got %v/%v", "Lab", s.Interpolation, s.Space)
	}
	if !s.HasOpacity || s.Points[1].Opacity != 0.25 {
		t.Errorf("opacity not read: %+v", s.Points[1])
	}
	if s.NaN == nil || *s.NaN != [3]float64{1, 0, 0} {
		t.Errorf("NaN = %v", s.NaN)
	}
}

func TestParseXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no colormap", `<Root><Other/></Root>`},
		{"partial opacity", `<M><ColorMap name="x"><Point x="0" r="0" g="0" b="0" o="1"/><Point x="1" r="1" g="1" b="1"/></ColorMap></M>`},
		{"bad number", `<M><ColorMap name="x"><Point x="zero" r="0" g="0" b="0"/></ColorMap></M>`},
		{"not increasing", `<M><ColorMap name="x"><Point x="1" r="0" g="0" b="0"/><Point x="1" r="1" g="1" b="1"/></ColorMap></M>`},
		{"duplicate name", `<M><ColorMap name="x"><Point x="0" r="0" g="0" b="0"/></ColorMap><ColorMap name="x"><Point x="0" r="1" g="1" b="1"/></ColorMap></M>`},
		{"two unnamed", `<M><ColorMap><Point x="0" r="0" g="0" b="0"/></ColorMap><ColorMap><Point x="0" r="1" g="1" b="1"/></ColorMap></M>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tt.doc), "test.xml")
			if !errors.Is(err, errors.ErrCodeInvalidColorMap) {
				t.Errorf("ParseXML() = %v, want INVALID_COLORMAP", err)
			}
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `[{`},
		{"ragged points", `[{"ColorSpace":"RGB","Name":"x","RGBPoints":[0,0,0]}]`},
		{"decreasing", `[{"ColorSpace":"RGB","Name":"x","RGBPoints":[1,0,0,0,0,1,1,1]}]`},
		{"short nan", `[{"ColorSpace":"RGB","Name":"x","RGBPoints":[0,0,0,0],"NanColor":[1]}]`},
		{"duplicate name", `[{"ColorSpace":"RGB","Name":"x","RGBPoints":[0,0,0,0]},{"ColorSpace":"RGB","Name":"x","RGBPoints":[0,1,1,1]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.doc), "test.json")
			if !errors.Is(err, errors.ErrCodeInvalidColorMap) {
				t.Errorf("ParseJSON() = %v, want INVALID_COLORMAP", err)
			}
		})
	}
}

func TestTableSize(t *testing.T) {
	set, err := LoadFile("testdata/fast.json")
	if err != nil {
		t.Fatal(err)
	}
	c, _ := set.Get("Fast")
	tests := []struct {
		size int
		want int
	}{
		{0, 9},
		{3, 9},
		{9, 9},
		{256, 256},
	}
	for _, tt := range tests {
		d, err := c.With(true, tt.size)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(d.Table()); got != tt.want || d.TableSize() != tt.want {
			t.Errorf("size %d: table has %d entries, want %d", tt.size, got, tt.want)
		}
	}
}

func TestMapRGB(t *testing.T) {
	c := gray(t)
	tests := []struct {
		x    float64
		want scene.Color
	}{
		{-1, scene.RGB(0, 0, 0)},
		{0, scene.RGB(0, 0, 0)},
		{0.5, scene.RGB(0.5, 0.5, 0.5)},
		{1, scene.RGB(1, 1, 1)},
		{3, scene.RGB(1, 1, 1)},
	}
	for _, tt := range tests {
		if got := c.Map(tt.x); !got.AlmostEqualRgb(tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestDiscretizedLookup(t *testing.T) {
	c, err := gray(t).With(true, 4)
	if err != nil {
		t.Fatal(err)
	}
	table := c.Table()
	if got := c.Lookup(0.1); got != table[0] {
		t.Errorf("Lookup(0.1) = %v, want first bin %v", got, table[0])
	}
	if got := c.Lookup(0.99); got != table[3] {
		t.Errorf("Lookup(0.99) = %v, want last bin %v", got, table[3])
	}
	if !table[0].AlmostEqualRgb(scene.RGB(0.125, 0.125, 0.125)) {
		t.Errorf("first bin = %v, want the bin center color", table[0])
	}
}

func TestInterpolationSpaces(t *testing.T) {
	blueRed := []Point{{X: 0, V: [3]float64{0.23, 0.299, 0.754}}, {X: 1, V: [3]float64{0.706, 0.016, 0.15}}}
	for _, interp := range []Interpolation{InterpRGB, InterpHSV, InterpLab, InterpCIEDE2000, InterpDiverging, InterpStep} {
		t.Run(interp.String(), func(t *testing.T) {
			c, err := New(Spec{Interpolation: interp, Points: blueRed})
			if err != nil {
				t.Fatal(err)
			}
			lo, hi := c.Map(0), c.Map(1)
			if !lo.AlmostEqualRgb(scene.RGB(0.23, 0.299, 0.754)) || !hi.AlmostEqualRgb(scene.RGB(0.706, 0.016, 0.15)) {
				t.Errorf("endpoints = %v, %v", lo, hi)
			}
			if mid := c.Map(0.5); !mid.IsValid() {
				t.Errorf("midpoint %v out of gamut", mid)
			}
		})
	}

	div, _ := New(Spec{Interpolation: InterpDiverging, Points: blueRed})
	if l, _, _ := div.Map(0.5).Lab(); l < 0.8 {
		t.Errorf("diverging midpoint lightness = %v, want a light neutral", l)
	}
	step, _ := New(Spec{Interpolation: InterpStep, Points: blueRed})
	if step.Map(0.4) != step.Map(0) {
		t.Error("step map should hold the lower color before the midpoint")
	}
}

func TestLog10Scale(t *testing.T) {
	c, err := New(Spec{
		Scale:  ScaleLog10,
		Points: []Point{{X: 1, V: [3]float64{0, 0, 0}}, {X: 100, V: [3]float64{1, 1, 1}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Map(10); !got.AlmostEqualRgb(scene.RGB(0.5, 0.5, 0.5)) {
		t.Errorf("Map(10) on log scale = %v, want mid gray", got)
	}
	if _, err := New(Spec{Scale: ScaleLog10, Points: []Point{{X: 0}}}); !errors.Is(err, errors.ErrCodeInvalidColorMap) {
		t.Errorf("log10 with zero scalar = %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	set, _ := LoadFile("testdata/multi.json")
	hue, _ := set.Get("Hue")
	data, err := json.Marshal([]*CTF{hue})
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseJSON(bytes.NewReader(data), "roundtrip.json")
	if err != nil {
		t.Fatalf("ParseJSON(marshal) error = %v\n%s", err, data)
	}
	got, _ := back.Get("Hue")
	assertSamePoints(t, hue, got)
	if got.Spec().Above == nil || got.Spec().Below == nil {
		t.Error("above/below colors lost")
	}
}

func TestXMLRoundTrip(t *testing.T) {
	set, _ := LoadFile("testdata/3w_gby.xml")
	c, _ := set.Get("3w_gby")
	var buf bytes.Buffer
	if err := WriteXML(&buf, c); err != nil {
		t.Fatal(err)
	}
	back, err := ParseXML(&buf, "roundtrip.xml")
	if err != nil {
		t.Fatalf("ParseXML(WriteXML) error = %v", err)
	}
	got, _ := back.Get("3w_gby")
	assertSamePoints(t, c, got)
	if got.Spec().Interpolation != InterpLab {
		t.Errorf("interpolation = %v", got.Spec().Interpolation)
	}
}

func assertSamePoints(t *testing.T, want, got *CTF) {
	t.Helper()
	wp, gp := want.Points(), got.Points()
	if len(wp) != len(gp) {
		t.Fatalf("got %d points, want %d", len(gp), len(wp))
	}
	for i := range wp {
		if wp[i].X != gp[i].X || wp[i].V != gp[i].V {
			t.Errorf("point %d = %+v, want %+v", i, gp[i], wp[i])
		}
	}
}

func TestImmutable(t *testing.T) {
	c := gray(t)
	pts := c.Points()
	pts[0].X = 42
	if c.Points()[0].X != 0 {
		t.Error("Points() exposes internal storage")
	}
}

func TestGenerate(t *testing.T) {
	set, _ := LoadFile("testdata/fast.json")
	c, _ := set.Get("Fast")
	c, _ = c.With(true, 16)

	tests := []struct {
		lang Language
		want []string
	}{
		{LangCxx, []string{"ctf->SetColorSpaceToLab();", "ctf->AddRGBPoint(0, 0.0564", "ctf->SetNumberOfValues(16);", "ctf->DiscretizeOn();", "ctf->SetNanColor(0, 1, 0);"}},
		{LangPython, []string{"def get_ctf():", "ctf.SetColorSpaceToLab()", "ctf.AddRGBPoint(1, 0.59", "ctf.SetNumberOfValues(16)"}},
		{LangGo, []string{"colormap.New(colormap.Spec{", "Interpolation: colormap.InterpLab,", "TableSize:     16,", "Discretize:    true,"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Generate(&buf, c, tt.lang); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"C++", LangCxx},
		{"cpp", LangCxx},
		{"Py", LangPython},
		{"golang", LangGo},
	}
	for _, tt := range tests {
		if got, err := ParseLanguage(tt.in); err != nil || got != tt.want {
			t.Errorf("ParseLanguage(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLanguage("fortran"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParseLanguage(fortran) = %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.json")
	doc := `[{"ColorSpace":"RGB","Name":"Live","RGBPoints":[0,0,0,0,1,1,1,1]}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got := make(chan *CTF, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, "", false, 0, func(c *CTF, err error) {
			if err == nil {
				got <- c
			}
		})
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	updated := `[{"ColorSpace":"RGB","Name":"Live","RGBPoints":[0,1,0,0,1,0,0,1]}]`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.Map(0) != scene.RGB(1, 0, 0) {
			t.Errorf("reloaded map starts at %v, want red", c.Map(0))
		}
	case <-ctx.Done():
		t.Fatal("no reload seen")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() = %v", err)
	}
}
