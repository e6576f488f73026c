// Package demos holds the built-in demonstration programs.
//
// Each demo builds a Program: the cells of a window plus its grid and
// decoration. The CLI composes the program and hands the window to a
// viewer, so demos never paint or open windows themselves.
//
//	d, err := demos.Get("platonic")
//	if err != nil {
//	    return err
//	}
//	prog, err := d.Build(demos.Options{})
//	w, err := prog.Window(compose.WithPainter(raster.New()))
package demos

import (
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Options are the knobs shared by every demo. Demos ignore the ones that
// do not apply to them.
type Options struct {
	// Surface selects one parametric surface in the surfaces demo.
	Surface string
	// NoSliders leaves interactive sliders out.
	NoSliders bool
	// ShareCamera links the cameras of every view.
	ShareCamera bool
	// Size overrides the demo's cell size in pixels.
	Size int

	// Colormap is a JSON or XML colormap file for the colormap demo. The
	// built-in map is used when empty.
	Colormap     string
	ColormapName string
	Discretize   bool
	TableSize    int

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Program is a demo ready to compose.
type Program struct {
	Name        string
	Cells       []*scene.Cell
	Rows, Cols  int
	Size        int
	ShareCamera bool
	Options     []compose.Option

	// Setup runs after composition, before the first render.
	Setup func(w *compose.Window) error
}

// Window composes the program. Extra options apply after the program's own.
func (p *Program) Window(opts ...compose.Option) (*compose.Window, error) {
	all := append([]compose.Option{compose.WithName(p.Name)}, p.Options...)
	all = append(all, opts...)
	w, err := compose.Compose(p.Cells, p.Cols, p.Rows, p.Size, p.ShareCamera, all...)
	if err != nil {
		return nil, err
	}
	if p.Setup != nil {
		if err := p.Setup(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Demo is a registered demonstration.
type Demo struct {
	Name        string
	Description string
	Build       func(Options) (*Program, error)
}

var registry = map[string]Demo{}

func register(d Demo) { registry[d.Name] = d }

func init() {
	register(Demo{Name: "platonic", Description: "the five Platonic solids with colored faces", Build: Platonic})
	register(Demo{Name: "shapes", Description: "sixteen geometric primitives on a 4x4 grid", Build: Shapes})
	register(Demo{Name: "surfaces", Description: "parametric surfaces, one per view or one chosen with -s", Build: Surfaces})
	register(Demo{Name: "colormap", Description: "an elevation-colored cone with a scalar bar", Build: Colormap})
	register(Demo{Name: "linked", Description: "four views of one mesh sharing a camera", Build: Linked})
}

// Get returns the demo called name, ignoring case.
func Get(name string) (Demo, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Demo{}, errors.New(errors.ErrCodeUnknownDemo, "unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the registered demo names sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns every demo sorted by name.
func All() []Demo {
	out := make([]Demo, 0, len(registry))
	for _, n := range Names() {
		out = append(out, registry[n])
	}
	return out
}

func sizeOr(opt, def int) int {
	if opt > 0 {
		return opt
	}
	return def
}
