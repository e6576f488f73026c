// Package pipeline turns declarative scene files into composed windows and
// rendered artifacts.
//
// The CLI render and serve commands both go through this package, so a
// scene renders the same way whether it is written to disk or served.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Build: decode the scene file and produce one scene.Cell per entry
//  2. Compose: plan the grid and build a compose.Window from the cells
//  3. Render: paint the window and encode it in each requested format
//
// Rendered artifacts are cached by a hash of the scene bytes and the render
// options. A full cache hit skips painting altogether.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "grid.toml",
//	    Formats: []render.Format{render.PNG, render.SVG},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts[render.PNG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/cache"
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSize is the side of one grid cell in pixels.
	DefaultSize = 300

	// DefaultMaxCols caps the columns chosen for scenes without a grid.
	DefaultMaxCols = 4

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. Zero values take the scene file's
// value first and the package default second.
type Options struct {
	// Scene is the path of a .toml, .yaml or .yml scene file.
	Scene string

	// Grid overrides. Scene file values win over these.
	Rows        int
	Cols        int
	Size        int
	ShareCamera bool

	// Formats lists the artifacts to produce.
	Formats []render.Format
	// Quality is the JPEG quality.
	Quality int
	// NoFonts leaves embedded fonts out of SVG output.
	NoFonts bool
	// NoCache renders even when a cached artifact exists.
	NoCache bool

	Logger *log.Logger
}

// ValidateAndSetDefaults fills defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Scene == "" {
		return errors.New(errors.ErrCodeInvalidScene, "no scene file given")
	}
	if o.Rows < 0 || o.Cols < 0 || o.Size < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "rows, cols and size must not be negative")
	}
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.PNG}
	}
	seen := make(map[render.Format]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(f.String()); err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Quality == 0 {
		o.Quality = sink.DefaultJPEGQuality
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidRange, "jpeg quality %d outside 1..100", o.Quality)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// FormatNames returns the requested formats as strings, for logs and hooks.
func (o *Options) FormatNames() []string {
	names := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		names[i] = f.String()
	}
	return names
}

// LayoutKeyOpts returns cache key options for a resolved grid.
func (p Plan) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Rows:        p.Rows,
		Cols:        p.Cols,
		Size:        p.Size,
		ShareCamera: p.ShareCamera,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(f render.Format, p Plan) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: f.String(),
		Width:  p.Cols * p.Size,
		Height: p.Rows * p.Size,
	}
	switch f {
	case render.JPEG:
		k.Quality = o.Quality
	case render.SVG:
		k.Fonts = !o.NoFonts
	}
	return k
}

func (o *Options) sinkOptions() []sink.Option {
	opts := []sink.Option{sink.WithQuality(o.Quality)}
	if o.NoFonts {
		opts = append(opts, sink.WithoutFonts())
	}
	return opts
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result holds the output of a pipeline run.
type Result struct {
	// Window is the composed window. It is nil when every artifact came
	// from the cache.
	Window *compose.Window
	// Plan is the grid the scene resolved to.
	Plan Plan
	// SceneHash identifies the scene bytes.
	SceneHash string
	// Artifacts maps each requested format to its encoded bytes.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size statistics for a run.
type Stats struct {
	BuildTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
	Cells       int
	Renderers   int
	Diagnostics int
}

// CacheInfo reports which formats were served from the cache.
type CacheInfo struct {
	Hits   []render.Format
	Misses []render.Format
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }
