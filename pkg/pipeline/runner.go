package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/cache"
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/observability"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/raster"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state besides the cache and logger, so one
// Runner may serve several goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer uses DefaultKeyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build → compose → render for opts.Scene.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	sf, data, err := ReadScene(opts.Scene)
	if err != nil {
		return nil, err
	}
	plan, err := sf.plan(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Plan:      plan,
		SceneHash: sceneHash(sf, data),
		Artifacts: make(map[render.Format][]byte, len(opts.Formats)),
	}

	if !opts.NoCache {
		r.loadCached(ctx, opts, result)
		if result.CacheInfo.AllHit() {
			r.Logger.Info("all artifacts cached", "scene", opts.Scene, "formats", opts.FormatNames())
			return result, nil
		}
	} else {
		result.CacheInfo.Misses = append(result.CacheInfo.Misses, opts.Formats...)
	}

	w, err := r.compose(ctx, sf, opts, plan, result)
	if err != nil {
		return nil, err
	}
	result.Window = w

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.FormatNames())
	err = r.render(ctx, w, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.FormatNames(), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.Logger.Info("rendered outputs",
		"formats", opts.FormatNames(),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Compose builds the window for opts.Scene without rendering it. Viewers use
// it to get a window they then drive themselves.
func (r *Runner) Compose(ctx context.Context, opts Options) (*compose.Window, Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, Plan{}, err
	}
	sf, _, err := ReadScene(opts.Scene)
	if err != nil {
		return nil, Plan{}, err
	}
	plan, err := sf.plan(opts)
	if err != nil {
		return nil, Plan{}, err
	}
	w, err := r.compose(ctx, sf, opts, plan, &Result{})
	return w, plan, err
}

func (r *Runner) compose(ctx context.Context, sf *SceneFile, opts Options, plan Plan, result *Result) (*compose.Window, error) {
	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Scene)
	cells, err := sf.Cells()
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, opts.Scene, len(cells), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.Cells = len(cells)
	r.Logger.Info("built cells",
		"cells", len(cells),
		"duration", result.Stats.BuildTime)

	// Stage 2: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, opts.Scene, len(cells))
	w, err := r.composeCells(cells, sf, opts, plan)
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, opts.Scene, result.Stats.ComposeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Stats.Renderers = len(w.Renderers)
	result.Stats.Diagnostics = len(w.Diagnostics)
	r.Logger.Info("composed window",
		"grid", fmt.Sprintf("%dx%d", plan.Rows, plan.Cols),
		"pixels", fmt.Sprintf("%dx%d", w.Width, w.Height),
		"duration", result.Stats.ComposeTime)
	return w, nil
}

func (r *Runner) composeCells(cells []*scene.Cell, sf *SceneFile, opts Options, plan Plan) (*compose.Window, error) {
	copts, err := sf.ComposeOptions()
	if err != nil {
		return nil, err
	}
	copts = append(copts,
		compose.WithLogger(opts.Logger),
		compose.WithPainter(raster.New(raster.WithLogger(opts.Logger))))
	if sf.Name == "" {
		stem := filepath.Base(opts.Scene)
		copts = append(copts, compose.WithName(stem[:len(stem)-len(filepath.Ext(stem))]))
	}
	return compose.Compose(cells, plan.Cols, plan.Rows, plan.Size, plan.ShareCamera, copts...)
}

// loadCached fills result with every cached artifact and records hits and
// misses per format.
func (r *Runner) loadCached(ctx context.Context, opts Options, result *Result) {
	for _, f := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(f, result.Plan))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", f, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts[f] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, f)
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		result.CacheInfo.Misses = append(result.CacheInfo.Misses, f)
	}
}

// render paints w once and encodes every format not already in result.
func (r *Runner) render(ctx context.Context, w *compose.Window, opts Options, result *Result) error {
	if err := w.Render(); err != nil {
		return err
	}
	for _, f := range result.CacheInfo.Misses {
		data, err := sink.Encode(w, f, opts.sinkOptions()...)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		result.Artifacts[f] = data
		if opts.NoCache {
			continue
		}
		key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(f, result.Plan))
		err = cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, key, data, TTLArtifact)
		})
		if err != nil {
			r.Logger.Warn("cache write failed", "format", f, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return nil
}

// sceneHash covers the scene bytes and the colormap file they refer to, so
// editing either invalidates cached artifacts.
func sceneHash(sf *SceneFile, data []byte) string {
	if sf.Colormap == nil || sf.Colormap.File == "" {
		return cache.Hash(data)
	}
	cm, err := os.ReadFile(sf.colormapPath())
	if err != nil {
		return cache.Hash(data)
	}
	return cache.Hash(append(append([]byte{}, data...), cm...))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
