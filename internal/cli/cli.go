// Package cli implements the viewgrid command-line interface.
//
// Commands compose multi-view windows from built-in demos or declarative
// scene files and hand them to a viewer, or render them to image files.
// The CLI is built on cobra; progress and results are printed with
// lipgloss styles and diagnostics go through charmbracelet/log.
//
// # Commands
//
//   - demo: run a built-in demonstration in a viewer
//   - render: render a scene file to PNG, JPEG, SVG, DOT or JSON
//   - serve: serve a scene file over HTTP
//   - layout: print a grid plan and title boxes
//   - colormap: load, preview, watch or generate code for a colormap
//   - cache: inspect and clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewgrid/pkg/buildinfo"
	"github.com/matzehuels/viewgrid/pkg/cache"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/observability"
	"github.com/matzehuels/viewgrid/pkg/pipeline"
	"github.com/matzehuels/viewgrid/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "viewgrid"

	// exitInvalid is returned for every error that is not an interrupt.
	exitInvalid = 1

	// exitInterrupted follows the shell convention for SIGINT.
	exitInterrupted = 130
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI whose logger writes to w. Every pipeline, cache and
// viewer hook reports through the same logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	observability.NewLogHooks(c.Logger).Install()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "viewgrid arranges 3D views in a bordered grid",
		Long: `viewgrid lays out several independent 3D scenes in one window, each with its
own camera, title, scalar bar and orientation marker, and draws the grid
borders between them. Windows come from built-in demos or from TOML/YAML
scene files and can be viewed in the terminal, over HTTP, in a desktop
window, or rendered to image files.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.colormapCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped
// to the binary version so upgrades never serve stale renders.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format list. Empty means PNG.
func parseFormats(s string) ([]render.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []render.Format{render.PNG}, nil
	}
	var out []render.Format
	for _, part := range strings.Split(s, ",") {
		f, err := render.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Exit Handling
// =============================================================================

// ExitCode maps a command error to the process exit status.
func ExitCode(ctx context.Context, err error) int {
	switch {
	case ctx.Err() != nil:
		return exitInterrupted
	case err == nil:
		return 0
	}
	return exitInvalid
}

// ErrorLine formats err as the single line printed on failure.
func ErrorLine(err error) string {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return fmt.Sprintf("%s: %s", code, errors.UserMessage(err))
}
