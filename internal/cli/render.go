package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/pipeline"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
)

// gridFlags are the grid overrides shared by render and serve.
type gridFlags struct {
	rows, cols  int
	size        int
	shareCamera bool
}

func (g *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&g.rows, "rows", 0, "grid rows when the scene sets none")
	cmd.Flags().IntVar(&g.cols, "cols", 0, "grid columns when the scene sets none")
	cmd.Flags().IntVar(&g.size, "size", 0, "cell size in pixels when the scene sets none")
	cmd.Flags().BoolVar(&g.shareCamera, "share-camera", false, "link the cameras of every view")
}

func (g gridFlags) options(scene string) pipeline.Options {
	return pipeline.Options{
		Scene:       scene,
		Rows:        g.rows,
		Cols:        g.cols,
		Size:        g.size,
		ShareCamera: g.shareCamera,
	}
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	grid    gridFlags
	output  string // output file (single format) or base path
	formats string
	quality int
	noFonts bool
	noCache bool
	graph   string // graphviz SVG of the scene graph
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render SCENE",
		Short: "Render a scene file to image files",
		Long: `Render a TOML or YAML scene file to PNG, JPEG, SVG, DOT or JSON.

Artifacts are cached by scene content and render options. Use --no-cache
to render anyway.`,
		Example: `  viewgrid render grid.toml
  viewgrid render grid.yaml -f png,svg -o out/grid
  viewgrid render grid.toml -f jpeg --quality 80 --graph grid-graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	opts.grid.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), jpeg, svg, dot, json")
	cmd.Flags().IntVar(&opts.quality, "quality", sink.DefaultJPEGQuality, "JPEG quality 1..100")
	cmd.Flags().BoolVar(&opts.noFonts, "no-fonts", false, "leave embedded fonts out of SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render even when cached artifacts exist")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "also write the scene graph as graphviz SVG")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, scene string, opts renderOpts) error {
	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.grid.options(scene)
	popts.Formats = formats
	popts.Quality = opts.quality
	popts.NoFonts = opts.noFonts
	popts.NoCache = opts.noCache

	spinner := newSpinner(ctx, "Rendering "+filepath.Base(scene)+"...")
	spinner.Start()
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("rendered " + scene)

	paths := outputPaths(opts.output, scene, popts.Formats)
	printSuccess("Rendered %s", StyleHighlight.Render(scene))
	printStats(result.Plan.Rows, result.Plan.Cols, result.Stats.Cells, result.CacheInfo.AllHit())
	for _, f := range popts.Formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
		printFile(paths[f])
	}

	if opts.graph != "" {
		if err := c.writeGraph(ctx, runner, popts, result, opts.graph); err != nil {
			return err
		}
		printFile(opts.graph)
	}
	if n := result.Stats.Diagnostics; n > 0 {
		printWarning("%d composition diagnostics logged", n)
	}
	printNewline()
	printNextStep("View interactively", appName+" serve "+scene)
	return nil
}

// outputPaths names one file per format. A single format writes to output
// as given; several formats share output (or the scene path) as a base.
func outputPaths(output, scene string, formats []render.Format) map[render.Format]string {
	paths := make(map[render.Format]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, scene)
	for _, f := range formats {
		paths[f] = base + f.Ext()
	}
	return paths
}

// basePath strips a known format extension from output, or the scene
// extension when output is empty.
func basePath(output, scene string) string {
	if output == "" {
		return strings.TrimSuffix(scene, filepath.Ext(scene))
	}
	if _, err := render.FormatOf(output); err == nil {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// writeGraph lays out the window's scene graph with graphviz. A fully
// cached run has no window, so the scene is composed again without painting.
func (c *CLI) writeGraph(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, result *pipeline.Result, path string) error {
	w := result.Window
	if w == nil {
		var err error
		if w, _, err = runner.Compose(ctx, opts); err != nil {
			return err
		}
	}
	svg, err := sink.RenderDOTSVG(ctx, sink.ToDOT(w))
	if err != nil {
		return err
	}
	return writeArtifact(path, svg)
}
