package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/demos"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/render/raster"
	"github.com/matzehuels/viewgrid/pkg/source"
	"github.com/matzehuels/viewgrid/pkg/viewer"
)

// viewOpts are the flags shared by every command that opens a viewer.
type viewOpts struct {
	viewer   string
	snapshot string
	addr     string
}

func (o *viewOpts) register(cmd *cobra.Command, def viewer.Kind) {
	o.viewer = string(def)
	kinds := make([]string, 0, len(viewer.Kinds()))
	for _, k := range viewer.Kinds() {
		kinds = append(kinds, string(k))
	}
	cmd.Flags().StringVar(&o.viewer, "viewer", o.viewer, "viewer: "+strings.Join(kinds, ", "))
	cmd.Flags().StringVar(&o.snapshot, "snapshot", "", "snapshot file written on 'k' (default <program>.png)")
	cmd.Flags().StringVar(&o.addr, "addr", viewer.DefaultAddr, "listen address for the remote viewer")
}

// demoOpts holds the flags of the demo command.
type demoOpts struct {
	demos.Options
	view viewOpts
	list bool
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var opts demoOpts

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Run a built-in demonstration",
		Long: `Run a built-in demonstration in a viewer.

Without a name an interactive picker is shown. Available demos:
  ` + strings.Join(demos.Names(), ", ") + `

Keys: arrows rotate, +/- zoom, tab selects the view, r resets, k saves a
snapshot, q quits.`,
		Example: `  viewgrid demo platonic
  viewgrid demo surfaces -s Boy --viewer remote
  viewgrid demo colormap --colormap maps.json -d --viewer none --snapshot cone.png`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return demos.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				printDemoList()
				return nil
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := pickDemo()
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				name = picked
			}
			return c.runDemo(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Surface, "surface", "s", "", "surface for the surfaces demo (default all)")
	cmd.Flags().BoolVarP(&opts.Discretize, "discretize", "d", false, "discretize the colormap")
	cmd.Flags().BoolVarP(&opts.NoSliders, "no-sliders", "n", false, "leave interactive sliders out")
	cmd.Flags().BoolVar(&opts.ShareCamera, "share-camera", false, "link the cameras of every view")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "cell size in pixels (default per demo)")
	cmd.Flags().StringVar(&opts.Colormap, "colormap", "", "JSON or XML colormap file for the colormap demo")
	cmd.Flags().StringVar(&opts.ColormapName, "colormap-name", "", "colormap to use when the file has several")
	cmd.Flags().IntVar(&opts.TableSize, "table-size", 0, "colormap table size")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list the demos and exit")
	opts.view.register(cmd, viewer.KindTerm)

	return cmd
}

func printDemoList() {
	for _, d := range demos.All() {
		printKeyValue(d.Name, d.Description)
	}
}

// runDemo builds, composes and views one demo.
func (c *CLI) runDemo(ctx context.Context, name string, opts demoOpts) error {
	d, err := demos.Get(name)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	prog, err := d.Build(opts.Options)
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnknownSurface) {
			printError("%s", errors.UserMessage(err))
			fmt.Fprintln(stdout, source.FormatSurfaceNames(5))
		}
		return err
	}

	prog.Options = append(prog.Options,
		compose.WithLogger(c.Logger),
		compose.WithPainter(raster.New(raster.WithLogger(c.Logger))))
	w, err := prog.Window()
	if err != nil {
		return err
	}
	c.Logger.Info("composed demo", "demo", d.Name, "window", w.Name, "pixels", fmt.Sprintf("%dx%d", w.Width, w.Height))
	return c.view(ctx, w, prog.Name, opts.view)
}

// view runs w in the requested viewer. With --viewer none and an explicit
// --snapshot the single rendered frame is written before returning.
func (c *CLI) view(ctx context.Context, w *compose.Window, program string, opts viewOpts) error {
	kind, err := viewer.ParseKind(opts.viewer)
	if err != nil {
		return err
	}
	path := opts.snapshot
	if path == "" {
		path = viewer.DefaultSnapshotPath(program)
	}

	logger := c.Logger
	if kind == viewer.KindTerm {
		logger = quietLogger(c.Logger)
	}
	snap, err := viewer.NewSnapshotter(path, logger)
	if err != nil {
		return err
	}

	it, err := viewer.New(kind,
		viewer.WithAddr(opts.addr),
		viewer.WithLogger(logger),
		viewer.WithSnapshotter(snap))
	if err != nil {
		return err
	}
	if rv, ok := it.(*viewer.Remote); ok {
		actx, stop := context.WithCancel(ctx)
		defer stop()
		go announce(actx, rv)
	}

	prog := newProgress(c.Logger)
	if err := w.Start(ctx, it); err != nil {
		return err
	}
	if kind == viewer.KindNone && opts.snapshot != "" {
		if err := snap.Save(ctx, w); err != nil {
			return err
		}
		printSuccess("Snapshot written")
		printFile(snap.Path)
		return nil
	}
	prog.done("viewer closed")
	return ctx.Err()
}

// announce prints the remote viewer URL once it is listening.
func announce(ctx context.Context, rv *viewer.Remote) {
	addr := make(chan string, 1)
	go func() { addr <- rv.Addr().String() }()
	select {
	case <-ctx.Done():
	case a := <-addr:
		printInfo("Viewer at %s", StyleLink.Render("http://"+a))
	}
}
