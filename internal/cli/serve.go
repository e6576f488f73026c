package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewgrid/pkg/viewer"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		grid gridFlags
		view = viewOpts{viewer: string(viewer.KindRemote)}
	)

	cmd := &cobra.Command{
		Use:   "serve SCENE",
		Short: "Serve a scene file over HTTP",
		Long: `Compose a scene file and serve it with the remote viewer.

The page at / shows the current frame and forwards key presses. The window
stays open until POST /close or Ctrl+C.`,
		Example: `  viewgrid serve grid.toml
  viewgrid serve grid.yaml --addr 0.0.0.0:9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], grid, view)
		},
	}

	grid.register(cmd)
	cmd.Flags().StringVar(&view.addr, "addr", viewer.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&view.snapshot, "snapshot", "", "snapshot file written on 'k' (default <scene>.png)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, scene string, grid gridFlags, view viewOpts) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	w, plan, err := runner.Compose(ctx, grid.options(scene))
	if err != nil {
		return err
	}
	printSuccess("Composed %s", StyleHighlight.Render(scene))
	printStats(plan.Rows, plan.Cols, len(w.ContentRenderers()), false)

	stem := strings.TrimSuffix(filepath.Base(scene), filepath.Ext(scene))
	return c.view(ctx, w, stem, view)
}
