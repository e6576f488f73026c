package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewgrid/pkg/colormap"
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/demos"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/raster"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
)

// colormapOpts holds the flags of the colormap command.
type colormapOpts struct {
	name       string
	discretize bool
	tableSize  int
	lang       string
	output     string
	preview    string
	watch      bool
}

// colormapCommand creates the colormap command.
func (c *CLI) colormapCommand() *cobra.Command {
	var opts colormapOpts

	cmd := &cobra.Command{
		Use:   "colormap FILE",
		Short: "Inspect, preview or generate code for a colormap",
		Long: `Load a colormap from a JSON or XML file and print a summary.

With -g the colormap is written as source code that rebuilds it. With
--preview an elevation-colored cone using the colormap is rendered to an
image. With --watch the file is reloaded every time it changes.

Code generation targets: ` + strings.Join(colormap.Languages(), ", ") + `
(aliases: ` + strings.Join(colormap.LanguageAliases(), ", ") + `)`,
		Example: `  viewgrid colormap maps.json -n "Fast"
  viewgrid colormap maps.json -g python -o fast.py
  viewgrid colormap 3w_gby.xml --preview cone.png --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runColormap(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "colormap name when the file holds several")
	cmd.Flags().BoolVarP(&opts.discretize, "discretize", "d", false, "discretize the colormap")
	cmd.Flags().IntVarP(&opts.tableSize, "size", "s", 0, "table size (at least the number of points)")
	cmd.Flags().StringVarP(&opts.lang, "generate", "g", "", "generate source code: "+strings.Join(colormap.Languages(), ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write generated code to this file instead of stdout")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "render a preview image (.png, .jpg)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the file on every change")

	return cmd
}

func (c *CLI) runColormap(ctx context.Context, path string, opts colormapOpts) error {
	var lang colormap.Language
	if opts.lang != "" {
		l, err := colormap.ParseLanguage(opts.lang)
		if err != nil {
			return err
		}
		lang = l
	}

	ctf, err := colormap.Load(path, opts.name, opts.discretize, opts.tableSize)
	if err != nil {
		return err
	}
	if err := c.reportColormap(path, ctf, lang, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	printInfo("Watching %s", colormap.ResolvePath(path))
	err = colormap.Watch(ctx, path, opts.name, opts.discretize, opts.tableSize, func(ctf *colormap.CTF, err error) {
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		if err := c.reportColormap(path, ctf, lang, opts); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

// reportColormap prints the summary and writes any requested code and
// preview for one loaded colormap.
func (c *CLI) reportColormap(path string, ctf *colormap.CTF, lang colormap.Language, opts colormapOpts) error {
	if lang != "" && opts.output == "" {
		return colormap.Generate(stdout, ctf, lang)
	}

	lo, hi := ctf.Range()
	spec := ctf.Spec()
	printSuccess("Loaded %s", StyleHighlight.Render(ctf.Name()))
	printKeyValue("points", fmt.Sprint(ctf.Len()))
	printKeyValue("range", fmt.Sprintf("%g .. %g", lo, hi))
	printKeyValue("interp", spec.Interpolation.String())
	printKeyValue("space", spec.Space.String())
	printKeyValue("table", fmt.Sprint(ctf.TableSize()))
	printKeyValue("discretize", fmt.Sprint(spec.Discretize))

	if lang != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", opts.output)
		}
		if err := colormap.Generate(f, ctf, lang); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
		}
		printFile(opts.output)
	}
	if opts.preview != "" {
		if err := c.writePreview(path, opts); err != nil {
			return err
		}
		printFile(opts.preview)
	}
	return nil
}

// writePreview renders the colormap demo for the file to opts.preview.
func (c *CLI) writePreview(path string, opts colormapOpts) error {
	f, err := render.FormatOf(opts.preview)
	if err != nil {
		return err
	}
	if !f.Raster() {
		return errors.New(errors.ErrCodeInvalidFormat, "preview must be .png, .jpg or .jpeg, got %s", opts.preview)
	}
	prog, err := demos.Colormap(demos.Options{
		Colormap:     path,
		ColormapName: opts.name,
		Discretize:   opts.discretize,
		TableSize:    opts.tableSize,
		NoSliders:    true,
		Logger:       c.Logger,
	})
	if err != nil {
		return err
	}
	w, err := prog.Window(
		compose.WithLogger(c.Logger),
		compose.WithPainter(raster.New(raster.WithLogger(c.Logger))))
	if err != nil {
		return err
	}
	if err := w.Render(); err != nil {
		return err
	}
	data, err := sink.Encode(w, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.preview, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.preview)
	}
	return nil
}
