package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/pipeline"
)

const (
	layoutTable = "table"
	layoutJSON  = "json"
	layoutYAML  = "yaml"
)

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	rows, cols int
	cells      int
	titles     []string
	justify    string
	vjustify   string
	width      float64
	height     float64
	format     string
}

// layoutReport is what the layout command prints.
type layoutReport struct {
	Grid   layout.Grid               `json:"grid" yaml:"grid"`
	Titles map[string]layout.TextBox `json:"titles,omitempty" yaml:"titles,omitempty"`
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{
		justify:  layout.HCentered.String(),
		vjustify: layout.Top.String(),
		width:    layout.DefaultTextWidth,
		height:   layout.DefaultTextHeight,
		format:   layoutTable,
	}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print a grid plan and title boxes",
		Long: `Plan a rows x cols grid holding a number of content cells and print the
viewport and border of every cell. With --titles the shared title boxes are
computed as well, sized so every title renders at one font scale.`,
		Example: `  viewgrid layout --rows 2 --cols 3 --cells 5
  viewgrid layout --cells 7 --titles Tetrahedron,Cube,Octahedron --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildLayout(opts)
			if err != nil {
				return err
			}
			return writeLayout(stdout, report, opts.format)
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows (default chosen from --cells)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid columns (default chosen from --cells)")
	cmd.Flags().IntVar(&opts.cells, "cells", 0, "content cells (default rows x cols)")
	cmd.Flags().StringSliceVar(&opts.titles, "titles", nil, "comma-separated titles")
	cmd.Flags().StringVar(&opts.justify, "justify", opts.justify, "horizontal title justification: left, centered, right")
	cmd.Flags().StringVar(&opts.vjustify, "vjustify", opts.vjustify, "vertical title justification: bottom, centered, top")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "title box width of the longest title")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "title box height")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output: table, json, yaml")

	return cmd
}

// buildLayout resolves the grid size the same way scene files do and lays
// out the titles.
func buildLayout(opts layoutOpts) (layoutReport, error) {
	if opts.rows < 0 || opts.cols < 0 || opts.cells < 0 {
		return layoutReport{}, errors.New(errors.ErrCodeInvalidLayout, "rows, cols and cells must not be negative")
	}
	n := opts.cells
	if n == 0 {
		n = max(opts.rows*opts.cols, len(opts.titles))
	}
	rows, cols := opts.rows, opts.cols
	switch {
	case rows == 0 && cols == 0:
		var err error
		if rows, cols, err = layout.GridFor(max(n, 1), pipeline.DefaultMaxCols); err != nil {
			return layoutReport{}, err
		}
	case rows == 0:
		rows = max((n+cols-1)/cols, 1)
	case cols == 0:
		cols = max((n+rows-1)/rows, 1)
	}

	grid, err := layout.PlanGrid(rows, cols, n)
	if err != nil {
		return layoutReport{}, err
	}
	report := layoutReport{Grid: grid}
	if len(opts.titles) == 0 {
		return report, nil
	}

	h, err := layout.ParseHJustify(opts.justify)
	if err != nil {
		return layoutReport{}, err
	}
	v, err := layout.ParseVJustify(opts.vjustify)
	if err != nil {
		return layoutReport{}, err
	}
	if report.Titles, err = layout.TextPositions(opts.titles, h, v, opts.width, opts.height); err != nil {
		return layoutReport{}, err
	}
	return report, nil
}

func writeLayout(w io.Writer, r layoutReport, format string) error {
	switch strings.ToLower(format) {
	case layoutJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case layoutYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case layoutTable:
		_, err := io.WriteString(w, layoutTables(r))
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q, want table, json or yaml", format)
}

func layoutTables(r layoutReport) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	style := func(dim func(row int) bool) func(row, col int) lipgloss.Style {
		return func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case dim(row):
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Grid %dx%d", r.Grid.Rows, r.Grid.Cols)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d content, %d filler", r.Grid.Content, r.Grid.Len()-r.Grid.Content)))
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Grid.Cells))
	for _, cell := range r.Grid.Cells {
		kind := "content"
		if cell.Filler {
			kind = "filler"
		}
		rows = append(rows, []string{
			fmt.Sprint(cell.Index), fmt.Sprint(cell.Row), fmt.Sprint(cell.Col),
			cell.Viewport.String(), cell.Border.String(), kind,
		})
	}
	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Row", "Col", "Viewport", "Border", "Kind").
		Rows(rows...).
		StyleFunc(style(func(row int) bool { return r.Grid.Cells[row].Filler })).
		Render())
	b.WriteString("\n")

	if len(r.Titles) == 0 {
		return b.String()
	}
	labels := make([]string, 0, len(r.Titles))
	for l := range r.Titles {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	rows = rows[:0]
	for _, l := range labels {
		box := r.Titles[l]
		rows = append(rows, []string{l,
			fmt.Sprintf("%.4f", box.X()), fmt.Sprintf("%.4f", box.Y()),
			fmt.Sprintf("%.4f", box.W()), fmt.Sprintf("%.4f", box.H())})
	}
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render("Titles"))
	b.WriteString("\n")
	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Title", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(style(func(int) bool { return false })).
		Render())
	b.WriteString("\n")
	return b.String()
}
