package layout

import (
	"math"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Cell is one slot of a planned grid.
type Cell struct {
	Index    int         `json:"index" yaml:"index"`
	Row      int         `json:"row" yaml:"row"`
	Col      int         `json:"col" yaml:"col"`
	Viewport Rect        `json:"viewport" yaml:"viewport"`
	Border   BorderStyle `json:"border" yaml:"border"`
	// Filler marks slots past the last content cell. They keep their
	// viewport and border so the frame stays closed.
	Filler bool `json:"filler,omitempty" yaml:"filler,omitempty"`
}

// Grid is the result of PlanGrid.
type Grid struct {
	Rows    int    `json:"rows" yaml:"rows"`
	Cols    int    `json:"cols" yaml:"cols"`
	Content int    `json:"content" yaml:"content"`
	Cells   []Cell `json:"cells" yaml:"cells"`
}

// Len returns rows * cols.
func (g Grid) Len() int { return g.Rows * g.Cols }

// ContentCells returns the non-filler cells in index order.
func (g Grid) ContentCells() []Cell { return g.Cells[:g.Content] }

// FillerCells returns the filler cells in index order.
func (g Grid) FillerCells() []Cell { return g.Cells[g.Content:] }

// PlanGrid lays out rows x cols cells of which the first n hold content.
//
// Cell (row, col) gets the viewport
//
//	(col/cols, (rows-row-1)/rows, (col+1)/cols, (rows-row)/rows)
//
// and a border that draws its top and left edges, plus the right edge in
// the last column and the bottom edge in the last row.
//
// It fails with INVALID_LAYOUT when rows or cols is below 1 or n does not
// fit the grid.
func PlanGrid(rows, cols, n int) (Grid, error) {
	if rows < 1 || cols < 1 {
		return Grid{}, errors.New(errors.ErrCodeInvalidLayout, "grid must have at least one row and column, got %dx%d", rows, cols)
	}
	if n < 0 || n > rows*cols {
		return Grid{}, errors.New(errors.ErrCodeInvalidLayout, "%d cells do not fit a %dx%d grid", n, rows, cols)
	}

	g := Grid{Rows: rows, Cols: cols, Content: n, Cells: make([]Cell, 0, rows*cols)}
	fr, fc := float64(rows), float64(cols)
	for row := range rows {
		for col := range cols {
			idx := row*cols + col
			g.Cells = append(g.Cells, Cell{
				Index: idx,
				Row:   row,
				Col:   col,
				Viewport: Rect{
					XMin: float64(col) / fc,
					YMin: float64(rows-row-1) / fr,
					XMax: float64(col+1) / fc,
					YMax: float64(rows-row) / fr,
				},
				Border: cellBorder(row == rows-1, col == cols-1),
				Filler: idx >= n,
			})
		}
	}
	return g, nil
}

func cellBorder(lastRow, lastCol bool) BorderStyle {
	switch {
	case lastRow && lastCol:
		return BorderTopLeftBottomRight
	case lastCol:
		return BorderRightTopLeft
	case lastRow:
		return BorderTopLeftBottom
	default:
		return BorderTopLeft
	}
}

// GridFor picks the smallest near-square grid with at most maxCols columns
// that holds n cells. maxCols <= 0 means no limit.
func GridFor(n, maxCols int) (rows, cols int, err error) {
	if n < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidLayout, "need at least one cell, got %d", n)
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	if maxCols > 0 && cols > maxCols {
		cols = maxCols
	}
	rows = (n + cols - 1) / cols
	return rows, cols, nil
}
