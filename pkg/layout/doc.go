// Package layout computes the pure geometry of a viewport grid.
//
// # Overview
//
// A window is split into a uniform grid of sub-viewports. Every quantity in
// this package is expressed in normalized coordinates: a window viewport is a
// [Rect] inside the unit square with the origin at the bottom-left corner, and
// text boxes and border polylines are expressed relative to the viewport that
// owns them. Nothing here knows about renderers, cameras or pixels.
//
// The package has three entry points:
//
//   - [PlanGrid] assigns each grid index a viewport and a [BorderStyle].
//   - [TextPositions] sizes and places title boxes so that titles of
//     different lengths share one font scale across the grid.
//   - [BorderLines] turns a [BorderStyle] into the polylines to stroke.
//
// # Grid Conventions
//
// Row 0 is the top row. Cells are numbered row-major, so index = row*cols+col.
// Every cell draws its top and left edges; cells in the last column add the
// right edge and cells in the last row add the bottom edge. The union of all
// cell borders therefore draws every interior edge exactly once and closes the
// outer frame of the window.
//
// # Example
//
//	grid, err := layout.PlanGrid(2, 3, 5)
//	if err != nil {
//	    return err
//	}
//	for _, c := range grid.Cells {
//	    lines, _ := layout.BorderLines(c.Border)
//	    // place content in c.Viewport, stroke lines
//	}
package layout
