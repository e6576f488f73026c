// Package raster is a software backend for composed windows.
//
// Painter implements compose.Painter. For every renderer it rasterizes the
// actors with fauxgl into the renderer's pixel rectangle, then draws the 2D
// layer with gg: orientation markers, border polylines, titles, scalar bars
// and sliders. Borders are drawn after all 3D content so they always sit on
// top.
//
// Pixel rectangles follow the window convention of the layout package:
// a viewport (xmin, ymin, xmax, ymax) covers x from xmin·W to xmax·W and y
// from (1-ymax)·H to (1-ymin)·H, with y growing downwards.
package raster
