// Package sink writes rendered windows to files.
//
// # Overview
//
// A sink turns a [compose.Window] into bytes:
//
//   - PNG and JPEG: the window frame, encoded through gg
//   - SVG: the 3D views as an embedded bitmap under vector borders, titles
//     and scalar bars, with the fonts embedded
//   - DOT: the scene graph (window, renderers, cameras, actors, widgets),
//     optionally laid out as SVG with Graphviz
//   - JSON: a layout report of viewports, borders, title boxes and cameras
//
// [Encode] dispatches on [render.Format]:
//
//	_ = w.Render()
//	png, err := sink.Encode(w, render.PNG)
//
// Raster formats need a rendered window (a frame from [compose.Window.Render]).
// The vector formats read only the window structure.
//
// [compose.Window]: github.com/matzehuels/viewgrid/pkg/compose.Window
// [compose.Window.Render]: github.com/matzehuels/viewgrid/pkg/compose.Window.Render
// [render.Format]: github.com/matzehuels/viewgrid/pkg/render.Format
package sink
