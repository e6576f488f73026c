// Package render turns composed windows into pixels and files.
//
// # Overview
//
// A [compose.Window] only describes what to draw. This package tree holds
// the backends that draw it:
//
//   - [raster]: a software [compose.Painter] (fauxgl for actors, gg for the
//     2D layer)
//   - [sink]: encoders that write a rendered window as PNG, JPEG, SVG, a
//     Graphviz scene graph or a JSON layout report
//
// The root package only defines [Format], the output format shared by the
// sinks, the pipeline and the viewers' snapshot key.
//
//	w, _ := compose.Compose(cells, 3, 2, 300, false, compose.WithPainter(raster.New()))
//	_ = w.Render()
//	data, err := sink.Encode(w, render.PNG)
//
// [compose.Window]: github.com/matzehuels/viewgrid/pkg/compose.Window
// [compose.Painter]: github.com/matzehuels/viewgrid/pkg/compose.Painter
// [raster]: github.com/matzehuels/viewgrid/pkg/render/raster
// [sink]: github.com/matzehuels/viewgrid/pkg/render/sink
package render
