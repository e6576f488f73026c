// Package viewer provides interactors that drive a composed window:
// a terminal viewer built on bubbletea, a remote viewer served over HTTP
// and, with the desktop build tag, a native window built on ebiten.
//
// Every viewer shares the same key bindings (see [Controls]) and attaches
// a [Snapshotter] so that pressing k writes the current frame to disk.
// Viewers own the window's UI goroutine: work from other goroutines, such
// as HTTP handlers, reaches the window through compose.Window.Post.
//
//	w, _ := compose.Compose(cells, 3, 2, 300, false, compose.WithPainter(raster.New()))
//	snap, _ := viewer.NewSnapshotter("platonic.png", logger)
//	it, _ := viewer.New(viewer.KindTerm, viewer.WithSnapshotter(snap))
//	err := w.Start(ctx, it)
package viewer
