// Package compose assembles scene cells into a multi-view window.
//
// Compose plans a rows x cols grid, gives every cell its own renderer with a
// viewport, background, camera and actors, and decorates each renderer with
// a border so that the union of all borders draws every interior grid line
// once and closes the outer frame. Cells with a title get a label whose box
// comes from one layout over all titles, so every label renders at the same
// font scale.
//
// # Lifecycle
//
// A Window moves through Building, Rendered, Interactive and Closed:
//
//	w, err := compose.Compose(cells, 3, 2, 300, false)
//	if err != nil {
//	    return err
//	}
//	if err := w.Render(); err != nil { // Building -> Rendered
//	    return err
//	}
//	return w.Start(ctx, interactor)    // Rendered -> Interactive -> Closed
//
// Widgets are switched on by the first Render. Close releases the observers
// widgets registered before Close observers run.
//
// # Threading
//
// A window belongs to the goroutine that drives it. Other goroutines hand
// work over with Window.Post; the interactor runs it with Window.Drain.
//
// # Cameras
//
// With shareCamera every content renderer aliases the first content cell's
// camera, so moving one view moves them all. Later cells' camera placement
// and nudges are ignored in that mode.
package compose
