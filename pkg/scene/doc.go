// Package scene holds the per-cell scene description consumed by the
// composer: meshes, actors, cameras and the decorations a cell asks for.
//
// # Overview
//
// A [Cell] only accumulates intent. Adding actors, placing or nudging the
// camera, setting a title or an orientation marker records what the cell
// wants; nothing is rendered until the compose package turns the cell into
// a renderer of a window.
//
// # Cameras
//
// [Camera] follows the usual pinhole conventions: a position, a focal point
// and a view-up vector, with a view angle of 30 degrees. [Camera.Reset]
// frames a bounding box while keeping the viewing direction, and the nudges
// ([Camera.Azimuth], [Camera.Elevation], [Camera.Zoom], [Camera.Dolly]) are
// applied after a reset, in that order. Every nudge is recorded in
// [Camera.Record] so tools can report how a view was reached.
//
// # Colors
//
// [Color] is a go-colorful color. [Named] resolves the common palette names
// used by the demonstrations ("SlateGray", "MidnightBlue", ...), and
// [ParseColor] additionally accepts hex strings and "r,g,b" triples.
package scene
