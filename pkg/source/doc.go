// Package source produces the meshes shown by the demonstrations.
//
// Producers return *scene.Mesh values ready to be wrapped in actors:
//
//   - Platonic builds the five regular solids with one cell scalar per face
//   - the primitive constructors (Sphere, Cone, Cylinder, ...) build the
//     basic shapes, and Shapes lists sixteen of them under display names
//   - Tessellate samples a parametric Surface on a u/v grid; Surfaces lists
//     the built-in surfaces by name
//   - Elevation attaches point scalars proportional to height along a line
//
// All producers are deterministic. Random inputs (hills, spline control
// points) come from fixed seeds so that cached artifacts stay stable.
package source
