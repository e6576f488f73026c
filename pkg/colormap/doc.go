// Package colormap loads color transfer functions from ParaView-style JSON
// exports and SciVisColor-style XML files.
//
// A [CTF] is immutable once built and implements scene.LookupTable, so one
// instance can color several actors and scalar bars at once. [Generate]
// writes code that rebuilds a loaded map and [Watch] reloads a file as it
// is edited.
package colormap
