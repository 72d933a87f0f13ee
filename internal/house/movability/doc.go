// Package movability owns the Movability Map Builder.
//
// Responsibilities: deriving, from an obstacle grid, which cells a disc
// shaped robot of a given radius can stand on. Two algorithms are offered:
// an exact per-cell clearance test and an approximate disc dilation.
// Key types: Options.
//
// Dependency rule: movability depends on gridmap and obstacle only.
package movability
