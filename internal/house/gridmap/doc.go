// Package gridmap owns the discretisation shared by every grid in a house.
//
// Responsibilities: the affine map between world coordinates and grid
// indices at a given resolution, inclusive integer rectangles, and the
// arena-indexed square Grid used for obstacle, movability, distance and
// room type layers.
// Key types: Mapper, Grid, Cell, Rect.
//
// Dependency rule: gridmap depends on no other internal/house package.
package gridmap
