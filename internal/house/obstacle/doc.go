// Package obstacle owns the Obstacle Map Builder.
//
// Responsibilities: rasterising the level footprint, wall boxes and colliding
// objects of a scene into a binary occupancy grid, and carving doorways
// through the walls they sit in.
// Key types: Params, Layers.
//
// Dependency rule: obstacle depends on gridmap and scene only.
package obstacle
