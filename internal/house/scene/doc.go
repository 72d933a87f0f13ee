// Package scene owns the Geometry Loader.
//
// Responsibilities: parsing the house description (levels, rooms, objects),
// the wall groups of the house mesh, and the model category table, then
// classifying objects as door-like or ignorable.
// Key types: Scene, Room, Object, Categories, RoomType.
//
// Dependency rule: scene depends only on internal/fsutil and
// internal/monitoring. It knows nothing about grids.
package scene
