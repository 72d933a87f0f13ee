// Package connectivity owns the Connectivity & Distance Engine.
//
// Responsibilities: 4-connected component search over movable cells inside
// a rectangle, multi-source breadth-first distance fields, and the two-pass
// (open, then closed) seeding used to build a field towards a set of rooms
// or towards a single point.
// Key types: Mode, Components, Record, Target, Report.
//
// Dependency rule: connectivity depends on gridmap and monitoring. Grids are
// passed in; nothing here owns a House.
package connectivity
