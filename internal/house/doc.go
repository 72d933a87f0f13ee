// Package house owns the navigation substrate for one loaded building.
//
// Responsibilities: building (or restoring from cache) the obstacle and
// movability grids, per-target-room distance fields with an append-only
// cache, random placement sampling, the room type bitmask map and the coarse
// eagle-view maps.
// Key types: House, Options, GridSnapshot.
//
// Dependency rule: house may depend on every internal/house/* subpackage;
// none of them may depend on house, except storage backends which implement
// SnapshotStore.
package house
