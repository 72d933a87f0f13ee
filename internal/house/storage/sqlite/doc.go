// Package sqlite contains the SQLite repository for persisted house grids.
//
// The obstacle and movability grids of a house are expensive to build at
// full resolution, so they are stored once per (house, resolution, robot
// radius, approximation) key and restored on later runs. Schema changes go
// through the embedded golang-migrate migrations.
package sqlite
