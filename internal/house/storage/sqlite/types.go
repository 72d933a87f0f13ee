package sqlite

import "github.com/banshee-data/navgrid/internal/house"

// Type aliases for the domain types this store persists.

// GridSnapshot is a persisted (obstacle, movability) grid pair.
type GridSnapshot = house.GridSnapshot

// GridKey identifies the grid configuration of a snapshot.
type GridKey = house.GridKey

var _ house.SnapshotStore = (*Store)(nil)
