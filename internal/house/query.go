package house

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/connectivity"
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/scene"
)

// Mapper returns the collision resolution mapper.
func (h *House) Mapper() gridmap.Mapper { return h.mapper }

// Obstacles returns the obstacle grid. Callers must not modify it.
func (h *House) Obstacles() *gridmap.Grid[uint8] { return h.obstacles }

// Movability returns the movability grid. Callers must not modify it.
func (h *House) Movability() *gridmap.Grid[uint8] { return h.movable }

// DebugLayer returns the obstacle debug layer when built with DebugInfo.
func (h *House) DebugLayer() *gridmap.Grid[float32] { return h.debug }

// Inside reports whether (x, y) is a cell of the collision grid.
func (h *House) Inside(x, y int) bool {
	return h.mapper.Inside(gridmap.Cell{X: x, Y: y})
}

// ToGrid converts a world point to its collision cell.
func (h *House) ToGrid(p r2.Vec) gridmap.Cell { return h.mapper.ToGrid(p) }

// ToCoor converts a collision cell to world coordinates.
func (h *House) ToCoor(c gridmap.Cell, center bool) r2.Vec { return h.mapper.ToCoor(c, center) }

// CanMove reports whether a robot may stand on (x, y).
func (h *House) CanMove(x, y int) bool {
	return connectivity.CanMove(h.movable, x, y)
}

// IsConnect reports whether (x, y) reaches the active target.
func (h *House) IsConnect(x, y int) bool {
	return h.current != nil && h.current.IsConnect(x, y)
}

// Dist is the hop count from (x, y) to the active target, or -1.
func (h *House) Dist(x, y int) int32 {
	if h.current == nil {
		return connectivity.Unreachable
	}
	return h.current.DistAt(x, y)
}

// ScaledDist is Dist divided by MaxConnDist, keeping -1.
func (h *House) ScaledDist(x, y int) float64 {
	if h.current == nil {
		return float64(connectivity.Unreachable)
	}
	return h.current.Scaled(x, y)
}

// InRoomDist is the offset of a frontier cell from its room centre, or -1.
func (h *House) InRoomDist(x, y int) float32 {
	if h.current == nil || !h.Inside(x, y) {
		return -1
	}
	return h.current.InRoomDist.At(x, y)
}

// MaxConnDist is the largest distance of the active field, or 0 without one.
func (h *House) MaxConnDist() int32 {
	if h.current == nil {
		return 0
	}
	return h.current.MaxConnDist
}

// ConnectedCoors lists every cell reaching the active target.
func (h *House) ConnectedCoors() []gridmap.Cell {
	if h.current == nil {
		return nil
	}
	return h.current.ConnectedCoors
}

// Frontier lists the zero-distance cells of the active field.
func (h *House) Frontier() []gridmap.Cell {
	if h.current == nil {
		return nil
	}
	return h.current.Frontier
}

// AvailableCoors lists connected cells within hardness of MaxConnDist. A
// negative hardness keeps every connected cell.
func (h *House) AvailableCoors(hardness float64) []gridmap.Cell {
	if h.current == nil {
		return nil
	}
	return h.current.Available(hardness)
}

// HasRoomType reports whether the house has a room labelled name, after
// alias folding.
func (h *House) HasRoomType(name string) bool {
	return h.Scene.HasRoomType(scene.RoomType(scene.NormalizeRoomType(name)))
}

// DesiredRoomTypes lists the target room types present in the house.
func (h *House) DesiredRoomTypes() []scene.RoomType {
	return append([]scene.RoomType(nil), h.desired...)
}

// DefaultRoomType is the first desired room type.
func (h *House) DefaultRoomType() scene.RoomType { return h.defaultType }

// TargetRoomType is the active target type, empty when none is active or a
// point target is set.
func (h *House) TargetRoomType() scene.RoomType { return h.targetType }
