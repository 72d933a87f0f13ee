package house

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/connectivity"
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/scene"
)

// RoomTypeMap ORs, into every movable cell of each room's rectangle, the
// indoor bit and one bit per room label. Movable cells outside every room
// get the outdoor bit.
func RoomTypeMap(m gridmap.Mapper, sc *scene.Scene, move *gridmap.Grid[uint8]) *gridmap.Grid[uint16] {
	rt := gridmap.NewGrid[uint16](m.N)
	for _, room := range sc.Rooms {
		mask := uint16(1) << scene.BitIndoor
		for _, tp := range room.Types {
			mask |= 1 << scene.PredictionBit(tp)
		}
		r := m.RescaleBox(room.BBox).Clip(m.N)
		for x := r.X1; x <= r.X2; x++ {
			for y := r.Y1; y <= r.Y2; y++ {
				if move.At(x, y) > 0 {
					rt.Set(x, y, rt.At(x, y)|mask)
				}
			}
		}
	}
	for i, v := range move.Data {
		if v > 0 && rt.Data[i] == 0 {
			rt.Data[i] = 1 << scene.BitOutdoor
		}
	}
	return rt
}

// RoomTypes returns the room type bitmask grid, or nil when it was not
// requested.
func (h *House) RoomTypes() *gridmap.Grid[uint16] {
	return h.roomTypes
}

// RandomLocation samples a cell centre uniformly from the largest movable
// components of every room of type t. ok is false when none has movable space.
func (h *House) RandomLocation(t scene.RoomType) (p r2.Vec, ok bool) {
	var locs []gridmap.Cell
	for _, room := range h.Scene.RoomsOfType(t) {
		locs = append(locs, h.roomLocations(room)...)
	}
	return h.sample(locs)
}

// RandomLocationForRoom samples a cell centre from the largest movable
// component of room.
func (h *House) RandomLocationForRoom(room scene.Room) (p r2.Vec, ok bool) {
	return h.sample(h.roomLocations(room))
}

func (h *House) sample(locs []gridmap.Cell) (r2.Vec, bool) {
	if len(locs) == 0 {
		return r2.Vec{}, false
	}
	return h.mapper.ToCoor(locs[h.rng.Intn(len(locs))], true), true
}

func (h *House) roomLocations(room scene.Room) []gridmap.Cell {
	if locs, ok := h.roomLocs[room.ID]; ok {
		return locs
	}
	locs := connectivity.FindComponents(h.movable, h.mapper.RescaleBox(room.BBox), connectivity.Largest).Cells()
	h.roomLocs[room.ID] = locs
	return locs
}
