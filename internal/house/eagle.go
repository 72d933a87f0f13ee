package house

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/obstacle"
	"github.com/banshee-data/navgrid/internal/house/scene"
)

// EagleMap is the coarse top-down view: an obstacle channel and a mask of
// the active target rooms, both on the eagle mapper.
type EagleMap struct {
	Mapper    gridmap.Mapper
	Obstacles *gridmap.Grid[uint8]
	Target    *gridmap.Grid[uint8]
}

func newEagleMap(m gridmap.Mapper, sc *scene.Scene, p obstacle.Params) *EagleMap {
	return &EagleMap{
		Mapper:    m,
		Obstacles: obstacle.Build(m, sc, p),
		Target:    gridmap.NewGrid[uint8](m.N),
	}
}

// SetTarget redraws the target channel from rooms.
func (e *EagleMap) SetTarget(rooms []scene.Room) {
	clear(e.Target.Data)
	for _, r := range rooms {
		e.Target.Fill(e.Mapper.RescaleBox(r.BBox), 1)
	}
}

// Eagle returns the coarse top-down maps.
func (h *House) Eagle() *EagleMap {
	return h.eagle
}

// EagleGrid maps a world point to its eagle cell.
func (h *House) EagleGrid(p r2.Vec) gridmap.Cell {
	return h.eagle.Mapper.ToGrid(p)
}

// EagleGridOf maps a collision cell, through its centre, to its eagle cell.
func (h *House) EagleGridOf(c gridmap.Cell) gridmap.Cell {
	return h.eagle.Mapper.ToGrid(h.mapper.ToCoor(c, true))
}
