package connectivity

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
)

// Unreachable marks a cell with no path to the frontier.
const Unreachable int32 = -1

// Record is a distance field towards one target.
type Record struct {
	// Dist is the hop count to the nearest frontier cell, or Unreachable.
	Dist *gridmap.Grid[int32]
	// InRoomDist is the Euclidean offset of a frontier cell from its room
	// centre, shifted so each room's closest cell is 0. Other cells are -1.
	InRoomDist *gridmap.Grid[float32]
	// Frontier lists the zero-distance seed cells.
	Frontier []gridmap.Cell
	// ConnectedCoors lists every reached cell in BFS order, frontier first.
	ConnectedCoors []gridmap.Cell
	// MaxConnDist is the largest finite distance, at least 1.
	MaxConnDist int32
}

// NewRecord returns an empty field for resolution n.
func NewRecord(n int) *Record {
	return &Record{
		Dist:        gridmap.NewFilledGrid(n, Unreachable),
		InRoomDist:  gridmap.NewFilledGrid[float32](n, -1),
		MaxConnDist: 1,
	}
}

// Seed adds cells to the frontier. Each cell's in-room offset is its
// distance from center, less the minimum over this call.
func (r *Record) Seed(m gridmap.Mapper, cells []gridmap.Cell, center r2.Vec) {
	if len(cells) == 0 {
		return
	}
	dists := make([]float64, len(cells))
	minDist := math.Inf(1)
	for i, c := range cells {
		d := r2.Norm(r2.Sub(m.ToCoor(c, false), center))
		dists[i] = d
		minDist = math.Min(minDist, d)
	}
	for i, c := range cells {
		if r.Dist.At(c.X, c.Y) != 0 {
			r.Dist.Set(c.X, c.Y, 0)
			r.Frontier = append(r.Frontier, c)
		}
		r.InRoomDist.Set(c.X, c.Y, float32(dists[i]-minDist))
	}
}

// Expand runs a breadth-first search from the frontier over the movable
// cells of move, filling Dist, ConnectedCoors and MaxConnDist.
func (r *Record) Expand(move *gridmap.Grid[uint8]) {
	que := make([]gridmap.Cell, len(r.Frontier), len(r.Frontier)*4)
	copy(que, r.Frontier)
	r.MaxConnDist = 1
	for ptr := 0; ptr < len(que); ptr++ {
		c := que[ptr]
		next := r.Dist.At(c.X, c.Y) + 1
		for _, d := range dirs {
			t := gridmap.Cell{X: c.X + d.X, Y: c.Y + d.Y}
			if !CanMove(move, t.X, t.Y) || r.Dist.At(t.X, t.Y) != Unreachable {
				continue
			}
			r.Dist.Set(t.X, t.Y, next)
			que = append(que, t)
			if next > r.MaxConnDist {
				r.MaxConnDist = next
			}
		}
	}
	r.ConnectedCoors = que
}

// DistAt returns the hop distance at (x, y), or Unreachable outside the grid.
func (r *Record) DistAt(x, y int) int32 {
	if !r.Dist.Inside(x, y) {
		return Unreachable
	}
	return r.Dist.At(x, y)
}

// IsConnect reports whether (x, y) has a finite distance.
func (r *Record) IsConnect(x, y int) bool {
	return r.DistAt(x, y) != Unreachable
}

// Scaled returns DistAt divided by MaxConnDist, keeping -1 for unreachable
// cells.
func (r *Record) Scaled(x, y int) float64 {
	d := r.DistAt(x, y)
	if d < 0 {
		return float64(d)
	}
	return float64(d) / float64(r.MaxConnDist)
}

// Available returns the connected cells no further than hardness times
// MaxConnDist. A negative hardness, or one of 1 or more, returns every
// connected cell.
func (r *Record) Available(hardness float64) []gridmap.Cell {
	if hardness < 0 || hardness >= 1 {
		return r.ConnectedCoors
	}
	limit := float64(r.MaxConnDist) * hardness
	var out []gridmap.Cell
	for _, c := range r.ConnectedCoors {
		if float64(r.Dist.At(c.X, c.Y)) <= limit {
			out = append(out, c)
		}
	}
	return out
}
