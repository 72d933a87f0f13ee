package gridmap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon absorbs floating point rounding so a coordinate sitting exactly on
// a cell boundary always lands in the same cell.
const epsilon = 1e-9

// Cell is a grid index. X follows world X, Y follows world Z.
type Cell struct {
	X, Y int
}

// Mapper converts between world coordinates on the ground plane and grid
// indices for an (N+1)x(N+1) lattice.
//
// The frame is squared: Lo and Hi are taken over both horizontal axes of the
// level box, so a non-square building is mapped into a square region.
type Mapper struct {
	Lo, Hi float64
	N      int
}

// NewMapper builds a Mapper for the level bounding box at resolution n.
// The box is in scene coordinates where Y is up.
func NewMapper(level r3.Box, n int) Mapper {
	return Mapper{
		Lo: math.Min(level.Min.X, level.Min.Z),
		Hi: math.Max(level.Max.X, level.Max.Z),
		N:  n,
	}
}

// WithResolution returns a Mapper over the same square frame at resolution n.
func (m Mapper) WithResolution(n int) Mapper {
	m.N = n
	return m
}

// Span is the side length of the square frame in meters.
func (m Mapper) Span() float64 {
	return m.Hi - m.Lo
}

// CellSize is the side length of one grid cell in meters.
func (m Mapper) CellSize() float64 {
	return m.Span() / float64(m.N)
}

func (m Mapper) index(v float64) int {
	return int(math.Floor((v-m.Lo)/m.Span()*float64(m.N) + epsilon))
}

// ToGrid converts a world point (X, Z) to its grid cell.
func (m Mapper) ToGrid(p r2.Vec) Cell {
	return Cell{X: m.index(p.X), Y: m.index(p.Y)}
}

// ToCoor converts a grid cell to world coordinates. With center set the
// cell centre is returned, otherwise its low corner.
func (m Mapper) ToCoor(c Cell, center bool) r2.Vec {
	det := m.CellSize()
	p := r2.Vec{X: float64(c.X)*det + m.Lo, Y: float64(c.Y)*det + m.Lo}
	if center {
		p.X += 0.5 * det
		p.Y += 0.5 * det
	}
	return p
}

// Rescale maps a world rectangle to the inclusive grid rectangle covering it.
func (m Mapper) Rescale(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: m.index(x1), Y1: m.index(y1), X2: m.index(x2), Y2: m.index(y2)}
}

// RescaleBox maps the ground-plane footprint of a scene box.
func (m Mapper) RescaleBox(b r3.Box) Rect {
	return m.Rescale(b.Min.X, b.Min.Z, b.Max.X, b.Max.Z)
}

// Inside reports whether c is a valid index of the lattice.
func (m Mapper) Inside(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X <= m.N && c.Y <= m.N
}

// Bounds is the rectangle covering the whole lattice.
func (m Mapper) Bounds() Rect {
	return Rect{X1: 0, Y1: 0, X2: m.N, Y2: m.N}
}

// BoxCenter returns the ground-plane centre of a scene box.
func BoxCenter(b r3.Box) r2.Vec {
	c := r3.Scale(0.5, r3.Add(b.Min, b.Max))
	return r2.Vec{X: c.X, Y: c.Z}
}
