package connectivity

import (
	"github.com/banshee-data/navgrid/internal/house/gridmap"
)

// Mode selects which components FindComponents returns.
type Mode int

const (
	// All returns every component in discovery order.
	All Mode = iota
	// Largest returns only the biggest component. Ties go to the first found.
	Largest
	// Open returns components with a movable neighbour outside the
	// rectangle. With none open it falls back to Largest.
	Open
)

func (m Mode) String() string {
	switch m {
	case All:
		return "all"
	case Largest:
		return "largest"
	case Open:
		return "open"
	}
	return "unknown"
}

var dirs = [4]gridmap.Cell{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}}

// CanMove reports whether (x, y) is inside move and marked movable.
func CanMove(move *gridmap.Grid[uint8], x, y int) bool {
	return move.Inside(x, y) && move.At(x, y) > 0
}

// Components is the result of a component search.
type Components struct {
	Comps [][]gridmap.Cell
	// Fallback is set when Open found no open component and returned the
	// largest closed one instead.
	Fallback bool
}

// Empty reports whether no movable cell was found.
func (c Components) Empty() bool {
	return len(c.Comps) == 0
}

// Cells flattens every returned component into one slice.
func (c Components) Cells() []gridmap.Cell {
	n := 0
	for _, comp := range c.Comps {
		n += len(comp)
	}
	out := make([]gridmap.Cell, 0, n)
	for _, comp := range c.Comps {
		out = append(out, comp...)
	}
	return out
}

// FindComponents flood-fills the movable cells of move confined to r. The
// rectangle may extend past the grid; cells outside are never movable.
func FindComponents(move *gridmap.Grid[uint8], r gridmap.Rect, mode Mode) Components {
	var comps [][]gridmap.Cell
	var open []int
	visit := make(map[gridmap.Cell]struct{})

	for x := r.X1; x <= r.X2; x++ {
		for y := r.Y1; y <= r.Y2; y++ {
			start := gridmap.Cell{X: x, Y: y}
			if !CanMove(move, x, y) {
				continue
			}
			if _, seen := visit[start]; seen {
				continue
			}
			que := []gridmap.Cell{start}
			visit[start] = struct{}{}
			isOpen := false
			for ptr := 0; ptr < len(que); ptr++ {
				c := que[ptr]
				for _, d := range dirs {
					t := gridmap.Cell{X: c.X + d.X, Y: c.Y + d.Y}
					if !CanMove(move, t.X, t.Y) {
						continue
					}
					if !r.Contains(t) {
						isOpen = true
						continue
					}
					if _, seen := visit[t]; !seen {
						visit[t] = struct{}{}
						que = append(que, t)
					}
				}
			}
			if isOpen {
				open = append(open, len(comps))
			}
			comps = append(comps, que)
		}
	}
	if len(comps) == 0 {
		return Components{}
	}

	switch mode {
	case Open:
		if len(open) == 0 {
			return Components{Comps: [][]gridmap.Cell{largest(comps)}, Fallback: true}
		}
		out := make([][]gridmap.Cell, 0, len(open))
		for _, i := range open {
			out = append(out, comps[i])
		}
		return Components{Comps: out}
	case Largest:
		return Components{Comps: [][]gridmap.Cell{largest(comps)}}
	}
	return Components{Comps: comps}
}

func largest(comps [][]gridmap.Cell) []gridmap.Cell {
	best := 0
	for i, c := range comps {
		if len(c) > len(comps[best]) {
			best = i
		}
	}
	return comps[best]
}
