package movability

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/obstacle"
)

// Cell values of a movability grid.
const (
	Blocked uint8 = 0
	Movable uint8 = 1
)

// Options configures a movability build.
type Options struct {
	Radius      float64
	Approximate bool
	// Regions restricts which cells may become movable. Empty means the
	// whole grid.
	Regions []gridmap.Rect
}

// Build dispatches to Exact or Approximate.
func Build(m gridmap.Mapper, obs *gridmap.Grid[uint8], opts Options) *gridmap.Grid[uint8] {
	if opts.Approximate {
		return Approximate(m, obs, opts.Radius, opts.Regions...)
	}
	return Exact(m, obs, opts.Radius, opts.Regions...)
}

func regionsOrAll(m gridmap.Mapper, regions []gridmap.Rect) []gridmap.Rect {
	if len(regions) == 0 {
		return []gridmap.Rect{m.Bounds()}
	}
	return regions
}

// Exact marks a free cell movable when a disc of the given radius centred on
// the cell touches no lattice corner of a blocked or out-of-bounds cell.
func Exact(m gridmap.Mapper, obs *gridmap.Grid[uint8], radius float64, regions ...gridmap.Rect) *gridmap.Grid[uint8] {
	move := gridmap.NewGrid[uint8](m.N)
	for _, roi := range regionsOrAll(m, regions) {
		roi = roi.Clip(m.N)
		for x := roi.X1; x <= roi.X2; x++ {
			for y := roi.Y1; y <= roi.Y2; y++ {
				if obs.At(x, y) != obstacle.Free {
					continue
				}
				c := m.ToCoor(gridmap.Cell{X: x, Y: y}, true)
				if !occupied(m, obs, c, radius) {
					move.Set(x, y, Movable)
				}
			}
		}
	}
	return move
}

// occupied reports whether a robot standing at c would touch an obstacle.
func occupied(m gridmap.Mapper, obs *gridmap.Grid[uint8], c r2.Vec, radius float64) bool {
	r := m.Rescale(c.X-radius, c.Y-radius, c.X+radius, c.Y+radius)
	rr := radius * radius
	for x := r.X1; x <= r.X2; x++ {
		for y := r.Y1; y <= r.Y2; y++ {
			if obs.Inside(x, y) && obs.At(x, y) == obstacle.Free {
				continue
			}
			if touchesCell(m, c, x, y, rr) {
				return true
			}
		}
	}
	return false
}

func touchesCell(m gridmap.Mapper, c r2.Vec, gx, gy int, rr float64) bool {
	for x := gx; x <= gx+1; x++ {
		for y := gy; y <= gy+1; y++ {
			corner := m.ToCoor(gridmap.Cell{X: x, Y: y}, false)
			d := r2.Sub(corner, c)
			if r2.Dot(d, d) <= rr {
				return true
			}
		}
	}
	return false
}

// RobotGridSize is the robot diameter in cells, rounded half to even.
func RobotGridSize(m gridmap.Mapper, radius float64) int {
	return int(math.RoundToEven(radius * 2 * float64(m.N) / m.Span()))
}

// Approximate marks free cells movable, then, when the robot spans more than
// one cell, dilates the blocked cells by a disc of half the robot grid size.
// Cells past the grid edge count as blocked during dilation.
func Approximate(m gridmap.Mapper, obs *gridmap.Grid[uint8], radius float64, regions ...gridmap.Rect) *gridmap.Grid[uint8] {
	move := gridmap.NewGrid[uint8](m.N)
	for _, roi := range regionsOrAll(m, regions) {
		roi = roi.Clip(m.N)
		for x := roi.X1; x <= roi.X2; x++ {
			for y := roi.Y1; y <= roi.Y2; y++ {
				if obs.At(x, y) == obstacle.Free {
					move.Set(x, y, Movable)
				}
			}
		}
	}
	if size := RobotGridSize(m, radius); size > 1 {
		move = erode(move, size/2)
	}
	return move
}

// erode keeps a movable cell only if every cell within Euclidean distance k
// is movable. Row prefix sums of blocked cells make each disc row a single
// range query.
func erode(move *gridmap.Grid[uint8], k int) *gridmap.Grid[uint8] {
	n := move.N
	side := n + 1
	prefix := make([]int32, side*(side+1))
	for x := 0; x < side; x++ {
		row := prefix[x*(side+1) : (x+1)*(side+1)]
		for y := 0; y < side; y++ {
			row[y+1] = row[y]
			if move.At(x, y) != Movable {
				row[y+1]++
			}
		}
	}
	blockedIn := func(x, y1, y2 int) bool {
		if x < 0 || x > n || y1 < 0 || y2 > n {
			return true
		}
		row := prefix[x*(side+1):]
		return row[y2+1]-row[y1] > 0
	}

	halfWidth := make([]int, k+1)
	for dx := 0; dx <= k; dx++ {
		halfWidth[dx] = int(math.Floor(math.Sqrt(float64(k*k - dx*dx))))
	}

	out := gridmap.NewGrid[uint8](n)
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			if move.At(x, y) != Movable {
				continue
			}
			ok := true
			for dx := -k; dx <= k && ok; dx++ {
				w := halfWidth[abs(dx)]
				if blockedIn(x+dx, y-w, y+w) {
					ok = false
				}
			}
			if ok {
				out.Set(x, y, Movable)
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
