package obstacle

import (
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/scene"
)

// Cell values of an obstacle grid.
const (
	Free    uint8 = 0
	Blocked uint8 = 1
)

// Debug layer values, one per rasterisation stage.
const (
	DebugFree   float32 = 0
	DebugWall   float32 = 1
	DebugDoor   float32 = 0.5
	DebugObject float32 = 0.8
)

// Params selects which objects collide with the robot.
type Params struct {
	RobotHeight  float64
	CarpetHeight float64
}

// Collides reports whether o blocks a robot: solid, not ignorable, and
// vertically overlapping the band between carpet and robot height.
func (p Params) Collides(o scene.Object) bool {
	if o.Door || o.Ignored {
		return false
	}
	return o.BBox.Min.Y < p.RobotHeight && o.BBox.Max.Y > p.CarpetHeight
}

// Layers holds the result of a build. Debug is nil unless requested.
type Layers struct {
	Obstacles *gridmap.Grid[uint8]
	Walls     *gridmap.Grid[bool]
	Debug     *gridmap.Grid[float32]
}

// Build rasterises sc at the resolution of m.
func Build(m gridmap.Mapper, sc *scene.Scene, p Params) *gridmap.Grid[uint8] {
	return build(m, sc, p, false).Obstacles
}

// BuildDebug is Build plus the wall mask and a float debug layer that tells
// walls, carved doors and objects apart.
func BuildDebug(m gridmap.Mapper, sc *scene.Scene, p Params) Layers {
	return build(m, sc, p, true)
}

func build(m gridmap.Mapper, sc *scene.Scene, p Params, debug bool) Layers {
	l := Layers{
		Obstacles: gridmap.NewFilledGrid(m.N, Blocked),
		Walls:     gridmap.NewGrid[bool](m.N),
	}
	if debug {
		l.Debug = gridmap.NewFilledGrid(m.N, DebugWall)
	}
	fill := func(r gridmap.Rect, v uint8, dv float32) {
		l.Obstacles.Fill(r, v)
		if l.Debug != nil {
			l.Debug.Fill(r, dv)
		}
	}

	fill(m.RescaleBox(sc.Level), Free, DebugFree)

	for _, w := range sc.Walls {
		r := m.RescaleBox(w)
		fill(r, Blocked, DebugWall)
		l.Walls.Fill(r, true)
	}

	for _, o := range sc.Objects {
		if o.Door {
			fill(carveDoor(l.Walls, m.RescaleBox(o.BBox)), Free, DebugDoor)
		}
	}

	for _, o := range sc.Objects {
		if p.Collides(o) {
			fill(m.RescaleBox(o.BBox), Blocked, DebugObject)
		}
	}
	return l
}

// carveDoor grows the door rectangle along its short axis through the wall
// cells on either side, measured along the door's centre line.
func carveDoor(walls *gridmap.Grid[bool], r gridmap.Rect) gridmap.Rect {
	cx := floorDiv(r.X1+r.X2, 2)
	cy := floorDiv(r.Y1+r.Y2, 2)
	wall := func(x, y int) bool {
		return walls.Inside(x, y) && walls.At(x, y)
	}
	if r.X2-r.X1 < r.Y2-r.Y1 {
		for r.X1-1 >= 0 && wall(r.X1-1, cy) {
			r.X1--
		}
		for r.X2+1 <= walls.N && wall(r.X2+1, cy) {
			r.X2++
		}
	} else {
		for r.Y1-1 >= 0 && wall(cx, r.Y1-1) {
			r.Y1--
		}
		for r.Y2+1 <= walls.N && wall(cx, r.Y2+1) {
			r.Y2++
		}
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
