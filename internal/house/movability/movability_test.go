package movability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/obstacle"
	"github.com/banshee-data/navgrid/internal/testutil"
)

// openFloor is a 4m square at resolution 40 with a single blocked cell in
// the middle.
func openFloor() (gridmap.Mapper, *gridmap.Grid[uint8]) {
	m := gridmap.Mapper{Lo: 0, Hi: 4, N: 40}
	obs := gridmap.NewGrid[uint8](m.N)
	obs.Set(20, 20, obstacle.Blocked)
	return m, obs
}

func twoRooms(t *testing.T, door bool) (gridmap.Mapper, *gridmap.Grid[uint8]) {
	t.Helper()
	s := testutil.TwoRooms(door).Scene(t)
	m := gridmap.NewMapper(s.Level, 40)
	return m, obstacle.Build(m, s, obstacle.Params{RobotHeight: 0.75, CarpetHeight: 0.15})
}

func TestExact_TwoRooms(t *testing.T) {
	t.Parallel()
	m, obs := twoRooms(t, false)
	move := Exact(m, obs, 0.1)

	for x := 3; x <= 17; x++ {
		assert.Equal(t, Movable, move.At(x, 10), "kitchen x=%d", x)
	}
	for x := 22; x <= 37; x++ {
		assert.Equal(t, Movable, move.At(x, 10), "bedroom x=%d", x)
	}
	for _, x := range []int{2, 18, 21, 38} {
		assert.Equal(t, Blocked, move.At(x, 10), "too close to a wall x=%d", x)
	}
	assert.Equal(t, Blocked, move.At(10, 2))
	assert.Equal(t, Blocked, move.At(10, 18))
	assert.Equal(t, 15*15+16*15, move.Count(func(v uint8) bool { return v == Movable }))
}

func TestExact_DoorwayIsMovable(t *testing.T) {
	t.Parallel()
	m, obs := twoRooms(t, true)
	move := Exact(m, obs, 0.1)

	for x := 18; x <= 21; x++ {
		for y := 9; y <= 11; y++ {
			assert.Equal(t, Movable, move.At(x, y), "doorway (%d,%d)", x, y)
		}
	}
	assert.Equal(t, Blocked, move.At(19, 8))
	assert.Equal(t, Blocked, move.At(19, 12))
}

func TestExact_ClearanceAroundObstacle(t *testing.T) {
	t.Parallel()
	m, obs := openFloor()
	move := Exact(m, obs, 0.1)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			assert.Equal(t, Blocked, move.At(20+dx, 20+dy))
		}
	}
	assert.Equal(t, Movable, move.At(22, 20))
	assert.Equal(t, Movable, move.At(20, 18))
	assert.Equal(t, Blocked, move.At(0, 5), "edge cell touches outside")
	assert.Equal(t, Movable, move.At(1, 5))
	assert.Equal(t, Blocked, move.At(40, 5))
	assert.Equal(t, Movable, move.At(39, 5))
}

func TestApproximate_DiscDilation(t *testing.T) {
	t.Parallel()
	m, obs := openFloor()

	move := Approximate(m, obs, 0.1)
	assert.Equal(t, Blocked, move.At(20, 20))
	assert.Equal(t, Blocked, move.At(21, 20))
	assert.Equal(t, Blocked, move.At(20, 19))
	assert.Equal(t, Movable, move.At(21, 21), "diagonal lies outside a unit disc")
	assert.Equal(t, Blocked, move.At(0, 10), "outside the grid counts as blocked")
	assert.Equal(t, Movable, move.At(1, 10))

	wide := Approximate(m, obs, 0.2)
	assert.Equal(t, Blocked, wide.At(22, 20))
	assert.Equal(t, Blocked, wide.At(21, 21))
	assert.Equal(t, Movable, wide.At(22, 21))
	assert.Equal(t, Blocked, wide.At(1, 10))
	assert.Equal(t, Movable, wide.At(2, 10))
}

func TestApproximate_SingleCellRobotSkipsDilation(t *testing.T) {
	t.Parallel()
	m, obs := openFloor()
	move := Approximate(m, obs, 0.05)

	assert.Equal(t, Blocked, move.At(20, 20))
	assert.Equal(t, Movable, move.At(21, 20))
	assert.Equal(t, Movable, move.At(0, 0))
}

func TestMovableImpliesFree(t *testing.T) {
	t.Parallel()
	m, obs := twoRooms(t, true)
	for _, approx := range []bool{false, true} {
		move := Build(m, obs, Options{Radius: 0.1, Approximate: approx})
		for i, v := range move.Data {
			if v == Movable {
				require.Equal(t, obstacle.Free, obs.Data[i], "approximate=%v cell %d", approx, i)
			}
		}
	}
}

func TestRegionsRestrictMovableCells(t *testing.T) {
	t.Parallel()
	m, obs := openFloor()
	roi := gridmap.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}

	for _, approx := range []bool{false, true} {
		move := Build(m, obs, Options{Radius: 0.1, Approximate: approx, Regions: []gridmap.Rect{roi}})
		assert.Equal(t, Movable, move.At(5, 5), "approximate=%v", approx)
		assert.Equal(t, Blocked, move.At(15, 15), "approximate=%v", approx)
	}
}

func TestRobotGridSize(t *testing.T) {
	m := gridmap.Mapper{Lo: 0, Hi: 4, N: 40}
	assert.Equal(t, 2, RobotGridSize(m, 0.1))
	assert.Equal(t, 1, RobotGridSize(m, 0.05))
	assert.Equal(t, 2, RobotGridSize(m, 0.125), "half rounds to even")
	assert.Equal(t, 4, RobotGridSize(m, 0.2))
}
