package gridmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func levelBox(x1, z1, x2, z2 float64) r3.Box {
	return r3.Box{Min: r3.Vec{X: x1, Y: 0, Z: z1}, Max: r3.Vec{X: x2, Y: 3, Z: z2}}
}

func TestNewMapper_SquaresFrame(t *testing.T) {
	m := NewMapper(levelBox(-2, 1, 6, 4), 100)
	assert.Equal(t, -2.0, m.Lo)
	assert.Equal(t, 6.0, m.Hi)
	assert.Equal(t, 8.0, m.Span())
	assert.InDelta(t, 0.08, m.CellSize(), 1e-12)
}

func TestRoundTrip_CellCentre(t *testing.T) {
	for _, n := range []int{7, 99, 100, 1000} {
		m := NewMapper(levelBox(-3.17, -1.5, 12.9, 8.31), n)
		for x := 0; x <= n; x += max(1, n/37) {
			for y := 0; y <= n; y += max(1, n/41) {
				c := Cell{X: x, Y: y}
				got := m.ToGrid(m.ToCoor(c, true))
				require.Equal(t, c, got, "n=%d", n)
			}
		}
	}
}

func TestToGrid_BoundaryEpsilon(t *testing.T) {
	m := NewMapper(levelBox(0, 0, 1, 1), 10)
	// 0.3 / 1 * 10 evaluates to 2.9999999999999996 in float64.
	assert.Equal(t, Cell{X: 3, Y: 3}, m.ToGrid(r2.Vec{X: 0.3, Y: 0.3}))
	assert.Equal(t, Cell{X: 0, Y: 10}, m.ToGrid(r2.Vec{X: 0, Y: 1}))
}

func TestToCoor_Corner(t *testing.T) {
	m := NewMapper(levelBox(1, 1, 3, 3), 4)
	assert.Equal(t, r2.Vec{X: 1.5, Y: 2}, m.ToCoor(Cell{X: 1, Y: 2}, false))
	assert.Equal(t, r2.Vec{X: 1.75, Y: 2.25}, m.ToCoor(Cell{X: 1, Y: 2}, true))
}

func TestRescaleBox_UsesGroundPlane(t *testing.T) {
	m := NewMapper(levelBox(0, 0, 10, 10), 10)
	b := r3.Box{Min: r3.Vec{X: 2.5, Y: -100, Z: 4}, Max: r3.Vec{X: 5, Y: 100, Z: 7.2}}
	assert.Equal(t, Rect{X1: 2, Y1: 4, X2: 5, Y2: 7}, m.RescaleBox(b))
}

func TestWithResolution_SharesFrame(t *testing.T) {
	fine := NewMapper(levelBox(0, 0, 10, 10), 1000)
	coarse := fine.WithResolution(99)
	assert.Equal(t, fine.Lo, coarse.Lo)
	assert.Equal(t, fine.Hi, coarse.Hi)
	assert.Equal(t, Cell{X: 49, Y: 99}, coarse.ToGrid(r2.Vec{X: 5, Y: 10}))
}

func TestInside(t *testing.T) {
	m := NewMapper(levelBox(0, 0, 1, 1), 5)
	assert.True(t, m.Inside(Cell{X: 0, Y: 5}))
	assert.False(t, m.Inside(Cell{X: 6, Y: 0}))
	assert.False(t, m.Inside(Cell{X: 0, Y: -1}))
	assert.Equal(t, Rect{0, 0, 5, 5}, m.Bounds())
}

func TestBoxCenter(t *testing.T) {
	b := r3.Box{Min: r3.Vec{X: 1, Y: 0, Z: 2}, Max: r3.Vec{X: 3, Y: 2, Z: 6}}
	assert.Equal(t, r2.Vec{X: 2, Y: 4}, BoxCenter(b))
}
