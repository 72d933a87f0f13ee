package house

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/config"
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/obstacle"
	"github.com/banshee-data/navgrid/internal/house/scene"
	"github.com/banshee-data/navgrid/internal/monitoring"
	"github.com/banshee-data/navgrid/internal/testutil"
)

func TestMain(m *testing.M) {
	restore := monitoring.Mute()
	code := m.Run()
	restore()
	os.Exit(code)
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func floatp(v float64) *float64 { return &v }

// smallConfig uses 0.1m collision cells and 0.2m eagle cells for the 4m
// fixtures.
func smallConfig() *config.GridConfig {
	c := config.DefaultGridConfig()
	c.CollideRes = intp(40)
	c.EagleRes = intp(21)
	return c
}

func newHouse(t *testing.T, b *testutil.HouseBuilder, opts Options) *House {
	t.Helper()
	if opts.Config == nil {
		opts.Config = smallConfig()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	h, err := New(b.Scene(t), opts)
	require.NoError(t, err)
	return h
}

func TestNew_DefaultTargetField(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})

	assert.Equal(t, []scene.RoomType{scene.Kitchen, scene.Bedroom}, h.DesiredRoomTypes())
	assert.Equal(t, scene.Kitchen, h.DefaultRoomType())
	assert.Equal(t, scene.Kitchen, h.TargetRoomType())

	assert.Equal(t, int32(0), h.Dist(10, 10))
	assert.Equal(t, int32(10), h.Dist(30, 10))
	assert.Equal(t, int32(23), h.MaxConnDist())
	assert.InDelta(t, 10.0/23.0, h.ScaledDist(30, 10), 1e-12)
	assert.Equal(t, int32(-1), h.Dist(10, 30))
	assert.Equal(t, -1.0, h.ScaledDist(-1, 0))
	assert.True(t, h.CanMove(10, 10))
	assert.False(t, h.CanMove(0, 0))
	assert.False(t, h.CanMove(41, 10))
	assert.True(t, h.Inside(40, 40))
}

func TestDoorConnectsRooms(t *testing.T) {
	withDoor := newHouse(t, testutil.TwoRooms(true), Options{})
	assert.True(t, withDoor.IsConnect(30, 10), "bedroom reaches the kitchen through the door")

	noDoor := newHouse(t, testutil.TwoRooms(false), Options{})
	assert.True(t, noDoor.IsConnect(10, 10))
	assert.False(t, noDoor.IsConnect(30, 10), "no 4-connected path without a door")
	for _, c := range noDoor.ConnectedCoors() {
		assert.Less(t, c.X, 19, "field leaked past the wall at %v", c)
	}
}

func TestSetTargetRoom_Idempotent(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	first := h.current
	frontier := append([]gridmap.Cell(nil), h.Frontier()...)
	maxDist := h.MaxConnDist()

	changed, err := h.SetTargetRoom("Kitchen")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, first, h.current)
	assert.Equal(t, frontier, h.Frontier())
	assert.Equal(t, maxDist, h.MaxConnDist())
	assert.Len(t, h.records, 1)

	changed, err = h.SetTargetRoom("bedroom")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, scene.Bedroom, h.TargetRoomType())
	assert.Equal(t, int32(0), h.Dist(30, 10))
	assert.Greater(t, h.Dist(10, 10), int32(0))

	changed, err = h.SetTargetRoom("kitchen")
	require.NoError(t, err)
	assert.True(t, changed, "switching back swaps in the cached field")
	assert.Same(t, first, h.current)
	assert.Len(t, h.records, 2)
}

func TestSetTargetRoom_Errors(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})

	_, err := h.SetTargetRoom("garage")
	assert.True(t, errors.Is(err, scene.ErrUnsupportedRoomType))

	_, err = h.SetTargetRoom("living_room")
	assert.True(t, errors.Is(err, ErrNoTargetRoom))

	_, err = h.SetTargetRoom("Toilet")
	assert.True(t, errors.Is(err, ErrNoTargetRoom))

	assert.Equal(t, scene.Kitchen, h.TargetRoomType(), "failed calls leave the active target alone")
}

func TestCacheAllTargets(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	require.NoError(t, h.CacheAllTargets())

	assert.Equal(t, []scene.RoomType{scene.Kitchen, scene.Bedroom}, h.CachedTargets())
	assert.Equal(t, scene.Kitchen, h.TargetRoomType())
	assert.Equal(t, int32(0), h.Dist(10, 10))
}

func TestScaledDistRange(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	for _, tp := range []string{"kitchen", "bedroom"} {
		_, err := h.SetTargetRoom(tp)
		require.NoError(t, err)
		for x := 0; x <= 40; x++ {
			for y := 0; y <= 40; y++ {
				if h.Dist(x, y) < 0 {
					assert.Equal(t, -1.0, h.ScaledDist(x, y))
					continue
				}
				s := h.ScaledDist(x, y)
				assert.True(t, s >= 0 && s <= 1, "%s (%d,%d) scaled %v", tp, x, y, s)
			}
		}
		for _, c := range h.Frontier() {
			assert.Equal(t, 0.0, h.ScaledDist(c.X, c.Y))
			assert.GreaterOrEqual(t, h.InRoomDist(c.X, c.Y), float32(0))
		}
	}
}

func TestClosedRoomWarns(t *testing.T) {
	var warnings []string
	prev := monitoring.Warnf
	defer func() { monitoring.Warnf = prev }()
	monitoring.SetWarnLogger(func(format string, v ...interface{}) {
		warnings = append(warnings, format)
	})

	h := newHouse(t, testutil.TwoRooms(false), Options{})
	assert.Len(t, h.ConnectedCoors(), 15*15)
	assert.NotEmpty(t, warnings)
}

func TestNew_Errors(t *testing.T) {
	garage := testutil.NewHouse("garage", 0, 0, 4, 2).
		OuterWalls(0.1).
		Room("r_garage", []string{"Garage"}, 0, 0, 4, 2).
		Scene(t)
	_, err := New(garage, Options{Config: smallConfig()})
	assert.True(t, errors.Is(err, ErrNoDesiredRoom))

	small := smallConfig()
	small.IgnoreSmallHouse = boolp(true)
	noKitchen := testutil.NewHouse("flat", 0, 0, 4, 2).
		OuterWalls(0.1).
		Room("r_bed", []string{"Bedroom"}, 0, 0, 2, 2).
		Room("r_bath", []string{"Bathroom"}, 2, 0, 4, 2).
		Scene(t)
	_, err = New(noKitchen, Options{Config: small})
	assert.True(t, errors.Is(err, ErrSmallHouse))

	_, err = New(testutil.TwoRooms(true).Scene(t), Options{Config: small})
	assert.NoError(t, err)

	bad := smallConfig()
	bad.CollideRes = intp(1)
	_, err = New(testutil.TwoRooms(true).Scene(t), Options{Config: bad})
	assert.Error(t, err)
}

func TestNew_NoFrontier(t *testing.T) {
	cluttered := testutil.NewHouse("cluttered", 0, 0, 4, 2).
		OuterWalls(0.1).
		Room("r_kitchen", []string{"Kitchen"}, 0, 0, 2, 2).
		Room("r_bedroom", []string{"Bedroom"}, 2, 0, 4, 2).
		Object("o_island", testutil.ModelTable, 0, 0, 0, 2, 0.9, 2).
		Scene(t)
	_, err := New(cluttered, Options{Config: smallConfig()})
	assert.True(t, errors.Is(err, ErrNoFrontier))
}

func TestNew_WithoutTarget(t *testing.T) {
	cfg := smallConfig()
	cfg.SetTarget = boolp(false)
	h := newHouse(t, testutil.TwoRooms(true), Options{Config: cfg})

	assert.Equal(t, scene.RoomType(""), h.TargetRoomType())
	assert.Equal(t, int32(-1), h.Dist(10, 10))
	assert.Equal(t, -1.0, h.ScaledDist(10, 10))
	assert.False(t, h.IsConnect(10, 10))
	assert.Zero(t, h.MaxConnDist())
	assert.Nil(t, h.ConnectedCoors())
	assert.Nil(t, h.AvailableCoors(0.5))
	assert.Equal(t, float32(-1), h.InRoomDist(10, 10))
}

func TestRandomLocation(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	// Kitchen interior plus the half of the doorway inside the kitchen box.
	kitchen := gridmap.Rect{X1: 3, Y1: 3, X2: 20, Y2: 17}

	for i := 0; i < 50; i++ {
		p, ok := h.RandomLocation(scene.Kitchen)
		require.True(t, ok)
		c := h.ToGrid(p)
		assert.True(t, kitchen.Contains(c), "sample %v outside kitchen interior", c)
		assert.True(t, h.CanMove(c.X, c.Y))
		assert.Equal(t, h.ToCoor(c, true), p)
	}

	_, ok := h.RandomLocation(scene.Bathroom)
	assert.False(t, ok)

	room := h.Scene.RoomsOfType(scene.Bedroom)[0]
	p, ok := h.RandomLocationForRoom(room)
	require.True(t, ok)
	assert.GreaterOrEqual(t, h.ToGrid(p).X, 20)
	assert.Contains(t, h.roomLocs, room.ID)
}

func TestRandomLocationForRoom_NoSpace(t *testing.T) {
	b := testutil.TwoRooms(true).
		Room("r_pantry", []string{"Storage"}, 3.0, 0.5, 3.1, 0.6).
		Object("o_shelf", testutil.ModelTable, 2.9, 0, 0.4, 3.2, 1.5, 0.7)
	h := newHouse(t, b, Options{})

	var pantry scene.Room
	for _, r := range h.Scene.Rooms {
		if r.ID == "r_pantry" {
			pantry = r
		}
	}
	_, ok := h.RandomLocationForRoom(pantry)
	assert.False(t, ok)
}

func TestRoomTypeMap(t *testing.T) {
	cfg := smallConfig()
	cfg.GenRoomTypeMap = boolp(true)
	b := testutil.NewHouse("yard", 0, 0, 4, 2).
		OuterWalls(0.1).
		Room("r_kitchen", []string{"Kitchen", "Office"}, 0, 0, 2, 2)
	h := newHouse(t, b, Options{Config: cfg})
	rt := h.RoomTypes()
	require.NotNil(t, rt)

	indoor := uint16(1 << scene.BitIndoor)
	assert.Equal(t, indoor|1<<scene.BitKitchen|1<<scene.BitOffice, rt.At(10, 10))
	assert.Equal(t, uint16(1<<scene.BitOutdoor), rt.At(30, 10))
	assert.Zero(t, rt.At(0, 0), "blocked cells carry no bits")
}

func TestRoomTypeMap_OverlappingRooms(t *testing.T) {
	cfg := smallConfig()
	cfg.GenRoomTypeMap = boolp(true)
	h := newHouse(t, testutil.TwoRooms(true), Options{Config: cfg})
	rt := h.RoomTypes()

	kitchen := uint16(1<<scene.BitIndoor | 1<<scene.BitKitchen)
	bedroom := uint16(1<<scene.BitIndoor | 1<<scene.BitBedroom)
	assert.Equal(t, kitchen, rt.At(10, 10))
	assert.Equal(t, bedroom, rt.At(30, 10))
	assert.Equal(t, kitchen|bedroom, rt.At(20, 10), "the doorway lies in both rooms")

	assert.Nil(t, newHouse(t, testutil.TwoRooms(true), Options{}).RoomTypes())
}

func TestEagleMap(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	e := h.Eagle()
	require.Equal(t, 20, e.Mapper.N)

	assert.Equal(t, obstacle.Free, e.Obstacles.At(5, 5))
	assert.Equal(t, obstacle.Blocked, e.Obstacles.At(5, 15), "outside the footprint")
	assert.Equal(t, uint8(1), e.Target.At(5, 5))
	assert.Equal(t, uint8(0), e.Target.At(15, 5))

	_, err := h.SetTargetRoom("bedroom")
	require.NoError(t, err)
	assert.Equal(t, uint8(0), e.Target.At(5, 5))
	assert.Equal(t, uint8(1), e.Target.At(15, 5))

	assert.Equal(t, gridmap.Cell{X: 5, Y: 5}, h.EagleGrid(r2.Vec{X: 1.05, Y: 1.05}))
	assert.Equal(t, gridmap.Cell{X: 5, Y: 5}, h.EagleGridOf(gridmap.Cell{X: 10, Y: 10}))
}

func TestSetTargetPoint(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})

	require.True(t, h.SetTargetPoint(gridmap.Cell{X: 30, Y: 10}, 2, 2))
	assert.Equal(t, scene.RoomType(""), h.TargetRoomType())
	assert.Equal(t, int32(0), h.Dist(30, 10))
	assert.Greater(t, h.Dist(10, 10), int32(0))
	assert.Len(t, h.records, 1, "point fields are not cached")

	assert.False(t, h.SetTargetPoint(gridmap.Cell{X: 10, Y: 30}, 2, 2))
	assert.Equal(t, int32(0), h.Dist(30, 10), "failed point target keeps the previous field")

	changed, err := h.SetTargetRoom("kitchen")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int32(0), h.Dist(10, 10))
}

func TestCachedField_DoesNotActivate(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	require.NoError(t, h.CacheAllTargets())

	rec, ok := h.CachedField(scene.Bedroom)
	require.True(t, ok)
	assert.Equal(t, int32(0), rec.DistAt(30, 10))
	assert.Equal(t, scene.Kitchen, h.TargetRoomType())
	assert.Equal(t, int32(0), h.Dist(10, 10))

	_, ok = h.CachedField(scene.Bathroom)
	assert.False(t, ok)
}

func TestAvailableCoors(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	all := h.AvailableCoors(-1)
	assert.Equal(t, h.ConnectedCoors(), all)

	half := h.AvailableCoors(0.5)
	assert.NotEmpty(t, half)
	assert.Less(t, len(half), len(all))
	for _, c := range half {
		assert.LessOrEqual(t, float64(h.Dist(c.X, c.Y)), 0.5*float64(h.MaxConnDist()))
	}
}

func TestDebugInfo(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{DebugInfo: true})
	require.NotNil(t, h.DebugLayer())
	assert.Equal(t, obstacle.DebugDoor, h.DebugLayer().At(19, 10))
	assert.Nil(t, newHouse(t, testutil.TwoRooms(true), Options{}).DebugLayer())
}

func TestHasRoomType(t *testing.T) {
	b := testutil.TwoRooms(true).Room("r_wc", []string{"Toilet"}, 3, 1.5, 3.5, 2)
	h := newHouse(t, b, Options{})

	assert.True(t, h.HasRoomType("KITCHEN"))
	assert.True(t, h.HasRoomType("bathroom"))
	assert.True(t, h.HasRoomType("toilet"))
	assert.False(t, h.HasRoomType("office"))
	assert.False(t, h.HasRoomType("dining_room"))
}

func TestToGridToCoorRoundTrip(t *testing.T) {
	h := newHouse(t, testutil.TwoRooms(true), Options{})
	for x := 0; x <= 40; x += 3 {
		for y := 0; y <= 40; y += 7 {
			c := gridmap.Cell{X: x, Y: y}
			assert.Equal(t, c, h.ToGrid(h.ToCoor(c, true)))
		}
	}
}
