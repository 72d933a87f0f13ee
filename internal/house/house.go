package house

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/banshee-data/navgrid/internal/config"
	"github.com/banshee-data/navgrid/internal/house/connectivity"
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/movability"
	"github.com/banshee-data/navgrid/internal/house/obstacle"
	"github.com/banshee-data/navgrid/internal/house/scene"
	"github.com/banshee-data/navgrid/internal/monitoring"
	"github.com/banshee-data/navgrid/internal/timeutil"
)

var (
	// ErrNoDesiredRoom is returned for a house without any target room type.
	ErrNoDesiredRoom = errors.New("house has no room of an allowed target type")
	// ErrSmallHouse is returned when IgnoreSmallHouse rejects a house.
	ErrSmallHouse = errors.New("house has too few target room types")
	// ErrNoTargetRoom is returned when a target type has no room in the house.
	ErrNoTargetRoom = errors.New("no room of requested type in house")
	// ErrNoFrontier is returned when no room of a type has a movable cell.
	ErrNoFrontier = connectivity.ErrNoFrontier
)

// Options configures New. The zero value builds with default config, no
// cache, the real clock and a time-seeded random source.
type Options struct {
	Config *config.GridConfig
	// Store, when set, is consulted for the obstacle and movability grids
	// before building them and receives freshly built grids.
	Store SnapshotStore
	Clock timeutil.Clock
	Rand  *rand.Rand
	// Regions limits which cells may become movable. Empty means all.
	// Non-empty Regions bypass Store.
	Regions []gridmap.Rect
	// DebugInfo keeps the float debug layer of the obstacle build. It
	// forces a rebuild even when Store holds the grids.
	DebugInfo bool
}

// House is the navigation substrate of one building.
//
// A House is not safe for concurrent use: SetTargetRoom and the sampling
// methods mutate per-instance caches. Separate Houses share no state and
// may be built and used in parallel.
type House struct {
	Scene *scene.Scene

	cfg    *config.GridConfig
	mapper gridmap.Mapper
	clock  timeutil.Clock
	rng    *rand.Rand

	obstacles *gridmap.Grid[uint8]
	movable   *gridmap.Grid[uint8]
	debug     *gridmap.Grid[float32]
	roomTypes *gridmap.Grid[uint16]
	eagle     *EagleMap

	desired     []scene.RoomType
	defaultType scene.RoomType
	targetType  scene.RoomType
	current     *connectivity.Record
	records     map[scene.RoomType]*connectivity.Record
	roomLocs    map[string][]gridmap.Cell
}

// New builds the grids of sc and, unless disabled, activates the default
// target room type.
func New(sc *scene.Scene, opts Options) (*House, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGridConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid config: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}

	h := &House{
		Scene:    sc,
		cfg:      cfg,
		mapper:   gridmap.NewMapper(sc.Level, cfg.GetCollideRes()),
		clock:    clock,
		rng:      rng,
		records:  make(map[scene.RoomType]*connectivity.Record),
		roomLocs: make(map[string][]gridmap.Cell),
	}

	h.desired = sc.DesiredRoomTypes()
	if len(h.desired) == 0 {
		return nil, fmt.Errorf("%w: house=%s", ErrNoDesiredRoom, sc.ID)
	}
	h.defaultType = h.desired[0]
	if cfg.GetIgnoreSmallHouse() && (len(h.desired) < 2 || !sc.HasRoomType(scene.Kitchen)) {
		return nil, fmt.Errorf("%w: house=%s types=%v", ErrSmallHouse, sc.ID, h.desired)
	}

	sw := timeutil.StartStopwatch(clock)
	h.eagle = newEagleMap(h.mapper.WithResolution(cfg.GetEagleRes()-1), sc, h.obstacleParams())
	monitoring.Logf("[House] eagle map built: house=%s res=%d elapsed=%v", sc.ID, cfg.GetEagleRes(), sw.Lap())

	if err := h.buildGrids(opts); err != nil {
		return nil, err
	}

	if cfg.GetGenRoomTypeMap() {
		h.roomTypes = RoomTypeMap(h.mapper, sc, h.movable)
		monitoring.Logf("[House] room type map built: house=%s elapsed=%v", sc.ID, sw.Lap())
	}

	if cfg.GetSetTarget() {
		if _, err := h.SetTargetRoom(string(h.defaultType)); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *House) obstacleParams() obstacle.Params {
	return obstacle.Params{RobotHeight: h.cfg.GetRobotHeight(), CarpetHeight: h.cfg.GetCarpetHeight()}
}

// Key is the cache key of this house's grid configuration.
func (h *House) Key() GridKey {
	return GridKey{
		HouseID:      h.Scene.ID,
		Resolution:   h.mapper.N,
		RobotRadius:  h.cfg.GetRobotRadius(),
		RobotHeight:  h.cfg.GetRobotHeight(),
		CarpetHeight: h.cfg.GetCarpetHeight(),
		Approximate:  h.cfg.GetApproximateMovable(),
	}
}

func (h *House) buildGrids(opts Options) error {
	key := h.Key()
	// Region-restricted grids are not described by the key.
	store := opts.Store
	if len(opts.Regions) > 0 {
		store = nil
	}
	if store != nil && !opts.DebugInfo {
		snap, err := store.GetGridSnapshot(key)
		if err != nil {
			return fmt.Errorf("failed to load grid cache: %w", err)
		}
		if snap != nil {
			obs, move, err := snap.Grids()
			if err == nil {
				h.obstacles, h.movable = obs, move
				monitoring.Logf("[House] grids restored from cache: key=%s build=%s", key, snap.BuildID)
				return nil
			}
			monitoring.Warnf("[House] ignoring unreadable grid cache: key=%s err=%v", key, err)
		}
	}

	sw := timeutil.StartStopwatch(h.clock)
	if opts.DebugInfo {
		l := obstacle.BuildDebug(h.mapper, h.Scene, h.obstacleParams())
		h.obstacles, h.debug = l.Obstacles, l.Debug
	} else {
		h.obstacles = obstacle.Build(h.mapper, h.Scene, h.obstacleParams())
	}
	monitoring.Logf("[House] obstacle map built: house=%s res=%d elapsed=%v", h.Scene.ID, h.mapper.N, sw.Lap())

	h.movable = movability.Build(h.mapper, h.obstacles, movability.Options{
		Radius:      h.cfg.GetRobotRadius(),
		Approximate: h.cfg.GetApproximateMovable(),
		Regions:     opts.Regions,
	})
	monitoring.Logf("[House] movability map built: house=%s approximate=%t movable=%d elapsed=%v",
		h.Scene.ID, h.cfg.GetApproximateMovable(), h.movable.Count(func(v uint8) bool { return v > 0 }), sw.Lap())

	if store == nil {
		return nil
	}
	snap, err := NewGridSnapshot(key, h.obstacles, h.movable)
	if err != nil {
		return err
	}
	snap.BuildID = uuid.NewString()
	snap.CreatedUnixNanos = h.clock.Now().UnixNano()
	id, err := store.InsertGridSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to persist grid cache: %w", err)
	}
	monitoring.Logf("[House] persisted grid cache: key=%s id=%d build=%s obstacle_blob=%d movability_blob=%d bytes",
		key, id, snap.BuildID, len(snap.ObstacleBlob), len(snap.MovabilityBlob))
	return nil
}
