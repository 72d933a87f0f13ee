package house

import (
	"fmt"

	"github.com/banshee-data/navgrid/internal/house/connectivity"
	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/house/scene"
	"github.com/banshee-data/navgrid/internal/monitoring"
	"github.com/banshee-data/navgrid/internal/timeutil"
)

// DefaultPointMargin is the half-size, in cells, of the square searched by
// SetTargetPoint.
const DefaultPointMargin = 15

// SetTargetRoom makes name the active target room type, building and caching
// its distance field on first use. It reports whether the active field
// changed; asking for the active type again is a no-op.
func (h *House) SetTargetRoom(name string) (bool, error) {
	t, err := scene.ParseTargetRoomType(name)
	if err != nil {
		return false, err
	}
	if t == h.targetType && h.current != nil {
		return false, nil
	}
	if rec, ok := h.records[t]; ok {
		h.activate(t, rec)
		return true, nil
	}

	rooms := h.Scene.RoomsOfType(t)
	if len(rooms) == 0 {
		return false, fmt.Errorf("%w: house=%s type=%s", ErrNoTargetRoom, h.Scene.ID, t)
	}
	targets := make([]connectivity.Target, len(rooms))
	for i, r := range rooms {
		targets[i] = connectivity.Target{
			Label:  r.ID,
			Rect:   h.mapper.RescaleBox(r.BBox),
			Center: gridmap.BoxCenter(r.BBox),
		}
	}

	sw := timeutil.StartStopwatch(h.clock)
	rec, rep, err := connectivity.BuildField(h.mapper, h.movable, string(t), targets)
	if err != nil {
		return false, fmt.Errorf("house %s: %w", h.Scene.ID, err)
	}
	if rep.Closed {
		monitoring.Warnf("[House] target %s of house %s is only reachable from closed regions", t, h.Scene.ID)
	}
	h.records[t] = rec
	h.activate(t, rec)
	monitoring.Logf("[House] cached distance field: house=%s target=%s rooms=%d frontier=%d connected=%d max_dist=%d elapsed=%v",
		h.Scene.ID, t, len(rooms), len(rec.Frontier), len(rec.ConnectedCoors), rec.MaxConnDist, sw.Lap())
	return true, nil
}

func (h *House) activate(t scene.RoomType, rec *connectivity.Record) {
	h.targetType = t
	h.current = rec
	h.eagle.SetTarget(h.Scene.RoomsOfType(t))
}

// SetTargetPoint replaces the active field with one towards the open space
// within margin cells of c. The field is not cached and no room type is
// active afterwards. It returns false, leaving the active field unchanged,
// when that square holds no movable cell.
func (h *House) SetTargetPoint(c gridmap.Cell, marginX, marginY int) bool {
	rec, ok := connectivity.PointField(h.mapper, h.movable, c, marginX, marginY)
	if !ok {
		return false
	}
	h.targetType = ""
	h.current = rec
	return true
}

// CacheAllTargets builds the field of every desired room type, then
// reactivates the default type.
func (h *House) CacheAllTargets() error {
	for _, t := range h.desired {
		if _, err := h.SetTargetRoom(string(t)); err != nil {
			return err
		}
	}
	_, err := h.SetTargetRoom(string(h.defaultType))
	return err
}

// CachedField returns the cached distance field of t without activating it.
func (h *House) CachedField(t scene.RoomType) (*connectivity.Record, bool) {
	rec, ok := h.records[t]
	return rec, ok
}

// CachedTargets lists the room types whose fields are cached, in
// DesiredRoomTypes order.
func (h *House) CachedTargets() []scene.RoomType {
	var out []scene.RoomType
	for _, t := range h.desired {
		if _, ok := h.records[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
