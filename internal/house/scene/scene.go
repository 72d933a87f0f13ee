package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/navgrid/internal/monitoring"
)

// ErrUnitScale is returned when a house is not expressed in meters.
var ErrUnitScale = errors.New("house scaleToMeters must be 1.0")

// Scene is an immutable parsed house restricted to its ground level.
type Scene struct {
	ID         string
	Level      r3.Box
	LevelCount int
	Rooms      []Room
	Objects    []Object
	Walls      []r3.Box
}

// Room is a room node carrying at least one room type label.
type Room struct {
	ID    string
	Types []string
	BBox  r3.Box
}

// HasType reports whether any of the room's labels normalises to t.
func (r Room) HasType(t RoomType) bool {
	for _, tp := range r.Types {
		if NormalizeRoomType(tp) == string(t) {
			return true
		}
	}
	return false
}

// Object is a placed model. Door and Ignored are derived from the category
// table by Classify.
type Object struct {
	ID      string
	ModelID string
	BBox    r3.Box
	Door    bool
	Ignored bool
}

// RoomsOfType returns every room with a label matching t.
func (s *Scene) RoomsOfType(t RoomType) []Room {
	var out []Room
	for _, r := range s.Rooms {
		if r.HasType(t) {
			out = append(out, r)
		}
	}
	return out
}

// HasRoomType reports whether any room carries a label matching t.
func (s *Scene) HasRoomType(t RoomType) bool {
	for _, r := range s.Rooms {
		if r.HasType(t) {
			return true
		}
	}
	return false
}

// DesiredRoomTypes returns the target room types present in the house, in
// AllowedTargets order.
func (s *Scene) DesiredRoomTypes() []RoomType {
	var out []RoomType
	for _, t := range AllowedTargets {
		if len(s.RoomsOfType(t)) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Classify sets the Door and Ignored flags of every object. A window whose
// bottom is below carpetHeight is treated as a door.
func (s *Scene) Classify(c *Categories, carpetHeight float64) {
	for i := range s.Objects {
		o := &s.Objects[i]
		o.Door = c.Doors.Has(o.ModelID) ||
			(c.Windows.Has(o.ModelID) && o.BBox.Min.Y < carpetHeight)
		o.Ignored = c.Ignored.Has(o.ModelID)
	}
}

type bboxJSON struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

func (b bboxJSON) box() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
		Max: r3.Vec{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
	}
}

type nodeJSON struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ModelID   string    `json:"modelId"`
	RoomTypes *[]string `json:"roomTypes"`
	BBox      bboxJSON  `json:"bbox"`
}

type levelJSON struct {
	ID    string     `json:"id"`
	BBox  bboxJSON   `json:"bbox"`
	Nodes []nodeJSON `json:"nodes"`
}

type houseJSON struct {
	ID            string      `json:"id"`
	ScaleToMeters float64     `json:"scaleToMeters"`
	Levels        []levelJSON `json:"levels"`
}

// ParseHouse decodes a house description. Only the first level is kept;
// extra levels are reported as a warning.
func ParseHouse(r io.Reader) (*Scene, error) {
	var h houseJSON
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode house JSON: %w", err)
	}
	if math.Abs(h.ScaleToMeters-1.0) > 1e-8 {
		return nil, fmt.Errorf("%w: got %v", ErrUnitScale, h.ScaleToMeters)
	}
	if len(h.Levels) == 0 {
		return nil, fmt.Errorf("house %q has no levels", h.ID)
	}
	if len(h.Levels) > 1 {
		monitoring.Warnf("[Scene] only the ground floor is supported: house=%s levels=%d", h.ID, len(h.Levels))
	}

	level := h.Levels[0]
	s := &Scene{
		ID:         h.ID,
		Level:      level.BBox.box(),
		LevelCount: len(h.Levels),
	}
	for _, n := range level.Nodes {
		switch strings.ToLower(n.Type) {
		case "object":
			s.Objects = append(s.Objects, Object{ID: n.ID, ModelID: n.ModelID, BBox: n.BBox.box()})
		case "room":
			if n.RoomTypes == nil {
				continue
			}
			s.Rooms = append(s.Rooms, Room{ID: n.ID, Types: *n.RoomTypes, BBox: n.BBox.box()})
		}
	}
	return s, nil
}
