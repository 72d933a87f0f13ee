package connectivity

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
	"github.com/banshee-data/navgrid/internal/monitoring"
)

// ErrNoFrontier is returned when no target yields a single movable cell.
var ErrNoFrontier = errors.New("no movable frontier cell for target")

// Target is one room, or point, a field is built towards.
type Target struct {
	Label  string
	Rect   gridmap.Rect
	Center r2.Vec
}

// Report summarises how a field was seeded.
type Report struct {
	// Closed is set when the open pass found nothing and closed components
	// were used.
	Closed bool
	// Fallbacks counts targets whose open search fell back to their
	// largest closed component.
	Fallbacks int
	// Empty lists targets with no movable cell in the last pass.
	Empty []string
}

// Warned reports whether any warning was raised while seeding.
func (r Report) Warned() bool {
	return r.Closed || r.Fallbacks > 0 || len(r.Empty) > 0
}

// BuildField seeds a field from the open components of every target,
// retrying with all components if that yields nothing, then expands it.
func BuildField(m gridmap.Mapper, move *gridmap.Grid[uint8], label string, targets []Target) (*Record, Report, error) {
	var rep Report
	var rec *Record
	for _, mode := range []Mode{Open, All} {
		if mode == All {
			rep.Closed = true
			monitoring.Warnf("[Connectivity] no space found for %s, searching closed regions", label)
		}
		rec = NewRecord(m.N)
		rep.Empty = rep.Empty[:0]
		for _, t := range targets {
			comps := FindComponents(move, t.Rect, mode)
			if comps.Fallback {
				rep.Fallbacks++
				monitoring.Warnf("[Connectivity] no open component in %s room %s, using largest closed component", label, t.Label)
			}
			if comps.Empty() {
				rep.Empty = append(rep.Empty, t.Label)
				monitoring.Warnf("[Connectivity] no space found in %s room %s: rect=%+v", label, t.Label, t.Rect)
				continue
			}
			rec.Seed(m, comps.Cells(), t.Center)
		}
		if len(rec.Frontier) > 0 {
			break
		}
	}
	if len(rec.Frontier) == 0 {
		return nil, rep, fmt.Errorf("%w: %s", ErrNoFrontier, label)
	}
	rec.Expand(move)
	return rec, rep, nil
}

// PointField builds a field towards the open components of the square of
// margins around p. ok is false when the square holds no movable cell.
func PointField(m gridmap.Mapper, move *gridmap.Grid[uint8], p gridmap.Cell, marginX, marginY int) (rec *Record, ok bool) {
	r := gridmap.Rect{X1: p.X - marginX, Y1: p.Y - marginY, X2: p.X + marginX, Y2: p.Y + marginY}
	comps := FindComponents(move, r, Open)
	if comps.Empty() {
		return nil, false
	}
	if comps.Fallback {
		monitoring.Warnf("[Connectivity] no open component around point (%d,%d), using largest", p.X, p.Y)
	}
	rec = NewRecord(m.N)
	rec.Seed(m, comps.Cells(), m.ToCoor(p, false))
	rec.Expand(move)
	return rec, true
}
