package scene

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/zyedidia/generic/mapset"
)

const (
	colModelID     = "model_id"
	colCoarseClass = "nyuv2_40class"
	colFineClass   = "fine_grained_class"
)

var (
	doorLabels    = []string{"door", "fence", "arch"}
	ignoredLabels = []string{"person", "umbrella", "curtain"}
)

// Categories holds the model id sets derived from the category table.
type Categories struct {
	Doors   mapset.Set[string]
	Windows mapset.Set[string]
	Ignored mapset.Set[string]
}

// NewCategories returns empty id sets.
func NewCategories() *Categories {
	return &Categories{
		Doors:   mapset.New[string](),
		Windows: mapset.New[string](),
		Ignored: mapset.New[string](),
	}
}

// ParseCategories reads a model category CSV with a header row naming at
// least model_id, nyuv2_40class and fine_grained_class.
func ParseCategories(r io.Reader) (*Categories, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read category header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, col := range []string{colModelID, colCoarseClass, colFineClass} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("category table missing column %q", col)
		}
	}

	doors := mapset.Of(doorLabels...)
	ignored := mapset.Of(ignoredLabels...)
	c := NewCategories()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read category row: %w", err)
		}
		field := func(col string) string {
			if i := idx[col]; i < len(rec) {
				return rec[i]
			}
			return ""
		}
		id := field(colModelID)
		coarse := field(colCoarseClass)
		if doors.Has(coarse) {
			c.Doors.Put(id)
		}
		if coarse == "window" {
			c.Windows.Put(id)
		}
		if ignored.Has(field(colFineClass)) {
			c.Ignored.Put(id)
		}
	}
	return c, nil
}
