package scene

import (
	"fmt"

	"github.com/banshee-data/navgrid/internal/fsutil"
)

// Paths names the three input files of a house.
type Paths struct {
	House      string // house.json
	Mesh       string // house.obj
	Categories string // ModelCategoryMapping.csv
}

// LoadOptions carries the robot heights that decide which geometry matters.
type LoadOptions struct {
	RobotHeight  float64
	CarpetHeight float64
}

// Load reads and classifies a house from fsys.
func Load(fsys fsutil.FileSystem, p Paths, opts LoadOptions) (*Scene, error) {
	hf, err := fsys.Open(p.House)
	if err != nil {
		return nil, fmt.Errorf("failed to open house %s: %w", p.House, err)
	}
	defer hf.Close()
	s, err := ParseHouse(hf)
	if err != nil {
		return nil, err
	}

	mf, err := fsys.Open(p.Mesh)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh %s: %w", p.Mesh, err)
	}
	defer mf.Close()
	if s.Walls, err = ParseWalls(mf, opts.RobotHeight); err != nil {
		return nil, err
	}

	cf, err := fsys.Open(p.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to open categories %s: %w", p.Categories, err)
	}
	defer cf.Close()
	cats, err := ParseCategories(cf)
	if err != nil {
		return nil, err
	}
	s.Classify(cats, opts.CarpetHeight)
	return s, nil
}
