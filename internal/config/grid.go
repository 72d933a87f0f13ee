package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GridConfig holds the parameters that fix a house's grid geometry and robot
// model. Fields are pointers so partial files only override what they set;
// the Get* accessors supply defaults for everything else.
type GridConfig struct {
	// Grid resolution
	CollideRes *int `json:"collide_res,omitempty" toml:"collide_res"`
	EagleRes   *int `json:"eagle_res,omitempty" toml:"eagle_res"`

	// Robot model (meters)
	RobotRadius  *float64 `json:"robot_radius,omitempty" toml:"robot_radius"`
	RobotHeight  *float64 `json:"robot_height,omitempty" toml:"robot_height"`
	CarpetHeight *float64 `json:"carpet_height,omitempty" toml:"carpet_height"`

	// Construction switches
	ApproximateMovable *bool `json:"approximate_movable,omitempty" toml:"approximate_movable"`
	GenRoomTypeMap     *bool `json:"gen_room_type_map,omitempty" toml:"gen_room_type_map"`
	SetTarget          *bool `json:"set_target,omitempty" toml:"set_target"`
	IgnoreSmallHouse   *bool `json:"ignore_small_house,omitempty" toml:"ignore_small_house"`
}

const maxConfigFileSize = 1 * 1024 * 1024 // 1MB

// LoadGridConfig loads a GridConfig from a .json or .toml file.
// Fields omitted from the file fall back to their defaults.
func LoadGridConfig(path string) (*GridConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".toml" {
		return nil, fmt.Errorf("config file must have .json or .toml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &GridConfig{}
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set values are in range.
func (c *GridConfig) Validate() error {
	if c.CollideRes != nil && *c.CollideRes < 2 {
		return fmt.Errorf("collide_res must be at least 2, got %d", *c.CollideRes)
	}
	if c.EagleRes != nil && *c.EagleRes < 2 {
		return fmt.Errorf("eagle_res must be at least 2, got %d", *c.EagleRes)
	}
	if c.RobotRadius != nil && *c.RobotRadius <= 0 {
		return fmt.Errorf("robot_radius must be positive, got %f", *c.RobotRadius)
	}
	if c.RobotHeight != nil && *c.RobotHeight <= 0 {
		return fmt.Errorf("robot_height must be positive, got %f", *c.RobotHeight)
	}
	if c.CarpetHeight != nil && *c.CarpetHeight < 0 {
		return fmt.Errorf("carpet_height must be non-negative, got %f", *c.CarpetHeight)
	}
	if c.GetCarpetHeight() >= c.GetRobotHeight() {
		return fmt.Errorf("carpet_height (%f) must be below robot_height (%f)", c.GetCarpetHeight(), c.GetRobotHeight())
	}
	return nil
}

// GetCollideRes returns the collision grid resolution or the default.
func (c *GridConfig) GetCollideRes() int {
	if c.CollideRes == nil {
		return 1000
	}
	return *c.CollideRes
}

// GetEagleRes returns the topdown overview resolution or the default.
func (c *GridConfig) GetEagleRes() int {
	if c.EagleRes == nil {
		return 100
	}
	return *c.EagleRes
}

// GetRobotRadius returns the robot footprint radius or the default.
func (c *GridConfig) GetRobotRadius() float64 {
	if c.RobotRadius == nil {
		return 0.1
	}
	return *c.RobotRadius
}

// GetRobotHeight returns the robot height or the default.
func (c *GridConfig) GetRobotHeight() float64 {
	if c.RobotHeight == nil {
		return 0.75
	}
	return *c.RobotHeight
}

// GetCarpetHeight returns the traversable obstacle height or the default.
func (c *GridConfig) GetCarpetHeight() float64 {
	if c.CarpetHeight == nil {
		return 0.15
	}
	return *c.CarpetHeight
}

// GetApproximateMovable reports whether the morphological movability variant is used.
func (c *GridConfig) GetApproximateMovable() bool {
	if c.ApproximateMovable == nil {
		return false
	}
	return *c.ApproximateMovable
}

// GetGenRoomTypeMap reports whether the per-cell room type map is built.
func (c *GridConfig) GetGenRoomTypeMap() bool {
	if c.GenRoomTypeMap == nil {
		return false
	}
	return *c.GenRoomTypeMap
}

// GetSetTarget reports whether the default target room is computed at construction.
func (c *GridConfig) GetSetTarget() bool {
	if c.SetTarget == nil {
		return true
	}
	return *c.SetTarget
}

// GetIgnoreSmallHouse reports whether houses without a kitchen or with fewer
// than two target room types are skipped.
func (c *GridConfig) GetIgnoreSmallHouse() bool {
	if c.IgnoreSmallHouse == nil {
		return false
	}
	return *c.IgnoreSmallHouse
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultGridConfig returns a GridConfig with every field set to its default.
func DefaultGridConfig() *GridConfig {
	return &GridConfig{
		CollideRes:         ptrInt(1000),
		EagleRes:           ptrInt(100),
		RobotRadius:        ptrFloat64(0.1),
		RobotHeight:        ptrFloat64(0.75),
		CarpetHeight:       ptrFloat64(0.15),
		ApproximateMovable: ptrBool(false),
		GenRoomTypeMap:     ptrBool(false),
		SetTarget:          ptrBool(true),
		IgnoreSmallHouse:   ptrBool(false),
	}
}
