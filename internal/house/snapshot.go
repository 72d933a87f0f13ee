package house

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/banshee-data/navgrid/internal/house/gridmap"
)

// GridKey identifies one obstacle and movability configuration of a house.
// Every parameter that changes either grid is part of the key.
type GridKey struct {
	HouseID      string
	Resolution   int
	RobotRadius  float64
	RobotHeight  float64
	CarpetHeight float64
	Approximate  bool
}

func (k GridKey) String() string {
	return fmt.Sprintf("%s@%d/r=%g/h=%g/carpet=%g/approx=%t",
		k.HouseID, k.Resolution, k.RobotRadius, k.RobotHeight, k.CarpetHeight, k.Approximate)
}

// GridSnapshot is a persisted (obstacle, movability) pair. Blobs are gob
// encoded and gzip compressed.
type GridSnapshot struct {
	SnapshotID       int64
	Key              GridKey
	BuildID          string
	CreatedUnixNanos int64
	ObstacleBlob     []byte
	MovabilityBlob   []byte
}

// SnapshotStore persists GridSnapshot records. Implemented by
// storage/sqlite.Store and FileCache. GetGridSnapshot returns (nil, nil)
// when no snapshot matches.
type SnapshotStore interface {
	InsertGridSnapshot(s *GridSnapshot) (int64, error)
	GetGridSnapshot(key GridKey) (*GridSnapshot, error)
}

type gridBlob struct {
	N    int
	Data []uint8
}

// serializeGrid compresses a grid using gob encoding and gzip compression.
func serializeGrid(g *gridmap.Grid[uint8]) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(gridBlob{N: g.N, Data: g.Data}); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deserializeGrid decodes a gob+gzip blob and checks it has resolution n.
func deserializeGrid(blob []byte, n int) (*gridmap.Grid[uint8], error) {
	if len(blob) == 0 {
		return nil, errors.New("empty grid blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var b gridBlob
	if err := gob.NewDecoder(gz).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode grid: %w", err)
	}
	if b.N != n || len(b.Data) != (n+1)*(n+1) {
		return nil, fmt.Errorf("grid blob has resolution %d with %d cells, want %d", b.N, len(b.Data), n)
	}
	return &gridmap.Grid[uint8]{N: b.N, Data: b.Data}, nil
}

// NewGridSnapshot encodes both grids under key.
func NewGridSnapshot(key GridKey, obstacles, movable *gridmap.Grid[uint8]) (*GridSnapshot, error) {
	ob, err := serializeGrid(obstacles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode obstacle grid: %w", err)
	}
	mb, err := serializeGrid(movable)
	if err != nil {
		return nil, fmt.Errorf("failed to encode movability grid: %w", err)
	}
	return &GridSnapshot{Key: key, ObstacleBlob: ob, MovabilityBlob: mb}, nil
}

// Grids decodes both grids of the snapshot.
func (s *GridSnapshot) Grids() (obstacles, movable *gridmap.Grid[uint8], err error) {
	if obstacles, err = deserializeGrid(s.ObstacleBlob, s.Key.Resolution); err != nil {
		return nil, nil, fmt.Errorf("obstacle grid: %w", err)
	}
	if movable, err = deserializeGrid(s.MovabilityBlob, s.Key.Resolution); err != nil {
		return nil, nil, fmt.Errorf("movability grid: %w", err)
	}
	return obstacles, movable, nil
}
