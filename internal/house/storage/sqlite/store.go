package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/navgrid/internal/monitoring"
)

// Store persists grid snapshots in a SQLite database.
type Store struct {
	*sql.DB
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
}

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	monitoring.Logf("[GridStore] opened grid cache database: path=%s", path)
	return s, nil
}

// InsertGridSnapshot stores snap, replacing any snapshot with the same key,
// and returns its cache_id. An empty BuildID is filled with a new UUID.
func (s *Store) InsertGridSnapshot(snap *GridSnapshot) (int64, error) {
	if snap.BuildID == "" {
		snap.BuildID = uuid.NewString()
	}
	const q = `
		INSERT INTO navgrid_cache (
			house_id, resolution, robot_radius, robot_height, carpet_height, approximate,
			build_id, created_unix_nanos, obstacle_blob, movability_blob
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (house_id, resolution, robot_radius, robot_height, carpet_height, approximate) DO UPDATE SET
			build_id = excluded.build_id,
			created_unix_nanos = excluded.created_unix_nanos,
			obstacle_blob = excluded.obstacle_blob,
			movability_blob = excluded.movability_blob
		RETURNING cache_id
	`
	k := snap.Key
	var id int64
	err := s.QueryRow(q,
		k.HouseID, k.Resolution, k.RobotRadius, k.RobotHeight, k.CarpetHeight, k.Approximate,
		snap.BuildID, snap.CreatedUnixNanos, snap.ObstacleBlob, snap.MovabilityBlob,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert grid snapshot %s: %w", k, err)
	}
	snap.SnapshotID = id
	return id, nil
}

// GetGridSnapshot returns the snapshot stored under key, or (nil, nil).
func (s *Store) GetGridSnapshot(key GridKey) (*GridSnapshot, error) {
	const q = `
		SELECT cache_id, build_id, created_unix_nanos, obstacle_blob, movability_blob
		FROM navgrid_cache
		WHERE house_id = ? AND resolution = ? AND robot_radius = ?
			AND robot_height = ? AND carpet_height = ? AND approximate = ?
	`
	snap := &GridSnapshot{Key: key}
	err := s.QueryRow(q,
		key.HouseID, key.Resolution, key.RobotRadius, key.RobotHeight, key.CarpetHeight, key.Approximate,
	).Scan(
		&snap.SnapshotID, &snap.BuildID, &snap.CreatedUnixNanos, &snap.ObstacleBlob, &snap.MovabilityBlob,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query grid snapshot %s: %w", key, err)
	}
	return snap, nil
}

// ListGridKeys returns the keys of every stored snapshot ordered by house
// and resolution.
func (s *Store) ListGridKeys() ([]GridKey, error) {
	rows, err := s.Query(`
		SELECT house_id, resolution, robot_radius, robot_height, carpet_height, approximate
		FROM navgrid_cache
		ORDER BY house_id, resolution, robot_radius, robot_height, carpet_height, approximate
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list grid snapshots: %w", err)
	}
	defer rows.Close()

	var keys []GridKey
	for rows.Next() {
		var k GridKey
		if err := rows.Scan(&k.HouseID, &k.Resolution, &k.RobotRadius, &k.RobotHeight, &k.CarpetHeight, &k.Approximate); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DeleteHouse removes every snapshot of houseID and returns how many were
// removed.
func (s *Store) DeleteHouse(houseID string) (int64, error) {
	res, err := s.Exec(`DELETE FROM navgrid_cache WHERE house_id = ?`, houseID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete grid snapshots for %s: %w", houseID, err)
	}
	return res.RowsAffected()
}
