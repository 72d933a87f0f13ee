package house

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/navgrid/internal/fsutil"
)

// FileCache stores a single GridSnapshot in one file. A snapshot whose key
// differs from the requested one is treated as a miss.
type FileCache struct {
	FS   fsutil.FileSystem
	Path string
}

// NewFileCache returns a FileCache on the OS filesystem when fsys is nil.
func NewFileCache(fsys fsutil.FileSystem, path string) *FileCache {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &FileCache{FS: fsys, Path: path}
}

// InsertGridSnapshot overwrites the cache file with s.
func (c *FileCache) InsertGridSnapshot(s *GridSnapshot) (int64, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return 0, fmt.Errorf("failed to encode grid snapshot: %w", err)
	}
	if dir := filepath.Dir(c.Path); dir != "." {
		if err := c.FS.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	if err := c.FS.WriteFile(c.Path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write grid cache %s: %w", c.Path, err)
	}
	return 1, nil
}

// GetGridSnapshot reads the cache file. A missing file or a key mismatch
// returns (nil, nil).
func (c *FileCache) GetGridSnapshot(key GridKey) (*GridSnapshot, error) {
	data, err := c.FS.ReadFile(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grid cache %s: %w", c.Path, err)
	}
	var s GridSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode grid cache %s: %w", c.Path, err)
	}
	if s.Key != key {
		return nil, nil
	}
	s.SnapshotID = 1
	return &s, nil
}
