package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores each entry in its own file under dir, sharded into
// subdirectories by the first two hex chars of the key hash.
//
// An entry file is an 8-byte big-endian expiry (Unix nanoseconds, zero for
// never) followed by the raw data. Icon set bodies are large JSON
// documents, so they are written as-is instead of being re-encoded.
type FileCache struct {
	dir string
	now func() time.Time
}

const (
	entryExt    = ".entry"
	headerBytes = 8
)

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerBytes {
		// Truncated write; drop it.
		_ = os.Remove(path)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(raw[:headerBytes])); exp != 0 && c.now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerBytes:], true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	buf := make([]byte, headerBytes+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(buf, uint64(c.now().Add(ttl).UnixNano()))
	}
	copy(buf[headerBytes:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// Write then rename so readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error { return nil }

// Stats describes the entries on disk.
type Stats struct {
	Entries int
	Bytes   int64
}

// Stats walks the cache directory.
func (c *FileCache) Stats() (Stats, error) {
	var s Stats
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, entryExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		s.Entries++
		s.Bytes += info.Size()
		return nil
	})
	return s, err
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	s, err := c.Stats()
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return 0, err
		}
	}
	return s.Entries, nil
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
