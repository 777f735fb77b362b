package cache

import (
	"context"
	"fmt"
)

// PrefixDeleter is implemented by backends that can drop all keys with a
// common prefix. An empty prefix clears the backend.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Options select and configure a backend.
type Options struct {
	Backend string
	Dir     string // file
	URL     string // redis URL or mongo URI
	// Database and Collection apply to mongo only.
	Database   string
	Collection string
}

// Open creates the configured backend. An empty backend means file when
// Dir is set, memory otherwise.
func Open(ctx context.Context, opts Options) (Cache, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendMemory
		if opts.Dir != "" {
			backend = BackendFile
		}
	}
	switch backend {
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendRedis:
		return NewRedisCache(ctx, opts.URL)
	case BackendMongo:
		return NewMongoCache(ctx, MongoOptions{URI: opts.URL, Database: opts.Database, Collection: opts.Collection})
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Clear removes every entry the backend can enumerate.
func Clear(ctx context.Context, c Cache) (int, error) {
	switch c := c.(type) {
	case *FileCache:
		return c.Clear()
	case PrefixDeleter:
		return c.DeletePrefix(ctx, "")
	default:
		return 0, nil
	}
}
