// Package cache provides the byte-level response cache used by the
// transport layer.
//
// Entries are opaque byte slices addressed by string keys built with a
// [Keyer]. Backends:
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [MemoryCache]: process-local map, for the HTTP server and tests
//   - [NullCache]: never stores, for --no-cache
//   - [RedisCache] and [MongoCache]: shared caches for deployments with
//     several server replicas
//
// A miss is reported as (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as misses and log them.
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bytes.
type Cache interface {
	// Get returns the entry for key. hit is false on a miss or when the
	// entry expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
