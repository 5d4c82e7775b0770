// Package cache stores rendered chart artifacts.
//
// A rendered chart is a pure function of the stats snapshot, the chart kind,
// the output format, the container width and the theme. The pipeline hashes
// those inputs into a key (see [Keyer]) and keeps the bytes in a [Cache]:
//
//   - [FileCache]: one JSON entry per key under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several service replicas
//   - [NullCache]: caching disabled
//
// Entries carry an optional TTL. Expired or corrupt entries read as misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
