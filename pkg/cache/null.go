package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every read misses and writes are dropped.
// The pipeline uses it for --no-cache and when no cache directory is usable.
// It deliberately does not implement [Clearer].
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
