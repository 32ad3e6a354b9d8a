// Package cachemanager provides a small generic TTL cache used by the
// browser to avoid re-rendering register descriptions on every frame.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a TTL'd key/value cache.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}
