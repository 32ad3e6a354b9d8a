package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache fills cache misses from a loader function.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache     CacheManager[K, V]
	load      func(ctx context.Context, input I) (V, error)
	skipCache bool
}

// NewReadThroughCache wraps a cache and a loader. skipCache bypasses the
// cache entirely, which keeps the call sites unchanged when caching is
// disabled.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	load func(ctx context.Context, input I) (V, error),
	skipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:     cache,
		load:      load,
		skipCache: skipCache,
	}
}

// Get returns the cached value for key or loads, caches, and returns it.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.skipCache {
		return r.load(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

// Invalidate drops keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) {
	if r.skipCache {
		return
	}
	r.cache.Delete(ctx, keys...)
}

// InvalidateAll drops everything.
func (r *ReadThroughCache[K, V, I]) InvalidateAll(ctx context.Context) {
	if r.skipCache {
		return
	}
	r.cache.Flush(ctx)
}
