// Package cache provides a small TTL cache abstraction used in front of slow
// list fetches. Values are stored JSON-encoded so the same loader works with
// the in-memory and the redis store.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a byte-oriented key/value store with per-entry expiry.
type Store interface {
	// Get returns the stored value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// GetOrLoad returns the cached value for key, or invokes loader and stores
// its result for ttl. A ttl of zero bypasses the cache. Store failures never
// fail the call: the loader result is returned and the error is dropped.
// Loader failures are returned as-is and nothing is stored.
func GetOrLoad[T any](ctx context.Context, store Store, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	if store == nil || ttl <= 0 {
		return loader(ctx)
	}

	if raw, ok, err := store.Get(ctx, key); err == nil && ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if raw, err := json.Marshal(value); err == nil {
		_ = store.Set(ctx, key, raw, ttl)
	}
	return value, nil
}

// Invalidate deletes keys from store, wrapping the store error.
func Invalidate(ctx context.Context, store Store, keys ...string) error {
	if store == nil || len(keys) == 0 {
		return nil
	}
	if err := store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate cache keys %v: %w", keys, err)
	}
	return nil
}
