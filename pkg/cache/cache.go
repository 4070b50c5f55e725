// Package cache stores raw response bodies keyed by request.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the preview server, and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] so that every backend sees the same layout.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored value and hit=true, or hit=false on a miss or
	// an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by backends that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
