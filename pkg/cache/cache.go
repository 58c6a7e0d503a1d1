// Package cache stores computed layouts so repeated runs over the same
// graph and options skip the labeling and layout stages.
//
// Three implementations are provided: [FileCache] for the CLI, which keeps
// entries across invocations, [MemoryCache] for the HTTP server and
// [NullCache] when caching is disabled. Keys come from [LayoutKey], which
// hashes the dataset content together with the options that affect the
// result.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a cached layout stays valid.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
