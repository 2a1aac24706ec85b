// Package cache provides result caching for exploration and
// simplification runs.
//
// The Cache interface abstracts over storage backends: a file-based cache
// for CLI usage, a Redis-backed cache for the HTTP server, and a null
// cache for tests and opt-out. Values are opaque byte slices; callers
// serialize their own payloads and build keys with the helpers in this
// package so equivalent requests share entries.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an expired or unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
