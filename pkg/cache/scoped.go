package cache

import (
	"context"
	"time"

	"github.com/skeinlab/skein/pkg/observability"
)

// Scoped wraps a Cache with a key prefix so independent subsystems can
// share one backend without colliding. The server scopes per API
// namespace; the CLI scopes per command. The prefix doubles as the key
// type reported to the cache observability hooks.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a cache whose keys are all prefixed. A nil inner
// cache falls back to the null cache.
func NewScoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a value under the scoped key.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, c.prefix+key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.prefix)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.prefix)
		}
	}
	return data, hit, err
}

// Set stores a value under the scoped key.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, c.prefix+key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.prefix, len(data))
	}
	return err
}

// Delete removes a value under the scoped key.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying cache.
func (c *Scoped) Close() error {
	return c.inner.Close()
}

// Ensure Scoped implements Cache.
var _ Cache = (*Scoped)(nil)
