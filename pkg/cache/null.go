package cache

import (
	"context"
	"time"
)

// NullCache discards everything and reports every Get as a miss. It backs
// --no-cache runs and stands in when a configured redis backend is
// unreachable, so callers never branch on whether caching is enabled.
type NullCache struct{}

// NewNullCache creates the no-op cache.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
