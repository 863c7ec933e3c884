// Package cache provides response caching for iNaturalist API data.
//
// Backends share one byte-oriented [Cache] interface:
//   - memory: in-process cache for tests and short-lived commands
//   - file: on-disk cache for CLI usage across invocations
//   - redis: shared cache for multi-instance API deployments
//   - null: disabled caching
//
// Keys are built through a [Keyer], which hashes request parameters into
// stable namespaced keys. Wrap a keyer with [NewScopedKeyer] to isolate
// cache namespaces per user or deployment.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss; misses
	// are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the things the app caches.
type Keyer interface {
	// HTTPKey keys a raw API response by endpoint namespace and request.
	HTTPKey(namespace, key string) string

	// QueryKey keys a resolved natural-language query.
	QueryKey(argument string, userID string) string
}

// DefaultKeyer hashes key components into namespaced SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}

// QueryKey generates a key for a resolved query.
func (k *DefaultKeyer) QueryKey(argument string, userID string) string {
	return hashKey("query", argument, userID)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey builds a namespaced key: the prefix names what is cached, the
// SHA-256 digest of the JSON-encoded parts identifies which one. Hashing
// keeps arbitrary query text and parameters safe for any backend's key
// syntax.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	digest := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(digest[:])
}
