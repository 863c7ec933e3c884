package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different users or deployments get separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for per-user query defaults
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared taxon data
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// QueryKey generates a prefixed key for resolved query caching.
func (k *ScopedKeyer) QueryKey(argument string, userID string) string {
	return k.prefix + k.inner.QueryKey(argument, userID)
}
