package observe

// CacheMeta identifies a cache in logs, metrics and spans.
type CacheMeta struct {
	Name      string // Cache name (required)
	Namespace string // Owning subsystem (optional)
}

// CacheID returns the fully qualified cache identifier.
// Format: <namespace>.<name> or <name>
func (m CacheMeta) CacheID() string {
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// SpanName returns the deterministic span name for an operation on this cache.
// Format: cache.<op>.<namespace>.<name> or cache.<op>.<name>
func (m CacheMeta) SpanName(op string) string {
	return "cache." + op + "." + m.CacheID()
}

// Validate reports ErrMissingCacheName if Name is empty.
func (m CacheMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingCacheName
	}
	return nil
}
