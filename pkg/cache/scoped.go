package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-deployment caches from colliding
// when several instances share one Redis.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "gallery:")
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

// TreeKey generates a prefixed key for a decoded tree.
func (k *ScopedKeyer) TreeKey(treeHash string) string {
	return k.prefix + k.inner.TreeKey(treeHash)
}

// DiagramKey generates a prefixed key for an allocated diagram.
func (k *ScopedKeyer) DiagramKey(treeHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
