package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep entries from different API versions or
// deployments apart while sharing one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// EvalKey generates a prefixed key for evaluation results.
func (k *ScopedKeyer) EvalKey(program string, opts EvalKeyOpts) string {
	return k.prefix + k.inner.EvalKey(program, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(canonical string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(canonical, opts)
}
