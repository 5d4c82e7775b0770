package cache

// ScopedKeyer wraps a Keyer with a prefix, so several dashboards (or several
// deployments sharing one Redis) keep separate namespaces.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "prod:")
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

func (k *ScopedKeyer) StatsKey(source string) string {
	return k.prefix + k.inner.StatsKey(source)
}

func (k *ScopedKeyer) ArtifactKey(statsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(statsHash, opts)
}
