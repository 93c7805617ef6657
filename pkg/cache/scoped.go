package cache

// ScopedKeyer prefixes every key, so several deployments can share one Redis
// without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "meridian:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SnapshotKey(opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(opts)
}

func (k *ScopedKeyer) ChartKey(opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(opts)
}

func (k *ScopedKeyer) SocialKey(platform string) string {
	return k.prefix + k.inner.SocialKey(platform)
}
