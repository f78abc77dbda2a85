package cache

// ScopedKeyer wraps a Keyer with a prefix so several radars can share one
// backend without colliding, e.g. one prefix per configured source.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "radar:platform-team:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SourceKey(kind, location string) string {
	return k.prefix + k.inner.SourceKey(kind, location)
}

func (k *ScopedKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(datasetHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(datasetHash, opts)
}
