package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep one shared Redis or MongoDB cache apart per deployment, e.g.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner uses the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) IconSetKey(provider, prefix string) string {
	return k.prefix + k.inner.IconSetKey(provider, prefix)
}

func (k *ScopedKeyer) CollectionsKey(provider string) string {
	return k.prefix + k.inner.CollectionsKey(provider)
}

func (k *ScopedKeyer) SearchKey(provider string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(provider, opts)
}
