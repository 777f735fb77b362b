package cache

import "strconv"

// Keyer builds cache keys. Every key starts with a fixed kind so entries
// of different kinds never collide, and backends can clear one kind by
// prefix.
type Keyer interface {
	// HTTPKey keys a raw HTTP response body.
	HTTPKey(namespace, key string) string

	// IconSetKey keys the raw bytes of one icon set of a provider.
	IconSetKey(provider, prefix string) string

	// CollectionsKey keys a provider's collection list.
	CollectionsKey(provider string) string

	// SearchKey keys a search response.
	SearchKey(provider string, opts SearchKeyOpts) string
}

// SearchKeyOpts are the search parameters that change the response.
type SearchKeyOpts struct {
	Keyword string
	Limit   int
	Start   int
	Prefix  string
}

// DefaultKeyer produces plain, unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) IconSetKey(provider, prefix string) string {
	return "iconset:" + provider + ":" + prefix
}

func (DefaultKeyer) CollectionsKey(provider string) string {
	return "collections:" + provider
}

// SearchKey hashes the keyword so arbitrary user input never ends up in a
// key verbatim.
func (DefaultKeyer) SearchKey(provider string, opts SearchKeyOpts) string {
	return hashKey("search:"+provider,
		opts.Keyword,
		strconv.Itoa(opts.Limit),
		strconv.Itoa(opts.Start),
		opts.Prefix,
	)
}
