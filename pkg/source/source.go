// Package source defines the loader contract between the finder and the
// places icon data comes from.
//
// A loader returns raw bytes; parsing and conversion happen in the finder.
// Failures carry a code from pkg/errors: NOT_FOUND when the data does not
// exist (HTTP 404) and INVALID_DATA when it exists but is malformed or
// belongs to another prefix (503). Storage caches both outcomes.
package source

import (
	"context"

	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// Kind selects what a request asks for.
type Kind string

const (
	KindIconSet     Kind = "iconset"
	KindCollections Kind = "collections"
	KindSearch      Kind = "search"
)

// Request describes one load.
type Request struct {
	Kind     Kind
	Provider string
	Prefix   string // KindIconSet; optional filter for KindSearch

	Keyword string // KindSearch
	Limit   int
	Start   int

	// Refresh bypasses byte caches below the loader.
	Refresh bool
}

// Payload is the raw response. Format tells the converter which icon set
// shape Data has; it is empty for collections and search payloads.
type Payload struct {
	Data   []byte
	Format iconset.Source
}

// Loader fetches raw icon data.
type Loader interface {
	Load(ctx context.Context, req Request) (Payload, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, req Request) (Payload, error)

func (f LoaderFunc) Load(ctx context.Context, req Request) (Payload, error) {
	return f(ctx, req)
}
