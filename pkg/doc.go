// Package pkg provides the core libraries of iconfinder.
//
// # Overview
//
// iconfinder loads icon sets from Iconify API providers or local
// directories, indexes them, and lets callers narrow a set down with a
// keyword and facet filters (tags, prefixes, suffixes, collections), page
// through the results and select an icon with customisations. The same
// core drives the CLI, the interactive browser and the HTTP API.
//
// # Architecture
//
// The data flow for one icon set:
//
//	Iconify API / directory
//	         ↓
//	    [integrations/iconify], [source/local] (fetch, cache)
//	         ↓
//	    [iconify] (parse raw IconifyJSON, API v2 and search responses)
//	         ↓
//	    [convert] (alias resolution, unique icons, facets)
//	         ↓
//	    [iconset] (the immutable indexed set)
//	         ↓
//	    [filter] + [pagination] (keyword, facet selection, pages)
//	         ↓
//	    [finder] (loading, caching, events, selection)
//
// # Quick Start
//
//	registry := providers.NewRegistry(providers.CacheOptions{})
//	f := finder.New(registry, finder.Options{PerPage: 48})
//	defer f.Close()
//
//	page := 0
//	view, _ := f.Query(ctx, finder.Query{
//	    Prefix:  "mdi",
//	    Keyword: "arrow",
//	    Filters: map[iconset.FilterKind]string{iconset.KindSuffixes: "-outline"},
//	    Page:    &page,
//	})
//	for _, icon := range view.Page.Visible {
//	    fmt.Println(icon.Name())
//	}
//
// # Main Packages
//
// ## Domain
//
// [iconset] - Icon sets: unique icons, aliases, transforms, facet filters
// backed by roaring bitmaps.
//
// [convert] - Builds icon sets from parsed data. Aliases pointing at the
// same body with the same transform share one unique icon.
//
// [filter] - Keyword matching and facet selection. Selecting a filter
// disables the filters of other kinds that would leave no result.
//
// [pagination] - Page arithmetic and pager buttons.
//
// [collections] - The list of sets a provider offers, grouped by category.
//
// [customise] - Rotation, flips, color and size of a selected icon.
//
// [finder] - The engine. Loads each set once, serves forks of it to
// queries and reports progress on the [events] bus.
//
// ## Data Sources
//
// [iconify] - IconifyJSON and API response types and parsers.
//
// [integrations/iconify] - HTTP client for Iconify API hosts with mirror
// fallback and response caching.
//
// [source/local] - Reads sets from a directory of JSON files.
//
// [providers] - Maps provider names to loaders.
//
// ## Infrastructure
//
// [cache] - Response cache with file, memory, Redis and MongoDB backends.
//
// [storage] - Load-once store for parsed data. Concurrent loads of one key
// share a single call. Sets remember failures; searches are bounded and
// retry them.
//
// [httputil] - Retry with backoff for HTTP calls.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Log hooks for loads, cache hits and HTTP requests.
//
// [server] - The HTTP API.
//
// [render/aliasgraph] - Graphviz diagrams of how the aliases of a set
// resolve to unique icons.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [iconset]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/iconset
// [convert]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/convert
// [filter]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/filter
// [pagination]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/pagination
// [collections]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/collections
// [customise]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/customise
// [finder]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/finder
// [events]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/events
// [iconify]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/iconify
// [integrations/iconify]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/integrations/iconify
// [source/local]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/source/local
// [providers]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/providers
// [cache]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/storage
// [httputil]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/server
// [render/aliasgraph]: https://pkg.go.dev/github.com/matzehuels/iconfinder/pkg/render/aliasgraph
package pkg
