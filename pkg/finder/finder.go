// Package finder ties loading, conversion, filtering and pagination
// together.
//
// A [Finder] owns one load-once store per kind of data (icon sets,
// collection lists, search results) over a [source.Loader]. Every icon set
// is fetched and converted once per process; callers get forks of it so
// their filter selections and pages never interfere.
//
//	f := finder.New(registry, finder.Options{Logger: logger})
//	defer f.Close()
//
//	view, err := f.Query(ctx, finder.Query{Prefix: "mdi", Keyword: "arrow"})
//	for _, icon := range view.Page.Visible {
//	    fmt.Println(icon.Name())
//	}
//
// Notifications go to the event bus: "view-loaded" after each query,
// "selection" when an icon is selected and "load-error" when the loader
// fails.
package finder

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iconfinder/pkg/collections"
	"github.com/matzehuels/iconfinder/pkg/convert"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/events"
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/observability"
	"github.com/matzehuels/iconfinder/pkg/pagination"
	"github.com/matzehuels/iconfinder/pkg/source"
	"github.com/matzehuels/iconfinder/pkg/storage"
)

// Options configure a Finder.
type Options struct {
	Logger *log.Logger
	// Bus receives notifications. Nil creates a bus owned, and closed,
	// by the finder.
	Bus *events.Bus
	// PerPage is the default page size. Zero means
	// pagination.DefaultPerPage.
	PerPage int
	// SearchLimit is the default number of search results.
	SearchLimit int
	// SearchCache is how many search results are kept. Zero means
	// DefaultSearchCache.
	SearchCache int
}

// DefaultSearchCache is the number of search results kept when
// Options.SearchCache is zero.
const DefaultSearchCache = 256

// Finder serves icon sets, collection lists and searches. It is safe for
// concurrent use.
type Finder struct {
	loader      source.Loader
	logger      *log.Logger
	bus         *events.Bus
	ownBus      bool
	perPage     int
	searchLimit int

	sets     *storage.Store[*iconset.IconSet]
	lists    *storage.Store[*collections.List]
	searches *storage.Store[*iconset.IconSet]
}

// New creates a finder over loader.
func New(loader source.Loader, opts Options) *Finder {
	f := &Finder{
		loader:      loader,
		logger:      opts.Logger,
		bus:         opts.Bus,
		perPage:     opts.PerPage,
		searchLimit: opts.SearchLimit,
		sets:        storage.New[*iconset.IconSet](),
		lists:       storage.New[*collections.List](),
	}
	if opts.SearchCache <= 0 {
		opts.SearchCache = DefaultSearchCache
	}
	// Search keys come from user input: bound them, and let failed
	// searches be retried.
	f.searches = storage.New[*iconset.IconSet](storage.WithCapacity(opts.SearchCache), storage.ForgetErrors())
	if f.logger == nil {
		f.logger = log.Default()
	}
	if f.bus == nil {
		f.bus = events.NewBus()
		f.ownBus = true
	}
	if f.perPage <= 0 {
		f.perPage = pagination.DefaultPerPage
	}
	if f.searchLimit <= 0 {
		f.searchLimit = 64
	}
	return f
}

// Bus returns the event bus.
func (f *Finder) Bus() *events.Bus { return f.bus }

// Close stops the bus if the finder created it.
func (f *Finder) Close() {
	if f.ownBus {
		f.bus.Close()
	}
}

// Loaded returns the keys of every icon set load attempted so far,
// failed ones included.
func (f *Finder) Loaded() []storage.Key { return f.sets.Keys() }

// LoadError is the payload of a load-error event.
type LoadError struct {
	Key storage.Key
	Err error
}

// OpenIconSet returns a fork of the icon set, loading it on first use.
func (f *Finder) OpenIconSet(ctx context.Context, provider, prefix string) (*iconset.IconSet, error) {
	set, err := f.iconSet(ctx, provider, prefix)
	if err != nil {
		return nil, err
	}
	return set.Fork(), nil
}

// iconSet returns the shared set. Callers must not mutate its state.
func (f *Finder) iconSet(ctx context.Context, provider, prefix string) (*iconset.IconSet, error) {
	if err := errors.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	return f.sets.Load(ctx, storage.Key{Provider: provider, Prefix: prefix}, f.loadIconSet)
}

func (f *Finder) loadIconSet(ctx context.Context, key storage.Key) (*iconset.IconSet, error) {
	hooks := observability.Finder()
	hooks.OnLoadStart(ctx, key.Provider, key.Prefix)
	start := time.Now()

	set, err := f.fetchIconSet(ctx, key)
	total := 0
	if set != nil {
		total = set.Total
	}
	hooks.OnLoadComplete(ctx, key.Provider, key.Prefix, total, time.Since(start), err)

	if err != nil {
		f.logger.Warn("icon set unavailable", "provider", key.Provider, "prefix", key.Prefix, "err", err)
		f.bus.FireDelayed(events.LoadError, LoadError{Key: key, Err: err})
		return nil, err
	}
	f.logger.Debug("icon set loaded", "provider", key.Provider, "prefix", key.Prefix,
		"icons", set.Total, "source", set.Source, "duration", time.Since(start))
	return set, nil
}

func (f *Finder) fetchIconSet(ctx context.Context, key storage.Key) (*iconset.IconSet, error) {
	p, err := f.loader.Load(ctx, source.Request{
		Kind:     source.KindIconSet,
		Provider: key.Provider,
		Prefix:   key.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return decodeIconSet(key, p)
}

// decodeIconSet parses and converts a payload. A payload for another
// prefix, or one that converts to nothing, is INVALID_DATA.
func decodeIconSet(key storage.Key, p source.Payload) (*iconset.IconSet, error) {
	var (
		set       *iconset.IconSet
		gotPrefix string
	)
	switch p.Format {
	case iconset.SourceAPIv2, iconset.SourceAPIv3:
		raw, err := iconify.ParseCollection(p.Data)
		if err != nil {
			return nil, err
		}
		gotPrefix = raw.Prefix
		if p.Format == iconset.SourceAPIv3 {
			set = convert.APIv3IconSet(key.Provider, raw)
		} else {
			set = convert.APIv2IconSet(key.Provider, raw)
		}
	case iconset.SourceRaw, iconset.SourceFilesystem, "":
		raw, err := iconify.ParseIconSet(p.Data)
		if err != nil {
			return nil, err
		}
		gotPrefix = raw.Prefix
		if p.Format == iconset.SourceFilesystem {
			set = convert.FilesystemIconSet(key.Provider, raw)
		} else {
			set = convert.RawIconSet(key.Provider, raw)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%s: unknown payload format %q", key, p.Format)
	}

	if gotPrefix != key.Prefix {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s: payload has prefix %q", key, gotPrefix)
	}
	if set == nil {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s: no icon data", key)
	}
	// API responses may omit the prefix on the converted ID.
	set.ID.Prefix = key.Prefix
	return set, nil
}

// Collections returns the provider's collection list. The list is shared;
// use FilterCollections for a filtered view.
func (f *Finder) Collections(ctx context.Context, provider string) (*collections.List, error) {
	return f.lists.Load(ctx, storage.Key{Provider: provider}, f.loadCollections)
}

func (f *Finder) loadCollections(ctx context.Context, key storage.Key) (*collections.List, error) {
	p, err := f.loader.Load(ctx, source.Request{Kind: source.KindCollections, Provider: key.Provider})
	if err != nil {
		f.bus.FireDelayed(events.LoadError, LoadError{Key: key, Err: err})
		return nil, err
	}
	raw, err := iconify.ParseCollections(p.Data)
	if err != nil {
		return nil, err
	}
	list := collections.Convert(key.Provider, raw)
	if list == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "provider %q lists no collections", key.Provider)
	}
	f.logger.Debug("collections loaded", "provider", key.Provider, "count", len(list.Collections))
	return list, nil
}

// FilterCollections returns the visible collections matching keyword,
// restricted to a category when category is non-empty.
func (f *Finder) FilterCollections(ctx context.Context, provider, keyword, category string) ([]*collections.Collection, *collections.List, error) {
	list, err := f.Collections(ctx, provider)
	if err != nil {
		return nil, nil, err
	}
	view := *list
	view.Selected = nil
	if category != "" {
		view.Selected = list.Category(category)
		if view.Selected == nil {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "unknown category %q", category)
		}
	}
	return collections.Filter(&view, keyword), &view, nil
}

// Search runs a keyword search across the provider's sets. It returns a
// nil set when nothing matches. Results are kept in a bounded cache;
// failures are not kept.
func (f *Finder) Search(ctx context.Context, provider, keyword string, limit int) (*iconset.IconSet, error) {
	if limit <= 0 {
		limit = f.searchLimit
	}
	key := storage.Key{Provider: provider, Prefix: "search:" + strconv.Itoa(limit) + ":" + keyword}
	set, err := f.searches.Load(ctx, key, func(ctx context.Context, _ storage.Key) (*iconset.IconSet, error) {
		p, err := f.loader.Load(ctx, source.Request{
			Kind:     source.KindSearch,
			Provider: provider,
			Keyword:  keyword,
			Limit:    limit,
		})
		if err != nil {
			return nil, err
		}
		raw, err := iconify.ParseSearch(p.Data)
		if err != nil {
			return nil, err
		}
		if raw.Keyword == "" {
			raw.Keyword = keyword
		}
		return convert.SearchResults(provider, raw), nil
	})
	if err != nil || set == nil {
		return nil, err
	}
	return set.Fork(), nil
}
