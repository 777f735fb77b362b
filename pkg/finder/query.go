package finder

import (
	"context"
	"time"

	"github.com/matzehuels/iconfinder/pkg/customise"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/events"
	"github.com/matzehuels/iconfinder/pkg/filter"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/observability"
	"github.com/matzehuels/iconfinder/pkg/pagination"
)

// Query asks for one page of an icon set.
type Query struct {
	Provider string
	Prefix   string
	Keyword  string
	// Filters selects one filter per kind by key. Kinds not listed stay
	// unselected.
	Filters map[iconset.FilterKind]string
	// Page is 0-based; nil keeps the set's current page.
	Page    *int
	PerPage int
}

// View is a filtered, paginated icon set.
type View struct {
	Set     *iconset.IconSet
	Keyword string
	Page    pagination.Page[*iconset.UniqueIcon]
}

// Query opens a fork of the set, applies the filter selections and
// returns the requested page.
func (f *Finder) Query(ctx context.Context, q Query) (*View, error) {
	if err := errors.ValidateKeyword(q.Keyword); err != nil {
		return nil, err
	}
	set, err := f.OpenIconSet(ctx, q.Provider, q.Prefix)
	if err != nil {
		return nil, err
	}
	if err := SelectFilters(set, q.Filters); err != nil {
		return nil, err
	}
	if q.PerPage > 0 {
		set.State.PerPage = q.PerPage
	}
	if q.Page != nil {
		set.State.Page = *q.Page
	}
	return f.View(ctx, set, q.Keyword), nil
}

// SelectFilters applies selections to a forked set. An unknown kind or
// key is INVALID_INPUT.
func SelectFilters(set *iconset.IconSet, selections map[iconset.FilterKind]string) error {
	for kind, key := range selections {
		list := set.Filters.Get(kind)
		if list == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s has no %s filters", set.ID, kind)
		}
		if !list.Select(key) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown %s filter %q", kind, key)
		}
	}
	return nil
}

// View filters set by keyword under its current selections and paging
// state, stores the resolved page back into the state and fires
// view-loaded. set must be a fork.
func (f *Finder) View(ctx context.Context, set *iconset.IconSet, keyword string) *View {
	start := time.Now()
	if set.State.PerPage <= 0 {
		set.State.PerPage = f.perPage
	}
	icons := filter.IconSet(set, keyword)
	page := pagination.Apply(icons, set.State.Pagination())
	set.State.Page = page.Pages.Page

	v := &View{Set: set, Keyword: keyword, Page: page}
	observability.Finder().OnQuery(ctx, set.ID.Prefix, keyword, len(icons), time.Since(start))
	f.bus.FireDelayed(events.ViewLoaded, v)
	return v
}

// Selection is the payload of a selection event.
type Selection struct {
	Provider string
	Prefix   string
	Name     string
	// Render is the icon name whose body is drawn.
	Render string
	// Transform is the alias transform merged with the customisations.
	Transform      iconset.Transform
	Customisations customise.Customisations
}

// Select resolves an icon name, applies customisations and fires a
// selection event.
func (f *Finder) Select(ctx context.Context, provider, prefix, name string, c customise.Customisations) (*Selection, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	set, err := f.iconSet(ctx, provider, prefix)
	if err != nil {
		return nil, err
	}
	u, icon, ok := set.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "%s has no icon %q", set.ID, name)
	}
	sel := &Selection{
		Provider:       provider,
		Prefix:         prefix,
		Name:           icon.Name,
		Render:         u.Render,
		Transform:      c.Merge(u.Transform),
		Customisations: c,
	}
	f.bus.Fire(events.Selection, sel)
	return sel, nil
}
