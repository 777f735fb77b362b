// Package pagination slices filtered results into pages.
//
// [Result] is a pure function of the requested configuration and the total
// number of items. [Apply] uses it to cut the visible window out of a
// result slice.
//
//	page := pagination.Apply(icons, pagination.At(2, 48))
//	for _, icon := range page.Visible {
//	    // render icon
//	}
//	fmt.Printf("page %d of %d\n", page.Pages.Page+1, page.Pages.TotalPages)
//
// Page numbers are 0-based. Out-of-range pages are clamped, never rejected.
// A non-positive PerPage is a caller bug and panics.
package pagination

import "fmt"

// DefaultPerPage is the page size used when a configuration leaves PerPage
// at zero through [Config.WithDefaults].
const DefaultPerPage = 52

// Config is the paging state requested by a consumer.
type Config struct {
	PerPage int  `json:"perPage"`
	Page    *int `json:"page,omitempty"` // nil means "not specified"
}

// At returns a Config requesting an explicit page.
func At(page, perPage int) Config {
	return Config{PerPage: perPage, Page: &page}
}

// WithDefaults returns a copy with a zero PerPage replaced by
// [DefaultPerPage].
func (c Config) WithDefaults() Config {
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	return c
}

// Pages describes the resolved paging of a result set.
type Pages struct {
	PerPage    int `json:"perPage"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	MaxPage    int `json:"maxPage"`
	TotalPages int `json:"totalPages"`
}

// Result resolves cfg against total items.
//
// The page is chosen in this order: cfg.Page if set and in range, then
// fallback if given and in range, then whichever of the two was given
// clamped into [0, MaxPage], then 0.
func Result(cfg Config, total int, fallback ...int) Pages {
	if cfg.PerPage <= 0 {
		panic(fmt.Sprintf("pagination: invalid perPage %d", cfg.PerPage))
	}
	if total < 0 {
		panic(fmt.Sprintf("pagination: invalid total %d", total))
	}

	maxPage := 0
	if total > 0 {
		maxPage = (total+cfg.PerPage-1)/cfg.PerPage - 1
	}
	totalPages := 0
	if total > 0 {
		totalPages = maxPage + 1
	}

	inRange := func(p int) bool { return p >= 0 && p <= maxPage }

	page := 0
	switch {
	case cfg.Page != nil && inRange(*cfg.Page):
		page = *cfg.Page
	case len(fallback) > 0 && inRange(fallback[0]):
		page = fallback[0]
	case cfg.Page != nil:
		page = clamp(*cfg.Page, maxPage)
	case len(fallback) > 0:
		page = clamp(fallback[0], maxPage)
	}

	return Pages{
		PerPage:    cfg.PerPage,
		Page:       page,
		Total:      total,
		MaxPage:    maxPage,
		TotalPages: totalPages,
	}
}

func clamp(p, maxPage int) int {
	return min(max(p, 0), maxPage)
}

// Offset returns the index of the first item on the page.
func (p Pages) Offset() int { return p.Page * p.PerPage }

// HasPrev reports whether a previous page exists.
func (p Pages) HasPrev() bool { return p.Page > 0 }

// HasNext reports whether a next page exists.
func (p Pages) HasNext() bool { return p.Page < p.MaxPage }

// Buttons returns the page numbers a pager should show: the first and last
// pages, the current page and up to spread pages on each side. Gaps are
// marked with -1.
func (p Pages) Buttons(spread int) []int {
	if p.TotalPages == 0 {
		return nil
	}
	var out []int
	last := -1
	for i := 0; i <= p.MaxPage; i++ {
		if i != 0 && i != p.MaxPage && (i < p.Page-spread || i > p.Page+spread) {
			continue
		}
		if last >= 0 && i > last+1 {
			out = append(out, -1)
		}
		out = append(out, i)
		last = i
	}
	return out
}

// Page is a paginated view of a result slice.
type Page[T any] struct {
	Items   []T    `json:"-"`       // full filtered result
	Visible []T    `json:"visible"` // items on the current page
	Pages   Pages  `json:"pages"`
	Config  Config `json:"pagination"`
}

// Apply paginates items according to cfg. Visible is a sub-slice of items
// with its capacity clipped, so appending to it never overwrites the next
// page.
func Apply[T any](items []T, cfg Config, fallback ...int) Page[T] {
	pages := Result(cfg, len(items), fallback...)
	start := min(pages.Offset(), len(items))
	end := min(start+pages.PerPage, len(items))
	return Page[T]{
		Items:   items,
		Visible: items[start:end:end],
		Pages:   pages,
		Config:  cfg,
	}
}
