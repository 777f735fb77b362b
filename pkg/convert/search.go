package convert

import (
	"strings"

	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// SearchResults converts an API "/search" response into an icon set of
// fully qualified names ("mdi:home"). The set has a collections facet
// with one filter per prefix, colored in first-seen order. It returns nil
// when the response holds no icons.
func SearchResults(provider string, raw *iconify.SearchResponse) *iconset.IconSet {
	if raw == nil {
		return nil
	}

	titles := make(map[string]string, len(raw.Collections))
	for _, c := range raw.Collections {
		titles[c.Prefix] = c.Name
	}

	b := newBuilder()
	var prefixes []string
	seenPrefix := make(map[string]bool)
	for _, name := range raw.Icons {
		prefix, _, ok := strings.Cut(name, ":")
		if !ok || prefix == "" || b.index.Has(name) {
			continue
		}
		b.addIcon(name, false)
		if !seenPrefix[prefix] {
			seenPrefix[prefix] = true
			prefixes = append(prefixes, prefix)
		}
	}

	set := b.build(
		iconset.ID{Provider: provider},
		iconset.SourceAPIv2,
		&iconset.Info{Name: "Search results"},
		themes{},
	)
	if set == nil {
		return nil
	}

	set.Search = &iconset.SearchInfo{
		Keyword: raw.Keyword,
		Limit:   raw.Limit,
		Start:   raw.Start,
		More:    raw.Limit > 0 && raw.Total >= raw.Limit,
	}

	if len(prefixes) > 1 {
		list := &iconset.FiltersList{Kind: iconset.KindCollections}
		for i, prefix := range prefixes {
			title := titles[prefix]
			if title == "" {
				title = prefix
			}
			list.Filters = append(list.Filters, &iconset.Filter{
				Title: title,
				Key:   prefix,
				Match: prefix,
				Color: i,
			})
		}
		indexFilters(set.Icons, list)
		set.Filters.Collections = list
	}
	return set
}
