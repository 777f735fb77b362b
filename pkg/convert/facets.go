package convert

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// uncategorizedTitle is shown for the implicit "" category.
const uncategorizedTitle = "Uncategorized"

// buildTheme assigns every name to its longest matching theme item and
// returns the theme restricted to items that at least one visible name
// uses. It returns nil when no item is used.
//
// Equal-length matches keep declaration order, so the first declared item
// wins.
func buildTheme(idx *iconset.Index, kind iconset.ThemeKind, entries []iconify.ThemeEntry) *iconset.Theme {
	if len(entries) == 0 {
		return nil
	}

	full := newTheme(kind, entries)
	used := make(map[*iconset.ThemeItem]bool)
	for _, u := range idx.Unique {
		for _, icon := range u.Icons {
			item := full.Match(icon.Name)
			setThemeItem(icon, kind, item)
			if item != nil && !icon.Hidden {
				used[item] = true
			}
		}
	}

	theme := &iconset.Theme{Kind: kind}
	for _, item := range full.Items {
		if !used[item] {
			continue
		}
		item.Color = len(theme.Items)
		theme.Items = append(theme.Items, item)
	}
	if len(theme.Items) == 0 {
		clearThemeItems(idx, kind)
		return nil
	}
	theme.Sorted = sortedItems(theme.Items)
	for _, item := range theme.Items {
		if item.Match == "" {
			theme.Empty = item
		}
	}

	for _, u := range idx.Unique {
		for _, icon := range u.Icons {
			if item := themeItem(icon, kind); item != nil && !used[item] {
				setThemeItem(icon, kind, nil)
			}
		}
	}
	return theme
}

// newTheme builds a theme from declarations, skipping repeated matches.
func newTheme(kind iconset.ThemeKind, entries []iconify.ThemeEntry) *iconset.Theme {
	t := &iconset.Theme{Kind: kind}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Match] {
			continue
		}
		seen[e.Match] = true
		title := e.Title
		if title == "" {
			title = e.Match
		}
		item := &iconset.ThemeItem{Title: title, Match: e.Match, Color: len(t.Items)}
		t.Items = append(t.Items, item)
		if e.Match == "" {
			t.Empty = item
		}
	}
	t.Sorted = sortedItems(t.Items)
	return t
}

func sortedItems(items []*iconset.ThemeItem) []*iconset.ThemeItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b *iconset.ThemeItem) int {
		return len(b.Match) - len(a.Match)
	})
	return sorted
}

func themeItem(icon *iconset.Icon, kind iconset.ThemeKind) *iconset.ThemeItem {
	if kind == iconset.ThemePrefix {
		return icon.Prefix
	}
	return icon.Suffix
}

func setThemeItem(icon *iconset.Icon, kind iconset.ThemeKind, item *iconset.ThemeItem) {
	if kind == iconset.ThemePrefix {
		icon.Prefix = item
	} else {
		icon.Suffix = item
	}
}

func clearThemeItems(idx *iconset.Index, kind iconset.ThemeKind) {
	for _, icon := range idx.IconsMap {
		setThemeItem(icon, kind, nil)
	}
}

// buildFilters derives the facet lists of set and precomputes the cluster
// membership bitmap of every filter.
func buildFilters(set *iconset.IconSet) *iconset.FilterSet {
	fs := &iconset.FilterSet{}

	if len(set.Categories) > 1 {
		list := &iconset.FiltersList{Kind: iconset.KindTags}
		for _, c := range set.Categories {
			title := c.Title
			if title == "" {
				title = uncategorizedTitle
			}
			list.Filters = append(list.Filters, &iconset.Filter{
				Title: title,
				Key:   c.Title,
				Match: c.Title,
				Color: c.Color,
			})
		}
		fs.Tags = list
	}

	fs.Prefixes = themeFilters(iconset.KindPrefixes, set.Prefixes)
	fs.Suffixes = themeFilters(iconset.KindSuffixes, set.Suffixes)

	for _, list := range fs.All() {
		indexFilters(set.Icons, list)
	}
	return fs
}

// themeFilters returns nil unless the theme splits the set into at least
// two groups.
func themeFilters(kind iconset.FilterKind, theme *iconset.Theme) *iconset.FiltersList {
	if theme == nil || len(theme.Items) < 2 {
		return nil
	}
	list := &iconset.FiltersList{Kind: kind}
	for _, item := range theme.Items {
		list.Filters = append(list.Filters, &iconset.Filter{
			Title:            item.Title,
			Key:              item.Match,
			Match:            item.Match,
			Color:            item.Color,
			HiddenIfDisabled: true,
		})
	}
	return list
}

// indexFilters fills the membership bitmap of every filter in list and
// resets the derived state.
func indexFilters(idx *iconset.Index, list *iconset.FiltersList) {
	for _, f := range list.Filters {
		f.Icons = roaring.New()
	}
	for _, u := range idx.Unique {
		for _, f := range list.Filters {
			if list.Matches(f, u) {
				f.Icons.Add(uint32(u.Index))
			}
		}
	}
	for _, f := range list.Filters {
		f.Icons.RunOptimize()
		f.Disabled = false
	}
	list.Visible = len(list.Filters)
}
