// Package convert turns parsed icon data into the canonical [iconset.IconSet].
//
// Every converter runs the same steps on a fresh builder:
//
//  1. Register directly defined icons as singleton clusters.
//  2. Resolve aliases with a bounded worklist (see [resolveAliases]). Pure
//     renames join their parent's cluster, transformed aliases become their
//     own cluster rendering the parent's body.
//  3. Attach categories, interned by title so names filed under the same
//     title share one *iconset.Category.
//  4. Compute cluster visibility and the visible total.
//  5. Derive facets: themes, tags and collections, each with its own
//     0-based color sequence in first-seen order.
//
// Converters return nil when the input carries no usable data: no info
// block, or no icons. Callers treat nil as "icon set does not exist".
// Broken aliases never fail a conversion; they are dropped.
package convert

import (
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// builder accumulates one conversion.
type builder struct {
	index *iconset.Index

	// categories interns categories by title.
	categories []*iconset.Category
	byTitle    map[string]*iconset.Category
}

func newBuilder() *builder {
	return &builder{
		index:   iconset.NewIndex(),
		byTitle: make(map[string]*iconset.Category),
	}
}

// addIcon registers a directly defined icon. Duplicate names are ignored.
func (b *builder) addIcon(name string, hidden bool) {
	if name == "" || b.index.Has(name) {
		return
	}
	b.index.Add(&iconset.Icon{Name: name, Hidden: hidden}, name, iconset.Transform{})
}

// category returns the interned category for title, creating it with the
// next color on first use.
func (b *builder) category(title string) *iconset.Category {
	if c, ok := b.byTitle[title]; ok {
		return c
	}
	c := &iconset.Category{Title: title, Color: len(b.categories)}
	b.categories = append(b.categories, c)
	b.byTitle[title] = c
	return c
}

// addCategories files names under their categories in declaration order.
// Unknown names are skipped and do not claim a color.
func (b *builder) addCategories(cats []iconify.Category) {
	for _, rc := range cats {
		for _, name := range rc.Icons {
			icon, ok := b.index.IconsMap[name]
			if !ok {
				continue
			}
			c := b.category(rc.Title)
			icon.Categories = appendCategory(icon.Categories, c)
			u := b.index.UniqueMap[name]
			u.Categories = appendCategory(u.Categories, c)
		}
	}
}

// dropHiddenCategories removes categories that no visible cluster is filed
// under and renumbers the colors of the rest.
func (b *builder) dropHiddenCategories() {
	used := make(map[*iconset.Category]bool, len(b.categories))
	for _, u := range b.index.Unique {
		if u.Hidden {
			continue
		}
		for _, c := range u.Categories {
			used[c] = true
		}
	}
	if len(used) == len(b.categories) {
		return
	}

	kept := b.categories[:0]
	for _, c := range b.categories {
		if !used[c] {
			delete(b.byTitle, c.Title)
			continue
		}
		c.Color = len(kept)
		kept = append(kept, c)
	}
	b.categories = kept

	keep := func(list []*iconset.Category) []*iconset.Category {
		var out []*iconset.Category
		for _, c := range list {
			if used[c] {
				out = append(out, c)
			}
		}
		return out
	}
	for _, u := range b.index.Unique {
		u.Categories = keep(u.Categories)
		for _, icon := range u.Icons {
			icon.Categories = keep(icon.Categories)
		}
	}
}

func appendCategory(list []*iconset.Category, c *iconset.Category) []*iconset.Category {
	for _, existing := range list {
		if existing == c {
			return list
		}
	}
	return append(list, c)
}

// themes holds the declared theme entries of a source.
type themes struct {
	prefixes []iconify.ThemeEntry
	suffixes []iconify.ThemeEntry
}

// themesOf returns the modern prefix/suffix declarations, falling back to
// the legacy "themes" block when neither is present. Modern keys get the
// "-" separator added; legacy entries already carry it.
func themesOf(prefixes, suffixes []iconify.ThemeEntry, legacy []iconify.LegacyTheme) themes {
	if len(prefixes) > 0 || len(suffixes) > 0 {
		return themes{
			prefixes: separated(prefixes, func(k string) string { return k + "-" }),
			suffixes: separated(suffixes, func(k string) string { return "-" + k }),
		}
	}
	var t themes
	for _, lt := range legacy {
		title := lt.Title
		if title == "" {
			title = lt.Key
		}
		switch {
		case lt.Prefix != "":
			t.prefixes = append(t.prefixes, iconify.ThemeEntry{Match: lt.Prefix, Title: title})
		case lt.Suffix != "":
			t.suffixes = append(t.suffixes, iconify.ThemeEntry{Match: lt.Suffix, Title: title})
		}
	}
	return t
}

// separated returns entries with every non-empty key passed through sep.
func separated(entries []iconify.ThemeEntry, sep func(string) string) []iconify.ThemeEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]iconify.ThemeEntry, len(entries))
	for i, e := range entries {
		if e.Match != "" {
			e.Match = sep(e.Match)
		}
		out[i] = e
	}
	return out
}

// build finishes the conversion. It returns nil when no icons were
// registered.
func (b *builder) build(id iconset.ID, source iconset.Source, info *iconset.Info, th themes) *iconset.IconSet {
	if len(b.index.Unique) == 0 {
		return nil
	}

	b.inheritCategories()
	total := b.index.Finalize()
	b.dropHiddenCategories()
	b.addUncategorized()

	set := &iconset.IconSet{
		ID:         id,
		Source:     source,
		Info:       info,
		Total:      total,
		Icons:      b.index,
		Categories: b.categories,
		Prefixes:   buildTheme(b.index, iconset.ThemePrefix, th.prefixes),
		Suffixes:   buildTheme(b.index, iconset.ThemeSuffix, th.suffixes),
		State:      &iconset.State{},
	}
	if info != nil && info.Total == 0 {
		info.Total = total
	}
	set.Filters = buildFilters(set)
	return set
}

// convertInfo copies the wire info block. A nil block stays nil.
func convertInfo(in *iconify.Info) *iconset.Info {
	if in == nil {
		return nil
	}
	return &iconset.Info{
		Name:     in.Name,
		Author:   iconset.Author{Name: in.Author.Name, URL: in.Author.URL},
		License:  iconset.License{Title: in.License.Title, SPDX: in.License.SPDX, URL: in.License.URL},
		Version:  in.Version,
		Height:   in.Height,
		Category: in.Category,
		Palette:  in.Palette,
		Samples:  in.Samples,
		Total:    in.Total,
		Hidden:   in.Hidden,
	}
}

// charsOf keeps the character mappings that point at registered names.
func charsOf(idx *iconset.Index, chars []iconify.Char) map[string]string {
	if len(chars) == 0 {
		return nil
	}
	out := make(map[string]string, len(chars))
	for _, c := range chars {
		if idx.Has(c.Name) {
			out[c.Char] = c.Name
		}
	}
	return out
}
