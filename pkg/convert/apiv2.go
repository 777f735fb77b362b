package convert

import (
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// APIv2IconSet converts an API "/collection" response. It returns nil when
// the response has neither an info block nor a title, or lists no icons.
//
// The response does not separate icons from aliases in its name lists, so
// direct icons are every listed name that is not an alias key, in order of
// first occurrence: categories, then uncategorized, then hidden. Hidden
// state comes only from the explicit "hidden" list.
func APIv2IconSet(provider string, raw *iconify.Collection) *iconset.IconSet {
	return apiIconSet(provider, raw, iconset.SourceAPIv2)
}

// APIv3IconSet converts an API v3 "/collection" response, which shares the
// v2 shape.
func APIv3IconSet(provider string, raw *iconify.Collection) *iconset.IconSet {
	return apiIconSet(provider, raw, iconset.SourceAPIv3)
}

func apiIconSet(provider string, raw *iconify.Collection, source iconset.Source) *iconset.IconSet {
	if raw == nil {
		return nil
	}
	info := convertInfo(raw.Info)
	if info == nil {
		if raw.Title == "" {
			return nil
		}
		info = &iconset.Info{Name: raw.Title}
	}

	hidden := make(map[string]bool, len(raw.Hidden))
	for _, name := range raw.Hidden {
		hidden[name] = true
	}
	aliases := make(map[string]bool, len(raw.Aliases))
	for _, a := range raw.Aliases {
		aliases[a.Name] = true
	}

	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, name := range list {
			if name == "" || seen[name] || aliases[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, c := range raw.Categories {
		add(c.Icons)
	}
	add(raw.Uncategorized)
	add(raw.Hidden)

	b := newBuilder()
	for _, name := range names {
		b.addIcon(name, hidden[name])
	}
	b.resolveAliases(aliasDefs(raw.Aliases, func(a iconify.Alias) bool { return hidden[a.Name] }), false)
	b.addCategories(raw.Categories)

	set := b.build(
		iconset.ID{Provider: provider, Prefix: raw.Prefix},
		source,
		info,
		themesOf(raw.Prefixes, raw.Suffixes, raw.Themes),
	)
	if set == nil {
		return nil
	}
	set.Chars = charsOf(set.Icons, raw.Chars)
	return set
}
