package convert

import (
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// RawIconSet converts a raw Iconify JSON icon set. It returns nil when the
// set has no info block or no icons.
//
// Hidden flags are per name: an alias is hidden when it is marked hidden
// itself or when its parent name is hidden.
func RawIconSet(provider string, raw *iconify.IconSet) *iconset.IconSet {
	return rawIconSet(provider, raw, iconset.SourceRaw)
}

// FilesystemIconSet converts a raw icon set read from a local directory.
// It differs from [RawIconSet] only in the recorded source.
func FilesystemIconSet(provider string, raw *iconify.IconSet) *iconset.IconSet {
	return rawIconSet(provider, raw, iconset.SourceFilesystem)
}

func rawIconSet(provider string, raw *iconify.IconSet, source iconset.Source) *iconset.IconSet {
	if raw == nil || raw.Info == nil {
		return nil
	}

	b := newBuilder()
	for _, icon := range raw.Icons {
		b.addIcon(icon.Name, icon.Hidden)
	}
	b.resolveAliases(aliasDefs(raw.Aliases, func(a iconify.Alias) bool { return a.Hidden }), true)
	b.addCategories(raw.Categories)

	set := b.build(
		iconset.ID{Provider: provider, Prefix: raw.Prefix},
		source,
		convertInfo(raw.Info),
		themesOf(raw.Prefixes, raw.Suffixes, raw.Themes),
	)
	if set == nil {
		return nil
	}
	set.Chars = charsOf(set.Icons, raw.Chars)
	return set
}
