// Package filter answers keyword and facet queries against an icon set.
//
// A query has three inputs: the keyword, the Selected filter of every facet
// list and the icon index. It produces the matching clusters in index
// order and, as a side effect, the Disabled flag of every filter and the
// Visible count of every list. Selections and flags live in the set's
// [iconset.FilterSet], so callers that share a set across goroutines must
// query a fork (see [iconset.IconSet.Fork]).
//
// Matching rules:
//
//   - Hidden clusters are excluded unless the keyword is exactly one of
//     their names.
//   - The keyword is split on whitespace; a cluster matches when one of
//     its names contains every word, ignoring case.
//   - A cluster must belong to the selected filter of every list.
//   - Clusters that render the same body with the same transform are
//     reported once, at the first position.
//
// A filter is disabled when selecting it instead of its list's current
// selection would leave no result. Selected filters are never disabled.
package filter

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// IconSet runs a query against set and returns the matching clusters as a
// new slice. Filter state in set.Filters is updated in place.
func IconSet(set *iconset.IconSet, keyword string) []*iconset.UniqueIcon {
	idx := set.Icons
	base := keywordBitmap(set, keyword)

	selected := make(map[iconset.FilterKind]*roaring.Bitmap)
	for kind, list := range set.Filters.All() {
		if list.Selected != nil {
			selected[kind] = list.Selected.Icons
		}
	}

	result := base.Clone()
	for _, bm := range selected {
		result.And(bm)
	}

	for kind, list := range set.Filters.All() {
		others := base.Clone()
		for k, bm := range selected {
			if k != kind {
				others.And(bm)
			}
		}
		for _, f := range list.Filters {
			f.Disabled = f != list.Selected && !f.Icons.Intersects(others)
		}
		list.CountVisible()
	}

	out := make([]*iconset.UniqueIcon, 0, result.GetCardinality())
	seen := make(map[renderKey]bool)
	it := result.Iterator()
	for it.HasNext() {
		u := idx.Unique[it.Next()]
		if key := keyOf(u); !seen[key] {
			seen[key] = true
			out = append(out, u)
		}
	}
	return out
}

// keywordBitmap returns the positions of visible clusters matching
// keyword, plus the cluster directly named by it even when hidden.
func keywordBitmap(set *iconset.IconSet, keyword string) *roaring.Bitmap {
	idx := set.Icons
	words := splitKeyword(keyword)
	if len(words) == 0 {
		return idx.Visible.Clone()
	}

	bm := roaring.New()
	it := idx.Visible.Iterator()
	for it.HasNext() {
		pos := it.Next()
		if matchesWords(idx.Unique[pos], words) {
			bm.Add(pos)
		}
	}
	if u := directMatch(set, keyword); u != nil {
		bm.Add(uint32(u.Index))
	}
	return bm
}

// directMatch returns the cluster whose name is exactly keyword, accepting
// a leading "prefix:" of the set.
func directMatch(set *iconset.IconSet, keyword string) *iconset.UniqueIcon {
	name := strings.TrimSpace(keyword)
	if u, ok := set.Icons.UniqueMap[name]; ok {
		return u
	}
	if prefix, rest, ok := strings.Cut(name, ":"); ok && prefix == set.ID.Prefix {
		return set.Icons.UniqueMap[rest]
	}
	return nil
}

// UniqueIconsByKeyword applies the matching rules to an arbitrary list of
// clusters. Filter selections are read from filters and Disabled flags are
// recomputed by testing membership directly, so the list does not have to
// come from the index the filters were built for. A nil filters matches
// on keyword only.
func UniqueIconsByKeyword(icons []*iconset.UniqueIcon, filters *iconset.FilterSet, keyword string) []*iconset.UniqueIcon {
	words := splitKeyword(keyword)
	exact := strings.TrimSpace(keyword)

	var base []*iconset.UniqueIcon
	for _, u := range icons {
		switch {
		case len(words) > 0 && hasName(u, exact):
			base = append(base, u)
		case u.Hidden:
		case len(words) == 0 || matchesWords(u, words):
			base = append(base, u)
		}
	}

	inSelection := func(u *iconset.UniqueIcon, skip iconset.FilterKind) bool {
		for kind, list := range filters.All() {
			if kind == skip || list.Selected == nil {
				continue
			}
			if !list.Matches(list.Selected, u) {
				return false
			}
		}
		return true
	}

	for kind, list := range filters.All() {
		for _, f := range list.Filters {
			if f == list.Selected {
				f.Disabled = false
				continue
			}
			f.Disabled = true
			for _, u := range base {
				if list.Matches(f, u) && inSelection(u, kind) {
					f.Disabled = false
					break
				}
			}
		}
		list.CountVisible()
	}

	out := make([]*iconset.UniqueIcon, 0, len(base))
	seen := make(map[renderKey]bool)
	for _, u := range base {
		if !inSelection(u, "") {
			continue
		}
		if key := keyOf(u); !seen[key] {
			seen[key] = true
			out = append(out, u)
		}
	}
	return out
}

func hasName(u *iconset.UniqueIcon, name string) bool {
	for _, icon := range u.Icons {
		if icon.Name == name {
			return true
		}
	}
	return false
}

// renderKey identifies what a cluster draws.
type renderKey struct {
	render    string
	transform iconset.Transform
}

func keyOf(u *iconset.UniqueIcon) renderKey {
	return renderKey{u.Render, u.Transform}
}

func splitKeyword(keyword string) []string {
	return strings.Fields(strings.ToLower(keyword))
}

func matchesWords(u *iconset.UniqueIcon, words []string) bool {
	for _, icon := range u.Icons {
		name := strings.ToLower(icon.Name)
		all := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
