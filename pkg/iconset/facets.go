package iconset

import (
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Category is a titled group of icons. Categories are interned by title
// within one conversion, so two names filed under the same title share the
// same *Category and can be compared by identity.
type Category struct {
	Title string `json:"title"`
	Color int    `json:"color"`
}

// ThemeKind is the kind of name theme.
type ThemeKind string

const (
	ThemePrefix ThemeKind = "prefix"
	ThemeSuffix ThemeKind = "suffix"
)

// ThemeItem is one declared prefix or suffix.
type ThemeItem struct {
	Title string `json:"title"`
	Match string `json:"match"`
	Color int    `json:"color"`
}

// Theme is a set of prefixes or suffixes used to group names.
type Theme struct {
	Kind ThemeKind `json:"type"`

	// Items are in declaration order.
	Items []*ThemeItem `json:"items"`

	// Sorted holds Items ordered by match length, longest first. Equal
	// lengths keep declaration order.
	Sorted []*ThemeItem `json:"-"`

	// Empty is the item whose match is "", if declared.
	Empty *ThemeItem `json:"-"`
}

// Match returns the item name belongs to: the longest declared match that
// name starts (prefix) or ends (suffix) with, or Empty when none does.
func (t *Theme) Match(name string) *ThemeItem {
	if t == nil {
		return nil
	}
	for _, item := range t.Sorted {
		if item.Match == "" {
			continue
		}
		if t.Kind == ThemePrefix && strings.HasPrefix(name, item.Match) {
			return item
		}
		if t.Kind == ThemeSuffix && strings.HasSuffix(name, item.Match) {
			return item
		}
	}
	return t.Empty
}

// FilterKind is one of the fixed facet kinds.
type FilterKind string

const (
	KindTags        FilterKind = "tags"
	KindPrefixes    FilterKind = "prefixes"
	KindSuffixes    FilterKind = "suffixes"
	KindCollections FilterKind = "collections"
)

// Kinds lists every facet kind in iteration order.
var Kinds = []FilterKind{KindTags, KindPrefixes, KindSuffixes, KindCollections}

// ParseKind returns the kind named s.
func ParseKind(s string) (FilterKind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Filter is one selectable facet value.
type Filter struct {
	Title string `json:"title"`
	Key   string `json:"key"`

	// Match is the category title, theme match string or collection
	// prefix this filter selects.
	Match string `json:"match"`
	Color int    `json:"color"`

	// Disabled is recomputed by every query: true when selecting this
	// filter on top of the current selection would yield no icons.
	Disabled bool `json:"disabled,omitempty"`

	// HiddenIfDisabled filters are not shown while disabled.
	HiddenIfDisabled bool `json:"hiddenIfDisabled,omitempty"`

	// Icons holds the positions in Index.Unique of clusters matching the
	// filter. It is shared between forks and never mutated after
	// conversion.
	Icons *roaring.Bitmap `json:"-"`
}

// Shown reports whether the filter counts as visible.
func (f *Filter) Shown() bool {
	return !(f.Disabled && f.HiddenIfDisabled)
}

// FiltersList is the list of filters of one kind.
type FiltersList struct {
	Kind     FilterKind `json:"type"`
	Filters  []*Filter  `json:"filters"`
	Selected *Filter    `json:"selected,omitempty"`

	// Visible is the number of filters for which Shown is true.
	Visible int `json:"visible"`
}

// Find returns the filter with the given key.
func (l *FiltersList) Find(key string) *Filter {
	if l == nil {
		return nil
	}
	for _, f := range l.Filters {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// Select selects the filter with key. It reports false when no filter has
// the key, leaving the selection unchanged. Keys may be empty: the default
// theme item matches "".
func (l *FiltersList) Select(key string) bool {
	f := l.Find(key)
	if f == nil {
		return false
	}
	l.Selected = f
	return true
}

// Clear removes the selection.
func (l *FiltersList) Clear() {
	l.Selected = nil
}

// CountVisible recomputes Visible.
func (l *FiltersList) CountVisible() int {
	n := 0
	for _, f := range l.Filters {
		if f.Shown() {
			n++
		}
	}
	l.Visible = n
	return n
}

// Matches reports whether u belongs to f under this list's kind:
//
//   - tags: one of u's categories has title f.Match
//   - prefixes, suffixes: one of u's names was assigned the theme item
//     matching f.Match
//   - collections: one of u's names is "<f.Match>:..."
func (l *FiltersList) Matches(f *Filter, u *UniqueIcon) bool {
	switch l.Kind {
	case KindTags:
		for _, c := range u.Categories {
			if c.Title == f.Match {
				return true
			}
		}
	case KindPrefixes:
		for _, icon := range u.Icons {
			if icon.Prefix != nil && icon.Prefix.Match == f.Match {
				return true
			}
		}
	case KindSuffixes:
		for _, icon := range u.Icons {
			if icon.Suffix != nil && icon.Suffix.Match == f.Match {
				return true
			}
		}
	case KindCollections:
		for _, icon := range u.Icons {
			if strings.HasPrefix(icon.Name, f.Match+":") {
				return true
			}
		}
	}
	return false
}

// Clone copies the list and its filters. Membership bitmaps are shared.
func (l *FiltersList) Clone() *FiltersList {
	if l == nil {
		return nil
	}
	c := &FiltersList{
		Kind:    l.Kind,
		Filters: make([]*Filter, len(l.Filters)),
		Visible: l.Visible,
	}
	for i, f := range l.Filters {
		cf := *f
		c.Filters[i] = &cf
		if l.Selected == f {
			c.Selected = &cf
		}
	}
	return c
}

// FilterSet holds the facet lists of an icon set. A nil field means the
// set has no facet of that kind.
type FilterSet struct {
	Tags        *FiltersList `json:"tags,omitempty"`
	Prefixes    *FiltersList `json:"prefixes,omitempty"`
	Suffixes    *FiltersList `json:"suffixes,omitempty"`
	Collections *FiltersList `json:"collections,omitempty"`
}

// Get returns the list for kind, or nil.
func (s *FilterSet) Get(kind FilterKind) *FiltersList {
	if s == nil {
		return nil
	}
	switch kind {
	case KindTags:
		return s.Tags
	case KindPrefixes:
		return s.Prefixes
	case KindSuffixes:
		return s.Suffixes
	case KindCollections:
		return s.Collections
	}
	return nil
}

// Set stores list under kind.
func (s *FilterSet) Set(kind FilterKind, list *FiltersList) {
	switch kind {
	case KindTags:
		s.Tags = list
	case KindPrefixes:
		s.Prefixes = list
	case KindSuffixes:
		s.Suffixes = list
	case KindCollections:
		s.Collections = list
	}
}

// All yields the non-nil lists in [Kinds] order.
func (s *FilterSet) All() iter.Seq2[FilterKind, *FiltersList] {
	return func(yield func(FilterKind, *FiltersList) bool) {
		for _, kind := range Kinds {
			list := s.Get(kind)
			if list == nil {
				continue
			}
			if !yield(kind, list) {
				return
			}
		}
	}
}

// Empty reports whether no facet list is present.
func (s *FilterSet) Empty() bool {
	for range s.All() {
		return false
	}
	return true
}

// ClearSelection clears the selection of every list.
func (s *FilterSet) ClearSelection() {
	for _, list := range s.All() {
		list.Clear()
	}
}

// Clone deep-copies the lists so selections can change independently.
func (s *FilterSet) Clone() *FilterSet {
	if s == nil {
		return &FilterSet{}
	}
	return &FilterSet{
		Tags:        s.Tags.Clone(),
		Prefixes:    s.Prefixes.Clone(),
		Suffixes:    s.Suffixes.Clone(),
		Collections: s.Collections.Clone(),
	}
}
