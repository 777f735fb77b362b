// Package iconset defines the canonical in-memory model of an icon set.
//
// An [IconSet] is produced once by a converter (see package convert) from
// one of the supported wire formats and is immutable afterwards, except for
// two pieces of consumer-owned state:
//
//   - [State]: the paging position chosen by the consumer.
//   - The Selected pointer and derived Disabled/Visible fields of each
//     [FiltersList] in [FilterSet].
//
// Both are reachable from the set so that the filter engine and the
// paginator can read and write them, but they live in their own records.
// [IconSet.Fork] hands an independent copy of that state to every consumer
// that needs one, while the icon [Index] and all derived facets stay
// shared.
package iconset

import (
	"fmt"

	"github.com/matzehuels/iconfinder/pkg/pagination"
)

// Source records the wire format an icon set was converted from. It is
// diagnostic only and never affects queries.
type Source string

const (
	SourceRaw        Source = "raw"
	SourceAPIv2      Source = "api-v2"
	SourceAPIv3      Source = "api-v3"
	SourceFilesystem Source = "filesystem"
)

// ID identifies an icon set within the process.
type ID struct {
	Provider string `json:"provider"`
	Prefix   string `json:"prefix"`
}

// String returns "provider:prefix", or just the prefix for the default
// provider.
func (id ID) String() string {
	if id.Provider == "" {
		return id.Prefix
	}
	return fmt.Sprintf("%s:%s", id.Provider, id.Prefix)
}

// Author identifies the author of an icon set.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// License describes the license of an icon set.
type License struct {
	Title string `json:"title"`
	SPDX  string `json:"spdx,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Info is the immutable metadata of an icon set.
type Info struct {
	Name     string   `json:"name"`
	Author   Author   `json:"author"`
	License  License  `json:"license"`
	Version  string   `json:"version,omitempty"`
	Height   []int    `json:"height,omitempty"`
	Category string   `json:"category,omitempty"`
	Palette  bool     `json:"palette"`
	Samples  []string `json:"samples,omitempty"`
	Total    int      `json:"total"`
	Hidden   bool     `json:"hidden,omitempty"`
}

// SearchInfo is attached to sets built from API search responses.
type SearchInfo struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit"`
	Start   int    `json:"start"`
	More    bool   `json:"more"` // the API truncated the result at Limit
}

// State is the mutable paging state of an icon set view.
type State struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage,omitempty"` // 0 means pagination.DefaultPerPage
}

// Pagination returns the state as a pagination config.
func (s *State) Pagination() pagination.Config {
	return pagination.At(s.Page, s.PerPage).WithDefaults()
}

// IconSet is the canonical representation of one icon collection for one
// provider.
type IconSet struct {
	ID     ID
	Source Source
	Info   *Info

	// Total is the number of visible unique icons.
	Total int
	Icons *Index

	Categories []*Category
	Prefixes   *Theme
	Suffixes   *Theme

	// Chars maps character codes of icon fonts to icon names.
	Chars map[string]string

	Filters *FilterSet
	State   *State

	Search *SearchInfo
}

// Fork returns a view of the set that shares the index and all derived
// data but owns a private copy of the filter selection and paging state.
func (s *IconSet) Fork() *IconSet {
	c := *s
	c.Filters = s.Filters.Clone()
	c.State = &State{}
	if s.State != nil {
		*c.State = *s.State
	}
	return &c
}

// Lookup returns the unique icon and the per-name record for name.
func (s *IconSet) Lookup(name string) (*UniqueIcon, *Icon, bool) {
	u, ok := s.Icons.UniqueMap[name]
	if !ok {
		return nil, nil, false
	}
	return u, s.Icons.IconsMap[name], true
}

// CharName returns the icon name mapped to a character code.
func (s *IconSet) CharName(char string) (string, bool) {
	name, ok := s.Chars[char]
	return name, ok
}
