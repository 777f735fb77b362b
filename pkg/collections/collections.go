// Package collections models the list of icon sets a provider offers and
// searches it.
package collections

import (
	"strings"

	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// Collection is one icon set in a provider's list.
type Collection struct {
	Prefix   string          `json:"prefix"`
	Name     string          `json:"name"`
	Total    int             `json:"total"`
	Author   iconset.Author  `json:"author"`
	License  iconset.License `json:"license"`
	Samples  []string        `json:"samples,omitempty"`
	Height   []int           `json:"height,omitempty"`
	Palette  bool            `json:"palette"`
	Hidden   bool            `json:"hidden,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
	Category *Category       `json:"-"`

	// search is the lowercased text keywords are matched against.
	search string
}

// Category groups collections. Colors follow first-seen order, except
// that the uncategorized group is always last.
type Category struct {
	Title string `json:"title"`
	Color int    `json:"color"`
	Count int    `json:"count"` // visible collections
}

// List is a provider's collection list.
type List struct {
	Provider    string
	Collections []*Collection // grouped by category, declaration order within
	Categories  []*Category
	Selected    *Category

	byPrefix map[string]*Collection
}

// Convert builds a list from an API "/collections" response. It returns
// nil when the response lists nothing.
func Convert(provider string, raw *iconify.CollectionsList) *List {
	if raw == nil || len(raw.Collections) == 0 {
		return nil
	}

	l := &List{Provider: provider, byPrefix: make(map[string]*Collection)}
	cats := make(map[string]*Category)
	var uncategorized *Category
	groups := make(map[*Category][]*Collection)

	for _, rc := range raw.Collections {
		if _, dup := l.byPrefix[rc.Prefix]; dup {
			continue
		}
		c := &Collection{
			Prefix:  rc.Prefix,
			Name:    rc.Name,
			Total:   rc.Total,
			Author:  iconset.Author{Name: rc.Author.Name, URL: rc.Author.URL},
			License: iconset.License{Title: rc.License.Title, SPDX: rc.License.SPDX, URL: rc.License.URL},
			Samples: rc.Samples,
			Height:  rc.Height,
			Palette: rc.Palette,
			Hidden:  rc.Hidden,
			Tags:    rc.Tags,
		}
		if c.Name == "" {
			c.Name = c.Prefix
		}

		cat, ok := cats[rc.Category]
		if !ok {
			cat = &Category{Title: rc.Category}
			cats[rc.Category] = cat
			if rc.Category == "" {
				uncategorized = cat
			} else {
				cat.Color = len(l.Categories)
				l.Categories = append(l.Categories, cat)
			}
		}
		c.Category = cat
		if !c.Hidden {
			cat.Count++
		}
		c.search = strings.ToLower(strings.Join([]string{c.Prefix, c.Name, c.Author.Name, cat.Title}, " "))

		l.byPrefix[c.Prefix] = c
		groups[cat] = append(groups[cat], c)
	}
	if uncategorized != nil {
		uncategorized.Color = len(l.Categories)
		l.Categories = append(l.Categories, uncategorized)
	}
	for _, cat := range l.Categories {
		l.Collections = append(l.Collections, groups[cat]...)
	}
	return l
}

// Get returns the collection with prefix.
func (l *List) Get(prefix string) (*Collection, bool) {
	c, ok := l.byPrefix[prefix]
	return c, ok
}

// Category returns the category titled title.
func (l *List) Category(title string) *Category {
	for _, c := range l.Categories {
		if c.Title == title {
			return c
		}
	}
	return nil
}

// Filter returns the visible collections matching keyword within the
// selected category, in list order. Every whitespace-separated word of the
// keyword must occur in the prefix, name, author or category title.
func Filter(l *List, keyword string) []*Collection {
	words := strings.Fields(strings.ToLower(keyword))
	out := make([]*Collection, 0, len(l.Collections))
	for _, c := range l.Collections {
		if c.Hidden {
			continue
		}
		if l.Selected != nil && c.Category != l.Selected {
			continue
		}
		if !matches(c, words) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c *Collection, words []string) bool {
	for _, w := range words {
		if !strings.Contains(c.search, w) {
			return false
		}
	}
	return true
}
