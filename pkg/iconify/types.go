package iconify

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

// Info is the "info" block shared by raw icon sets and API responses.
type Info struct {
	Name          string   `json:"name"`
	Total         int      `json:"total,omitempty"`
	Version       string   `json:"version,omitempty"`
	Author        Author   `json:"author"`
	License       License  `json:"license"`
	Samples       []string `json:"samples,omitempty"`
	Height        []int    `json:"height,omitempty"`
	DisplayHeight int      `json:"displayHeight,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Palette       bool     `json:"palette,omitempty"`
	Hidden        bool     `json:"hidden,omitempty"`
}

// Transform holds the rotate/flip fields an alias may carry. Rotate is in
// quarter turns.
type Transform struct {
	Rotate int  `json:"rotate,omitempty"`
	HFlip  bool `json:"hFlip,omitempty"`
	VFlip  bool `json:"vFlip,omitempty"`
}

// IsZero reports whether the transform is a no-op. Rotations are taken
// modulo four so "rotate": 4 is a pure rename.
func (t Transform) IsZero() bool {
	return t.Rotate%4 == 0 && !t.HFlip && !t.VFlip
}

// Dimensions holds optional viewBox fields. Zero means "inherit".
type Dimensions struct {
	Left   int `json:"left,omitempty"`
	Top    int `json:"top,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Icon is a directly defined icon with a body.
type Icon struct {
	Name string
	Body string
	Dimensions
	Transform
	Hidden bool
}

// Alias is an alternate name for another icon or alias.
type Alias struct {
	Name   string
	Parent string
	Dimensions
	Transform
	Hidden bool
}

// Category lists the icon names filed under one title, in declaration order.
type Category struct {
	Title string
	Icons []string
}

// ThemeEntry is one prefix or suffix declaration: the key as written in
// the source and its display title. Keys of the "prefixes" and "suffixes"
// maps omit the "-" separator ("outline" matches "home-outline"). An empty
// key is the "default" theme.
type ThemeEntry struct {
	Match string
	Title string
}

// LegacyTheme is the older "themes" block, where each entry declares either
// a prefix or a suffix.
type LegacyTheme struct {
	Key    string
	Title  string
	Prefix string
	Suffix string
}

// Char maps a character code to an icon name.
type Char struct {
	Char string
	Name string
}

// IconSet is a raw Iconify JSON icon set. All maps of the wire format are
// kept as slices in document order.
type IconSet struct {
	Prefix       string
	Info         *Info
	Icons        []Icon
	Aliases      []Alias
	Categories   []Category
	Prefixes     []ThemeEntry
	Suffixes     []ThemeEntry
	Themes       []LegacyTheme
	Chars        []Char
	NotFound     []string
	LastModified int64
	Dimensions
}

// Collection is an API v2/v3 "/collection" response.
type Collection struct {
	Prefix        string
	Total         int
	Title         string
	Info          *Info
	Uncategorized []string
	Categories    []Category
	Hidden        []string
	Aliases       []Alias
	Chars         []Char
	Prefixes      []ThemeEntry
	Suffixes      []ThemeEntry
	Themes        []LegacyTheme
}

// CollectionInfo is one entry of a "/collections" response.
type CollectionInfo struct {
	Prefix string
	Info
}

// CollectionsList is an API "/collections" response in document order.
type CollectionsList struct {
	Collections []CollectionInfo
}

// SearchResponse is an API "/search" response. Icon names carry their
// prefix ("mdi:home").
type SearchResponse struct {
	Icons       []string
	Total       int
	Limit       int
	Start       int
	Collections []CollectionInfo
	Keyword     string
}
