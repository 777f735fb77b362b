package iconify

import (
	"slices"
	"testing"

	"github.com/matzehuels/iconfinder/pkg/errors"
)

const rawSet = `{
	"prefix": "test",
	"info": {
		"name": "Test Icons",
		"total": 3,
		"author": {"name": "Jane", "url": "https://example.com"},
		"license": {"title": "MIT", "spdx": "MIT"},
		"samples": ["home", "account"],
		"height": [16, 24],
		"category": "General",
		"palette": false
	},
	"icons": {
		"zebra": {"body": "<g/>"},
		"home": {"body": "<path/>", "width": 24},
		"account": {"body": "<path/>", "hidden": true},
		"broken": {"width": 10}
	},
	"aliases": {
		"house": {"parent": "home"},
		"arrow": {"parent": "zebra", "hFlip": true, "rotate": 1},
		"orphan": {}
	},
	"categories": {"Buildings": ["home", "house"], "Animals": ["zebra"]},
	"suffixes": {"": "Regular", "outline": "Outline"},
	"chars": {"f101": "home"},
	"width": 24,
	"height": 24
}`

func TestParseIconSet(t *testing.T) {
	set, err := ParseIconSet([]byte(rawSet))
	if err != nil {
		t.Fatalf("ParseIconSet() error: %v", err)
	}

	if set.Prefix != "test" {
		t.Errorf("Prefix = %q, want %q", set.Prefix, "test")
	}
	if set.Width != 24 || set.Height != 24 {
		t.Errorf("dimensions = %dx%d, want 24x24", set.Width, set.Height)
	}

	var names []string
	for _, icon := range set.Icons {
		names = append(names, icon.Name)
	}
	if want := []string{"zebra", "home", "account"}; !slices.Equal(names, want) {
		t.Errorf("icon order = %v, want %v", names, want)
	}
	if !set.Icons[2].Hidden {
		t.Error("account should be hidden")
	}
	if set.Icons[1].Width != 24 {
		t.Errorf("home width = %d, want 24", set.Icons[1].Width)
	}

	if len(set.Aliases) != 2 {
		t.Fatalf("got %d aliases, want 2 (orphan without parent dropped)", len(set.Aliases))
	}
	arrow := set.Aliases[1]
	if arrow.Parent != "zebra" || !arrow.HFlip || arrow.Rotate != 1 {
		t.Errorf("arrow alias = %+v", arrow)
	}
	if arrow.Transform.IsZero() {
		t.Error("arrow transform should not be zero")
	}
	if !set.Aliases[0].Transform.IsZero() {
		t.Error("house transform should be zero")
	}

	if len(set.Categories) != 2 || set.Categories[0].Title != "Buildings" || set.Categories[1].Title != "Animals" {
		t.Errorf("categories = %+v", set.Categories)
	}
	if len(set.Suffixes) != 2 || set.Suffixes[0].Match != "" || set.Suffixes[1].Title != "Outline" {
		t.Errorf("suffixes = %+v", set.Suffixes)
	}
	if len(set.Chars) != 1 || set.Chars[0].Name != "home" {
		t.Errorf("chars = %+v", set.Chars)
	}
}

func TestParseIconSetInfo(t *testing.T) {
	set, err := ParseIconSet([]byte(rawSet))
	if err != nil {
		t.Fatalf("ParseIconSet() error: %v", err)
	}
	info := set.Info
	if info == nil {
		t.Fatal("Info is nil")
	}
	if info.Name != "Test Icons" || info.Author.Name != "Jane" || info.License.SPDX != "MIT" {
		t.Errorf("info = %+v", info)
	}
	if !slices.Equal(info.Height, []int{16, 24}) {
		t.Errorf("Height = %v, want [16 24]", info.Height)
	}
	if !slices.Equal(info.Samples, []string{"home", "account"}) {
		t.Errorf("Samples = %v", info.Samples)
	}
}

func TestParseIconSetLegacyInfo(t *testing.T) {
	data := `{"prefix":"old","info":{"name":"Old","author":"Bob","url":"https://bob","license":"GPL","height":16},"icons":{"a":{"body":""}}}`
	set, err := ParseIconSet([]byte(data))
	if err != nil {
		t.Fatalf("ParseIconSet() error: %v", err)
	}
	if set.Info.Author.Name != "Bob" || set.Info.Author.URL != "https://bob" {
		t.Errorf("Author = %+v", set.Info.Author)
	}
	if set.Info.License.Title != "GPL" {
		t.Errorf("License = %+v", set.Info.License)
	}
	if !slices.Equal(set.Info.Height, []int{16}) {
		t.Errorf("Height = %v", set.Info.Height)
	}
}

func TestParseIconSetErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"invalid json", `{"prefix":`, errors.ErrCodeInvalidData},
		{"array", `[]`, errors.ErrCodeInvalidData},
		{"string", `"mdi"`, errors.ErrCodeInvalidData},
		{"status 404", `404`, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIconSet([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestParseCollection(t *testing.T) {
	data := `{
		"prefix": "mdi",
		"total": 3,
		"title": "Material Design Icons",
		"info": {"name": "Material Design Icons", "author": {"name": "Pictogrammers"}},
		"categories": {"Home": ["home", "home-outline"]},
		"uncategorized": ["account"],
		"hidden": ["old-home"],
		"aliases": {"house": "home", "flipped": {"parent": "account", "hFlip": true}, "bad": 5},
		"suffixes": {"": "Filled", "outline": "Outline"}
	}`
	c, err := ParseCollection([]byte(data))
	if err != nil {
		t.Fatalf("ParseCollection() error: %v", err)
	}
	if c.Prefix != "mdi" || c.Total != 3 || c.Title != "Material Design Icons" {
		t.Errorf("collection = %+v", c)
	}
	if len(c.Categories) != 1 || !slices.Equal(c.Categories[0].Icons, []string{"home", "home-outline"}) {
		t.Errorf("Categories = %+v", c.Categories)
	}
	if !slices.Equal(c.Uncategorized, []string{"account"}) || !slices.Equal(c.Hidden, []string{"old-home"}) {
		t.Errorf("Uncategorized = %v, Hidden = %v", c.Uncategorized, c.Hidden)
	}
	if len(c.Aliases) != 2 {
		t.Fatalf("got %d aliases, want 2", len(c.Aliases))
	}
	if c.Aliases[0].Name != "house" || c.Aliases[0].Parent != "home" {
		t.Errorf("alias[0] = %+v", c.Aliases[0])
	}
	if !c.Aliases[1].HFlip {
		t.Errorf("alias[1] should be flipped: %+v", c.Aliases[1])
	}
}

func TestParseCollections(t *testing.T) {
	data := `{
		"mdi": {"name": "Material Design Icons", "total": 7000, "category": "General"},
		"fa": {"name": "Font Awesome", "total": 1500, "category": "General", "hidden": true},
		"broken": 5
	}`
	list, err := ParseCollections([]byte(data))
	if err != nil {
		t.Fatalf("ParseCollections() error: %v", err)
	}
	if len(list.Collections) != 2 {
		t.Fatalf("got %d collections, want 2", len(list.Collections))
	}
	if list.Collections[0].Prefix != "mdi" || list.Collections[1].Prefix != "fa" {
		t.Errorf("order = %s, %s", list.Collections[0].Prefix, list.Collections[1].Prefix)
	}
	if !list.Collections[1].Hidden {
		t.Error("fa should be hidden")
	}
}

func TestParseSearch(t *testing.T) {
	data := `{
		"icons": ["mdi:home", "fa:home"],
		"total": 2,
		"limit": 64,
		"start": 0,
		"collections": {"mdi": {"name": "MDI"}, "fa": {"name": "FA"}},
		"request": {"query": "home"}
	}`
	res, err := ParseSearch([]byte(data))
	if err != nil {
		t.Fatalf("ParseSearch() error: %v", err)
	}
	if !slices.Equal(res.Icons, []string{"mdi:home", "fa:home"}) {
		t.Errorf("Icons = %v", res.Icons)
	}
	if res.Limit != 64 || res.Total != 2 || res.Keyword != "home" {
		t.Errorf("response = %+v", res)
	}
	if len(res.Collections) != 2 {
		t.Errorf("got %d collections, want 2", len(res.Collections))
	}
}
