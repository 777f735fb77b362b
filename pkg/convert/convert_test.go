package convert

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

const fixture = `{
	"prefix": "test",
	"info": {"name": "Test", "author": {"name": "Jane"}, "license": {"title": "MIT"}},
	"icons": {
		"home": {"body": "<g/>"},
		"account": {"body": "<g/>"},
		"arrow-left": {"body": "<g/>"},
		"iconify2": {"body": "<g/>", "hidden": true},
		"home-outline": {"body": "<g/>"}
	},
	"aliases": {
		"house": {"parent": "home"},
		"arrow-right": {"parent": "arrow-left", "hFlip": true},
		"old-account": {"parent": "account", "hidden": true},
		"secret-alias": {"parent": "iconify2"}
	},
	"categories": {
		"Buildings": ["home", "house", "home-outline"],
		"Arrows": ["arrow-left"]
	},
	"suffixes": {"": "Regular", "outline": "Outline"},
	"chars": {"f101": "home", "f102": "missing"}
}`

func parse(t *testing.T, data string) *iconify.IconSet {
	t.Helper()
	raw, err := iconify.ParseIconSet([]byte(data))
	require.NoError(t, err)
	return raw
}

func fixtureSet(t *testing.T) *iconset.IconSet {
	t.Helper()
	set := RawIconSet("", parse(t, fixture))
	require.NotNil(t, set)
	return set
}

func TestRawIconSetPureAlias(t *testing.T) {
	set := fixtureSet(t)
	idx := set.Icons

	assert.Same(t, idx.UniqueMap["home"], idx.UniqueMap["house"])
	assert.Equal(t, []string{"home", "house"}, idx.UniqueMap["home"].Names())
	assert.Equal(t, "home", idx.UniqueMap["house"].Render)
	assert.Equal(t, "home", idx.IconsMap["house"].Parent)
	assert.Equal(t, iconset.SourceRaw, set.Source)
	assert.Equal(t, iconset.ID{Prefix: "test"}, set.ID)
}

func TestRawIconSetTransformedAlias(t *testing.T) {
	set := fixtureSet(t)
	idx := set.Icons

	left := idx.UniqueMap["arrow-left"]
	right := idx.UniqueMap["arrow-right"]
	require.NotSame(t, left, right)

	assert.Equal(t, "arrow-left", right.Render)
	assert.Equal(t, iconset.Transform{HFlip: true}, right.Transform)
	assert.Equal(t, []string{"arrow-right"}, left.Transformations)
	assert.Equal(t, []string{"arrow-left"}, left.Names())
	assert.Equal(t, 5, right.Index)
}

func TestRawIconSetHiddenAndTotal(t *testing.T) {
	set := fixtureSet(t)
	idx := set.Icons

	assert.True(t, idx.IconsMap["old-account"].Hidden)
	assert.False(t, idx.UniqueMap["account"].Hidden, "a visible name keeps the cluster visible")
	assert.True(t, idx.IconsMap["secret-alias"].Hidden, "alias of a hidden icon is hidden")
	assert.True(t, idx.UniqueMap["iconify2"].Hidden)

	visible := 0
	for _, u := range idx.Unique {
		allHidden := true
		for _, icon := range u.Icons {
			allHidden = allHidden && icon.Hidden
		}
		assert.Equal(t, allHidden, u.Hidden, u.Name())
		if !u.Hidden {
			visible++
		}
	}
	assert.Equal(t, visible, set.Total)
	assert.Equal(t, 5, set.Total)
	assert.Equal(t, uint64(5), idx.Visible.GetCardinality())
	assert.Equal(t, 5, set.Info.Total)
}

func TestRawIconSetEveryNameOnce(t *testing.T) {
	set := fixtureSet(t)
	names := []string{
		"home", "account", "arrow-left", "iconify2", "home-outline",
		"house", "arrow-right", "old-account", "secret-alias",
	}
	assert.Len(t, set.Icons.UniqueMap, len(names))
	assert.Len(t, set.Icons.IconsMap, len(names))

	count := 0
	for _, u := range set.Icons.Unique {
		count += len(u.Icons)
	}
	assert.Equal(t, len(names), count)
}

func TestRawIconSetCategories(t *testing.T) {
	set := fixtureSet(t)
	idx := set.Icons

	require.Len(t, set.Categories, 3)
	buildings, arrows, uncategorized := set.Categories[0], set.Categories[1], set.Categories[2]
	assert.Equal(t, iconset.Category{Title: "Buildings", Color: 0}, *buildings)
	assert.Equal(t, iconset.Category{Title: "Arrows", Color: 1}, *arrows)
	assert.Equal(t, iconset.Category{Title: "", Color: 2}, *uncategorized)

	assert.Same(t, buildings, idx.IconsMap["home"].Categories[0])
	assert.Same(t, buildings, idx.IconsMap["house"].Categories[0])
	assert.Same(t, buildings, idx.UniqueMap["home-outline"].Categories[0])
	assert.Len(t, idx.UniqueMap["home"].Categories, 1, "cluster categories are deduplicated")

	assert.Same(t, arrows, idx.UniqueMap["arrow-right"].Categories[0], "variant inherits categories")
	assert.Same(t, uncategorized, idx.UniqueMap["account"].Categories[0])
	assert.Empty(t, idx.UniqueMap["iconify2"].Categories, "hidden clusters stay uncategorized")
}

func TestRawIconSetSuffixes(t *testing.T) {
	set := fixtureSet(t)
	require.NotNil(t, set.Suffixes)
	assert.Nil(t, set.Prefixes)

	regular, outline := set.Suffixes.Items[0], set.Suffixes.Items[1]
	assert.Equal(t, "", regular.Match)
	assert.Equal(t, 0, regular.Color)
	assert.Equal(t, "-outline", outline.Match)
	assert.Equal(t, 1, outline.Color)
	assert.Same(t, regular, set.Suffixes.Empty)
	assert.Same(t, outline, set.Suffixes.Sorted[0])

	assert.Same(t, outline, set.Icons.IconsMap["home-outline"].Suffix)
	assert.Same(t, regular, set.Icons.IconsMap["home"].Suffix)
}

func TestRawIconSetFilters(t *testing.T) {
	set := fixtureSet(t)
	fs := set.Filters
	require.NotNil(t, fs.Tags)
	require.NotNil(t, fs.Suffixes)
	assert.Nil(t, fs.Prefixes)
	assert.Nil(t, fs.Collections)

	var titles []string
	for _, f := range fs.Tags.Filters {
		titles = append(titles, f.Title)
		assert.False(t, f.HiddenIfDisabled)
	}
	assert.Equal(t, []string{"Buildings", "Arrows", "Uncategorized"}, titles)
	assert.Equal(t, 3, fs.Tags.Visible)

	assert.Equal(t, []uint32{0, 4}, fs.Tags.Find("Buildings").Icons.ToArray())
	assert.Equal(t, []uint32{2, 5}, fs.Tags.Find("Arrows").Icons.ToArray())
	assert.Equal(t, []uint32{1}, fs.Tags.Find("").Icons.ToArray())

	outline := fs.Suffixes.Find("-outline")
	require.NotNil(t, outline)
	assert.True(t, outline.HiddenIfDisabled)
	assert.Equal(t, []uint32{4}, outline.Icons.ToArray())
}

func TestRawIconSetChars(t *testing.T) {
	set := fixtureSet(t)
	assert.Equal(t, map[string]string{"f101": "home"}, set.Chars)
	name, ok := set.CharName("f101")
	assert.True(t, ok)
	assert.Equal(t, "home", name)
}

func TestRawIconSetAbsentData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no info", `{"prefix":"x","icons":{"a":{"body":""}}}`},
		{"no icons", `{"prefix":"x","info":{"name":"X"},"icons":{}}`},
		{"only aliases", `{"prefix":"x","info":{"name":"X"},"icons":{},"aliases":{"a":{"parent":"b"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, RawIconSet("", parse(t, tt.data)))
		})
	}
	assert.Nil(t, RawIconSet("", nil))
}

func TestRawIconSetBrokenAliases(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {"a": {"body": ""}},
		"aliases": {
			"self": {"parent": "self"},
			"loop1": {"parent": "loop2"},
			"loop2": {"parent": "loop1"},
			"dangling": {"parent": "missing"},
			"child": {"parent": "dangling"},
			"a": {"parent": "a"},
			"ok": {"parent": "a"}
		}
	}`))
	require.NotNil(t, set)

	for _, name := range []string{"self", "loop1", "loop2", "dangling", "child"} {
		assert.NotContains(t, set.Icons.UniqueMap, name)
		assert.NotContains(t, set.Icons.IconsMap, name)
	}
	assert.Equal(t, []string{"a", "ok"}, set.Icons.UniqueMap["a"].Names())
	assert.Equal(t, 1, set.Total)
}

func TestAliasOrderIndependence(t *testing.T) {
	aliases := []string{
		`"a1": {"parent": "base"}`,
		`"a2": {"parent": "a1", "hFlip": true}`,
		`"a3": {"parent": "a2"}`,
		`"a4": {"parent": "a3", "rotate": 1}`,
	}

	type clusterShape struct {
		render    string
		transform iconset.Transform
		names     []string
	}
	shape := func(set *iconset.IconSet) map[string]clusterShape {
		out := make(map[string]clusterShape)
		for name, u := range set.Icons.UniqueMap {
			names := u.Names()
			slices.Sort(names)
			out[name] = clusterShape{u.Render, u.Transform, names}
		}
		return out
	}

	var want map[string]clusterShape
	for _, perm := range permutations(len(aliases)) {
		body := ""
		for i, p := range perm {
			if i > 0 {
				body += ","
			}
			body += aliases[p]
		}
		set := RawIconSet("", parse(t, `{"prefix":"x","info":{"name":"X"},"icons":{"base":{"body":""}},"aliases":{`+body+`}}`))
		require.NotNil(t, set)

		got := shape(set)
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "permutation %v", perm)
	}

	require.Len(t, want, 5)
	assert.Equal(t, []string{"a1", "base"}, want["a1"].names)
	assert.Equal(t, []string{"a2", "a3"}, want["a3"].names)
	assert.Equal(t, "base", want["a3"].render)
	assert.Equal(t, iconset.Transform{HFlip: true, Rotate: 1}, want["a4"].transform)
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			out = append(out, q)
		}
	}
	return out
}

func TestConversionIdempotent(t *testing.T) {
	raw := parse(t, fixture)
	a := RawIconSet("", raw)
	b := RawIconSet("", raw)
	require.Equal(t, len(a.Icons.Unique), len(b.Icons.Unique))

	for i := range a.Icons.Unique {
		ua, ub := a.Icons.Unique[i], b.Icons.Unique[i]
		assert.Equal(t, ua.Names(), ub.Names())
		assert.Equal(t, ua.Render, ub.Render)
		assert.Equal(t, ua.Hidden, ub.Hidden)
		assert.Equal(t, ua.Transformations, ub.Transformations)
		assert.Equal(t, len(ua.Categories), len(ub.Categories))
	}
	assert.Equal(t, a.Total, b.Total)
	assert.NotSame(t, a.Categories[0], b.Categories[0], "separate conversions do not share categories")
}

func TestThemeLongestMatchAndTies(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {
			"home": {"body": ""},
			"home-outline": {"body": ""},
			"home-round-outline": {"body": ""},
			"home-twotone": {"body": ""}
		},
		"suffixes": {
			"outline": "Outline",
			"": "Filled",
			"round-outline": "Round",
			"sharp": "Sharp"
		}
	}`))
	require.NotNil(t, set)
	th := set.Suffixes
	require.NotNil(t, th)

	var matches []string
	for _, item := range th.Items {
		matches = append(matches, item.Match)
	}
	assert.Equal(t, []string{"-outline", "", "-round-outline"}, matches, "unused items are dropped")
	for i, item := range th.Items {
		assert.Equal(t, i, item.Color)
	}

	assert.Equal(t, "-round-outline", set.Icons.IconsMap["home-round-outline"].Suffix.Match)
	assert.Equal(t, "-outline", set.Icons.IconsMap["home-outline"].Suffix.Match)
	assert.Equal(t, "", set.Icons.IconsMap["home-twotone"].Suffix.Match)
}

func TestThemeFirstDeclaredWins(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {"a-x": {"body": ""}, "a": {"body": ""}},
		"suffixes": {"": "Default", "x": "First"},
		"prefixes": {"a": "Prefixed", "": "Plain"}
	}`))
	require.NotNil(t, set)
	assert.Equal(t, "First", set.Icons.IconsMap["a-x"].Suffix.Title)
	assert.Equal(t, "Prefixed", set.Icons.IconsMap["a-x"].Prefix.Title)
	assert.Equal(t, "Plain", set.Icons.IconsMap["a"].Prefix.Title)
	require.NotNil(t, set.Filters.Prefixes)
	assert.Len(t, set.Filters.Prefixes.Filters, 2)
}

func TestLegacyThemes(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {"baseline-home": {"body": ""}, "outline-home": {"body": ""}},
		"themes": {
			"baseline": {"title": "Baseline", "prefix": "baseline-"},
			"outline": {"title": "Outline", "prefix": "outline-"}
		}
	}`))
	require.NotNil(t, set)
	require.NotNil(t, set.Prefixes)
	assert.Len(t, set.Prefixes.Items, 2)
	assert.Equal(t, "Outline", set.Icons.IconsMap["outline-home"].Prefix.Title)
}

func TestFilesystemIconSet(t *testing.T) {
	set := FilesystemIconSet("local", parse(t, fixture))
	require.NotNil(t, set)
	assert.Equal(t, iconset.SourceFilesystem, set.Source)
	assert.Equal(t, "local", set.ID.Provider)
}

func TestThemeKeysMatchWholeSegments(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {
			"home-fill": {"body": ""},
			"home-line": {"body": ""},
			"underline": {"body": ""},
			"round-corner": {"body": ""},
			"rounded-corner": {"body": ""}
		},
		"suffixes": {"fill": "Fill", "line": "Line"},
		"prefixes": {"round": "Round", "home": "Home"}
	}`))
	require.NotNil(t, set)
	icons := set.Icons.IconsMap

	require.NotNil(t, set.Suffixes)
	assert.Equal(t, "-line", icons["home-line"].Suffix.Match)
	assert.Equal(t, "Fill", icons["home-fill"].Suffix.Title)
	assert.Nil(t, icons["underline"].Suffix, "underline has no -line segment")

	require.NotNil(t, set.Prefixes)
	assert.Equal(t, "round-", icons["round-corner"].Prefix.Match)
	assert.Nil(t, icons["rounded-corner"].Prefix, "rounded- is not round-")
	assert.Equal(t, "Home", icons["home-line"].Prefix.Title)

	line := set.Filters.Suffixes.Find("-line")
	require.NotNil(t, line)
	assert.Equal(t, []uint32{uint32(set.Icons.UniqueMap["home-line"].Index)}, line.Icons.ToArray())
}

func TestLegacyThemeKeysKeepSeparator(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {"home-line": {"body": ""}, "underline": {"body": ""}, "home": {"body": ""}},
		"themes": {
			"line": {"title": "Line", "suffix": "-line"},
			"plain": {"title": "Plain", "suffix": ""}
		}
	}`))
	require.NotNil(t, set)
	require.NotNil(t, set.Suffixes)
	assert.Equal(t, "-line", set.Icons.IconsMap["home-line"].Suffix.Match)
	assert.Nil(t, set.Icons.IconsMap["underline"].Suffix)
}

func TestHiddenOnlyCategoryDropped(t *testing.T) {
	set := RawIconSet("", parse(t, `{
		"prefix": "x",
		"info": {"name": "X"},
		"icons": {
			"home": {"body": ""},
			"old-home": {"body": "", "hidden": true},
			"arrow": {"body": ""}
		},
		"categories": {
			"Legacy": ["old-home"],
			"Buildings": ["home"],
			"Arrows": ["arrow"]
		}
	}`))
	require.NotNil(t, set)

	var titles []string
	for i, c := range set.Categories {
		titles = append(titles, c.Title)
		assert.Equal(t, i, c.Color)
	}
	assert.Equal(t, []string{"Buildings", "Arrows"}, titles)
	assert.Empty(t, set.Icons.IconsMap["old-home"].Categories)
	require.NotNil(t, set.Filters.Tags)
	assert.Nil(t, set.Filters.Tags.Find("Legacy"))
	assert.Len(t, set.Filters.Tags.Filters, 2)
}
