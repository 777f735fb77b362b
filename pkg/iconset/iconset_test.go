package iconset

import (
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
)

func TestTransformCompose(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Transform
		want      Transform
		wantEmpty bool
	}{
		{"identity", Transform{}, Transform{}, Transform{}, true},
		{"rotate wraps", NewTransform(3, false, false), NewTransform(2, false, false), Transform{Rotate: 1}, false},
		{"flip cancels", Transform{HFlip: true}, Transform{HFlip: true}, Transform{}, true},
		{"mixed", Transform{VFlip: true, Rotate: 1}, Transform{HFlip: true, Rotate: 3}, Transform{HFlip: true, VFlip: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Compose(tt.b)
			if got != tt.want {
				t.Errorf("Compose() = %+v, want %+v", got, tt.want)
			}
			if got.IsZero() != tt.wantEmpty {
				t.Errorf("IsZero() = %v, want %v", got.IsZero(), tt.wantEmpty)
			}
		})
	}
}

func TestNewTransformNormalizesNegative(t *testing.T) {
	if got := NewTransform(-1, false, false).Rotate; got != 3 {
		t.Errorf("Rotate = %d, want 3", got)
	}
}

func TestIndexFinalize(t *testing.T) {
	idx := NewIndex()
	a := idx.Add(&Icon{Name: "a"}, "a", Transform{})
	idx.Join(a, &Icon{Name: "a-alias", Hidden: true})
	b := idx.Add(&Icon{Name: "b", Hidden: true}, "b", Transform{})
	idx.Join(b, &Icon{Name: "b-alias", Hidden: true})
	c := idx.Add(&Icon{Name: "c", Hidden: true}, "c", Transform{})
	idx.Join(c, &Icon{Name: "c-alias"})

	if got := idx.Finalize(); got != 2 {
		t.Errorf("Finalize() = %d, want 2", got)
	}
	if a.Hidden || !b.Hidden || c.Hidden {
		t.Errorf("hidden = %v %v %v, want false true false", a.Hidden, b.Hidden, c.Hidden)
	}
	if got := idx.Visible.ToArray(); !slices.Equal(got, []uint32{0, 2}) {
		t.Errorf("Visible = %v, want [0 2]", got)
	}
	if idx.UniqueMap["c-alias"] != c || idx.IconsMap["c-alias"].Name != "c-alias" {
		t.Error("alias not registered")
	}
	if !slices.Equal(c.Names(), []string{"c", "c-alias"}) {
		t.Errorf("Names() = %v", c.Names())
	}
}

func TestThemeMatch(t *testing.T) {
	outline := &ThemeItem{Title: "Outline", Match: "-outline"}
	round := &ThemeItem{Title: "Round Outline", Match: "-round-outline"}
	def := &ThemeItem{Title: "Regular", Match: ""}
	theme := &Theme{
		Kind:   ThemeSuffix,
		Items:  []*ThemeItem{def, outline, round},
		Sorted: []*ThemeItem{round, outline, def},
		Empty:  def,
	}

	tests := []struct {
		name string
		want *ThemeItem
	}{
		{"home-round-outline", round},
		{"home-outline", outline},
		{"home", def},
	}
	for _, tt := range tests {
		if got := theme.Match(tt.name); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	var nilTheme *Theme
	if nilTheme.Match("home") != nil {
		t.Error("nil theme should match nothing")
	}
}

func TestFiltersListSelectAndClone(t *testing.T) {
	list := &FiltersList{
		Kind: KindTags,
		Filters: []*Filter{
			{Key: "a", Match: "A", Icons: roaring.BitmapOf(0)},
			{Key: "b", Match: "B", Disabled: true, HiddenIfDisabled: true},
		},
	}
	if !list.Select("a") || list.Selected.Key != "a" {
		t.Fatal("Select(a) failed")
	}
	if list.Select("missing") {
		t.Error("Select(missing) should fail")
	}
	if list.Selected.Key != "a" {
		t.Error("failed Select should keep selection")
	}
	if got := list.CountVisible(); got != 1 {
		t.Errorf("CountVisible() = %d, want 1", got)
	}

	c := list.Clone()
	if c.Selected == list.Selected || c.Selected.Key != "a" {
		t.Error("clone should select its own copy of the filter")
	}
	c.Filters[1].Disabled = false
	if !list.Filters[1].Disabled {
		t.Error("clone mutated original filter")
	}
	if c.Filters[0].Icons != list.Filters[0].Icons {
		t.Error("clone should share membership bitmaps")
	}

	list.Clear()
	if list.Selected != nil {
		t.Error("Clear() should remove selection")
	}
}

func TestFiltersListMatches(t *testing.T) {
	tag := &Category{Title: "Arrows"}
	suffix := &ThemeItem{Match: "-outline"}
	u := &UniqueIcon{
		Icons:      []*Icon{{Name: "mdi:arrow-outline", Suffix: suffix}},
		Categories: []*Category{tag},
	}

	tests := []struct {
		kind  FilterKind
		match string
		want  bool
	}{
		{KindTags, "Arrows", true},
		{KindTags, "Home", false},
		{KindSuffixes, "-outline", true},
		{KindSuffixes, "", false},
		{KindPrefixes, "-outline", false},
		{KindCollections, "mdi", true},
		{KindCollections, "md", false},
	}
	for _, tt := range tests {
		list := &FiltersList{Kind: tt.kind}
		if got := list.Matches(&Filter{Match: tt.match}, u); got != tt.want {
			t.Errorf("Matches(%s, %q) = %v, want %v", tt.kind, tt.match, got, tt.want)
		}
	}
}

func TestFilterSetAll(t *testing.T) {
	s := &FilterSet{
		Suffixes: &FiltersList{Kind: KindSuffixes},
		Tags:     &FiltersList{Kind: KindTags},
	}
	var kinds []FilterKind
	for kind := range s.All() {
		kinds = append(kinds, kind)
	}
	if !slices.Equal(kinds, []FilterKind{KindTags, KindSuffixes}) {
		t.Errorf("All() kinds = %v", kinds)
	}
	if s.Empty() || !(&FilterSet{}).Empty() {
		t.Error("Empty() wrong")
	}
}

func TestFork(t *testing.T) {
	list := &FiltersList{Kind: KindTags, Filters: []*Filter{{Key: "a"}}}
	set := &IconSet{
		ID:      ID{Provider: "", Prefix: "mdi"},
		Icons:   NewIndex(),
		Filters: &FilterSet{Tags: list},
		State:   &State{Page: 2},
	}

	fork := set.Fork()
	fork.State.Page = 5
	fork.Filters.Tags.Select("a")

	if set.State.Page != 2 {
		t.Errorf("original Page = %d, want 2", set.State.Page)
	}
	if set.Filters.Tags.Selected != nil {
		t.Error("original selection changed")
	}
	if fork.Icons != set.Icons {
		t.Error("fork should share the index")
	}
	if got := set.ID.String(); got != "mdi" {
		t.Errorf("ID.String() = %q, want mdi", got)
	}
	if got := (ID{Provider: "local", Prefix: "mdi"}).String(); got != "local:mdi" {
		t.Errorf("ID.String() = %q, want local:mdi", got)
	}
}

func TestStatePagination(t *testing.T) {
	cfg := (&State{Page: 3}).Pagination()
	if cfg.PerPage != 52 || cfg.Page == nil || *cfg.Page != 3 {
		t.Errorf("Pagination() = %+v", cfg)
	}
}
