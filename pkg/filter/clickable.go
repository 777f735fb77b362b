package filter

import (
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// Clickable is a filter that would narrow the current view to a set
// containing a given icon.
type Clickable struct {
	Kind   iconset.FilterKind
	Filter *iconset.Filter
}

// ClickableFilters returns the filters the named icon belongs to, other
// than the ones already selected, in [iconset.Kinds] order. It returns nil
// for unknown names.
func ClickableFilters(set *iconset.IconSet, name string) []Clickable {
	u, ok := set.Icons.UniqueMap[name]
	if !ok {
		return nil
	}
	var out []Clickable
	for kind, list := range set.Filters.All() {
		for _, f := range list.Filters {
			if f == list.Selected || !f.Icons.Contains(uint32(u.Index)) {
				continue
			}
			out = append(out, Clickable{Kind: kind, Filter: f})
		}
	}
	return out
}
