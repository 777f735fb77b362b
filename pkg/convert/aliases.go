package convert

import (
	"github.com/matzehuels/iconfinder/pkg/iconify"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// aliasDef is an alias in source order, independent of the wire format.
type aliasDef struct {
	name      string
	parent    string
	transform iconset.Transform
	hidden    bool
}

func aliasDefs(aliases []iconify.Alias, hidden func(iconify.Alias) bool) []aliasDef {
	defs := make([]aliasDef, 0, len(aliases))
	for _, a := range aliases {
		defs = append(defs, aliasDef{
			name:      a.Name,
			parent:    a.Parent,
			transform: iconset.NewTransform(a.Rotate, a.HFlip, a.VFlip),
			hidden:    hidden(a),
		})
	}
	return defs
}

// resolveAliases registers aliases whose chain ends at a registered icon.
//
// Each round walks the pending aliases in definition order and resolves
// every alias whose parent is already registered; the rest wait for the
// next round. A chain of depth d therefore resolves in round d no matter
// how its links are ordered in the source. Rounds stop when one makes no
// progress, which bounds the work at len(defs) rounds. Aliases still
// pending at that point are dangling or part of a cycle and are dropped.
//
// When inheritHidden is set an alias of a hidden name is hidden too.
func (b *builder) resolveAliases(defs []aliasDef, inheritHidden bool) {
	pending := make([]aliasDef, 0, len(defs))
	for _, a := range defs {
		if a.name == "" || a.name == a.parent || b.index.Has(a.name) {
			continue
		}
		pending = append(pending, a)
	}

	for round := 0; round < len(defs) && len(pending) > 0; round++ {
		next := make([]aliasDef, 0, len(pending))
		for _, a := range pending {
			if b.index.Has(a.name) {
				// Duplicate alias name resolved earlier in this round.
				continue
			}
			parent, ok := b.index.IconsMap[a.parent]
			if !ok {
				next = append(next, a)
				continue
			}
			b.addAlias(a, parent, inheritHidden)
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
}

func (b *builder) addAlias(a aliasDef, parent *iconset.Icon, inheritHidden bool) {
	icon := &iconset.Icon{
		Name:      a.name,
		Hidden:    a.hidden || (inheritHidden && parent.Hidden),
		Parent:    parent.Name,
		Transform: parent.Transform.Compose(a.transform),
	}
	cluster := b.index.UniqueMap[parent.Name]

	if a.transform.IsZero() {
		b.index.Join(cluster, icon)
		return
	}
	b.index.Add(icon, cluster.Render, icon.Transform)
	cluster.Transformations = append(cluster.Transformations, a.name)
}

// inheritCategories gives uncategorized transformation clusters the
// categories of the cluster they vary. Clusters are visited in creation
// order, so a variant of a variant sees its parent's inherited list.
func (b *builder) inheritCategories() {
	if len(b.categories) == 0 {
		return
	}
	for _, u := range b.index.Unique {
		first := u.Icons[0]
		if first.Parent == "" || len(u.Categories) > 0 {
			continue
		}
		parent := b.index.UniqueMap[first.Parent]
		if parent == nil || parent == u {
			continue
		}
		u.Categories = append([]*iconset.Category(nil), parent.Categories...)
		if len(first.Categories) == 0 {
			first.Categories = u.Categories
		}
	}
}

// addUncategorized files visible clusters without categories under the
// implicit "" category, created after all declared ones. It does nothing
// when the source declares no categories.
func (b *builder) addUncategorized() {
	if len(b.categories) == 0 {
		return
	}
	for _, u := range b.index.Unique {
		if u.Hidden || len(u.Categories) > 0 {
			continue
		}
		u.Categories = []*iconset.Category{b.category("")}
	}
}
