package iconset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Transform is a rotation (in quarter turns, 0-3) and flip combination.
type Transform struct {
	Rotate int  `json:"rotate,omitempty"`
	HFlip  bool `json:"hFlip,omitempty"`
	VFlip  bool `json:"vFlip,omitempty"`
}

// NewTransform normalizes rotate into 0-3.
func NewTransform(rotate int, hFlip, vFlip bool) Transform {
	return Transform{Rotate: ((rotate % 4) + 4) % 4, HFlip: hFlip, VFlip: vFlip}
}

// IsZero reports whether t leaves an icon unchanged.
func (t Transform) IsZero() bool {
	return t == Transform{}
}

// Compose applies next on top of t.
func (t Transform) Compose(next Transform) Transform {
	return NewTransform(t.Rotate+next.Rotate, t.HFlip != next.HFlip, t.VFlip != next.VFlip)
}

// Icon is the per-name record of the index.
type Icon struct {
	Name       string      `json:"name"`
	Hidden     bool        `json:"hidden,omitempty"`
	Categories []*Category `json:"-"`

	// Parent is the name this alias points at; empty for icons defined
	// with a body.
	Parent string `json:"parent,omitempty"`

	// Transform is relative to the icon body, composed along the chain.
	Transform Transform `json:"transform,omitzero"`

	// Prefix and Suffix are the theme items the name was assigned to,
	// nil when the set declares no such theme or no item matched.
	Prefix *ThemeItem `json:"-"`
	Suffix *ThemeItem `json:"-"`
}

// UniqueIcon is a cluster of names that render identical content.
type UniqueIcon struct {
	// Icons lists every name of the cluster; the first is canonical.
	Icons []*Icon

	// Render is the name whose body is rendered.
	Render string

	// Hidden is true only when every name in Icons is hidden.
	Hidden bool

	// Transform is applied to the body of Render. Zero for base icons.
	Transform Transform

	// Transformations lists aliases that show this cluster rotated or
	// flipped. Each of them owns a separate UniqueIcon.
	Transformations []string

	// Categories is the union of the names' categories, deduplicated by
	// identity.
	Categories []*Category

	// Index is the position of the cluster in Index.Unique.
	Index int
}

// Name returns the canonical name of the cluster.
func (u *UniqueIcon) Name() string {
	return u.Icons[0].Name
}

// Names returns all names of the cluster in order.
func (u *UniqueIcon) Names() []string {
	names := make([]string, len(u.Icons))
	for i, icon := range u.Icons {
		names[i] = icon.Name
	}
	return names
}

// HasCategory reports whether c is one of the cluster's categories.
func (u *UniqueIcon) HasCategory(c *Category) bool {
	for _, uc := range u.Categories {
		if uc == c {
			return true
		}
	}
	return false
}

// Index is the icon index of a set.
type Index struct {
	// UniqueMap maps every name, aliases included, to its cluster.
	UniqueMap map[string]*UniqueIcon

	// IconsMap maps every name to its per-name record.
	IconsMap map[string]*Icon

	// Unique lists clusters in first-occurrence order.
	Unique []*UniqueIcon

	// Visible holds the positions of clusters that are not hidden.
	Visible *roaring.Bitmap
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		UniqueMap: make(map[string]*UniqueIcon),
		IconsMap:  make(map[string]*Icon),
		Visible:   roaring.New(),
	}
}

// Add appends a new cluster holding icon and registers its name.
func (idx *Index) Add(icon *Icon, render string, t Transform) *UniqueIcon {
	u := &UniqueIcon{
		Icons:     []*Icon{icon},
		Render:    render,
		Transform: t,
		Index:     len(idx.Unique),
	}
	idx.Unique = append(idx.Unique, u)
	idx.UniqueMap[icon.Name] = u
	idx.IconsMap[icon.Name] = icon
	return u
}

// Join adds icon as another name of u.
func (idx *Index) Join(u *UniqueIcon, icon *Icon) {
	u.Icons = append(u.Icons, icon)
	idx.UniqueMap[icon.Name] = u
	idx.IconsMap[icon.Name] = icon
}

// Has reports whether name is registered.
func (idx *Index) Has(name string) bool {
	_, ok := idx.IconsMap[name]
	return ok
}

// Finalize recomputes cluster visibility and the Visible bitmap, and
// returns the number of visible clusters.
func (idx *Index) Finalize() int {
	idx.Visible.Clear()
	for _, u := range idx.Unique {
		u.Hidden = true
		for _, icon := range u.Icons {
			if !icon.Hidden {
				u.Hidden = false
				break
			}
		}
		if !u.Hidden {
			idx.Visible.Add(uint32(u.Index))
		}
	}
	return int(idx.Visible.GetCardinality())
}
