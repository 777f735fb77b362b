package iconify

import (
	"github.com/tidwall/gjson"

	"github.com/matzehuels/iconfinder/pkg/errors"
)

// ParseIconSet parses a raw Iconify JSON icon set.
//
// Missing optional blocks are left empty. Icons without a string body are
// skipped, as are aliases without a parent: neither can ever be rendered.
// Whether the result holds enough data to be useful (an info block, at
// least one icon) is decided by the converter, not here.
func ParseIconSet(data []byte) (*IconSet, error) {
	root, err := parseObject(data, "icon set")
	if err != nil {
		return nil, err
	}

	set := &IconSet{
		Prefix:       root.Get("prefix").String(),
		Info:         parseInfo(root.Get("info")),
		Dimensions:   parseDimensions(root),
		LastModified: root.Get("lastModified").Int(),
	}

	eachObject(root.Get("icons"), func(name string, v gjson.Result) {
		body := v.Get("body")
		if name == "" || body.Type != gjson.String {
			return
		}
		set.Icons = append(set.Icons, Icon{
			Name:       name,
			Body:       body.String(),
			Dimensions: parseDimensions(v),
			Transform:  parseTransform(v),
			Hidden:     v.Get("hidden").Bool(),
		})
	})

	eachObject(root.Get("aliases"), func(name string, v gjson.Result) {
		parent := v.Get("parent").String()
		if name == "" || parent == "" {
			return
		}
		set.Aliases = append(set.Aliases, Alias{
			Name:       name,
			Parent:     parent,
			Dimensions: parseDimensions(v),
			Transform:  parseTransform(v),
			Hidden:     v.Get("hidden").Bool(),
		})
	})

	set.Categories = parseCategories(root.Get("categories"))
	set.Prefixes = parseThemeEntries(root.Get("prefixes"))
	set.Suffixes = parseThemeEntries(root.Get("suffixes"))
	set.Themes = parseLegacyThemes(root.Get("themes"))
	set.Chars = parseChars(root.Get("chars"))
	set.NotFound = stringArray(root.Get("not_found"))

	return set, nil
}

// parseObject validates data and returns its root, which must be an object.
func parseObject(data []byte, what string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New(errors.ErrCodeInvalidData, "%s: invalid JSON", what)
	}
	root := gjson.ParseBytes(data)
	switch {
	case root.IsObject():
		return root, nil
	case root.Type == gjson.Number:
		// The API answers some lookups with a bare status number.
		status := int(root.Int())
		return gjson.Result{}, errors.FromStatus(status, "%s: status %d", what, status)
	default:
		return gjson.Result{}, errors.New(errors.ErrCodeInvalidData, "%s: expected JSON object", what)
	}
}

func parseInfo(v gjson.Result) *Info {
	if !v.IsObject() {
		return nil
	}
	info := &Info{
		Name:          v.Get("name").String(),
		Total:         int(v.Get("total").Int()),
		Version:       v.Get("version").String(),
		Samples:       stringArray(v.Get("samples")),
		DisplayHeight: int(v.Get("displayHeight").Int()),
		Category:      v.Get("category").String(),
		Tags:          stringArray(v.Get("tags")),
		Palette:       v.Get("palette").Bool(),
		Hidden:        v.Get("hidden").Bool(),
	}

	// Older sets use plain strings for author and license.
	switch a := v.Get("author"); {
	case a.IsObject():
		info.Author = Author{Name: a.Get("name").String(), URL: a.Get("url").String()}
	case a.Type == gjson.String:
		info.Author = Author{Name: a.String(), URL: v.Get("url").String()}
	}
	switch l := v.Get("license"); {
	case l.IsObject():
		info.License = License{Title: l.Get("title").String(), SPDX: l.Get("spdx").String(), URL: l.Get("url").String()}
	case l.Type == gjson.String:
		info.License = License{Title: l.String(), URL: v.Get("licenseURL").String()}
	}

	switch h := v.Get("height"); {
	case h.IsArray():
		for _, n := range h.Array() {
			if n.Type == gjson.Number {
				info.Height = append(info.Height, int(n.Int()))
			}
		}
	case h.Type == gjson.Number:
		info.Height = []int{int(h.Int())}
	}
	return info
}

func parseDimensions(v gjson.Result) Dimensions {
	return Dimensions{
		Left:   int(v.Get("left").Int()),
		Top:    int(v.Get("top").Int()),
		Width:  int(v.Get("width").Int()),
		Height: int(v.Get("height").Int()),
	}
}

func parseTransform(v gjson.Result) Transform {
	return Transform{
		Rotate: int(v.Get("rotate").Int()),
		HFlip:  v.Get("hFlip").Bool(),
		VFlip:  v.Get("vFlip").Bool(),
	}
}

func parseCategories(v gjson.Result) []Category {
	var out []Category
	eachObject(v, func(title string, names gjson.Result) {
		if !names.IsArray() {
			return
		}
		out = append(out, Category{Title: title, Icons: stringArray(names)})
	})
	return out
}

func parseThemeEntries(v gjson.Result) []ThemeEntry {
	var out []ThemeEntry
	eachObject(v, func(match string, title gjson.Result) {
		if title.Type != gjson.String {
			return
		}
		out = append(out, ThemeEntry{Match: match, Title: title.String()})
	})
	return out
}

func parseLegacyThemes(v gjson.Result) []LegacyTheme {
	var out []LegacyTheme
	eachObject(v, func(key string, t gjson.Result) {
		if !t.IsObject() {
			return
		}
		out = append(out, LegacyTheme{
			Key:    key,
			Title:  t.Get("title").String(),
			Prefix: t.Get("prefix").String(),
			Suffix: t.Get("suffix").String(),
		})
	})
	return out
}

func parseChars(v gjson.Result) []Char {
	var out []Char
	eachObject(v, func(char string, name gjson.Result) {
		if name.Type == gjson.String && name.String() != "" {
			out = append(out, Char{Char: char, Name: name.String()})
		}
	})
	return out
}

// eachObject calls fn for every key of v in document order. Non-objects
// are ignored.
func eachObject(v gjson.Result, fn func(key string, value gjson.Result)) {
	if !v.IsObject() {
		return
	}
	v.ForEach(func(key, value gjson.Result) bool {
		fn(key.String(), value)
		return true
	})
}

func stringArray(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}
