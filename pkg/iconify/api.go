package iconify

import (
	"github.com/tidwall/gjson"
)

// ParseCollection parses an API "/collection" response.
//
// Aliases are normally plain "alias": "parent" strings; object values with a
// "parent" field are accepted too so that transformed aliases served by
// newer API versions are not lost.
func ParseCollection(data []byte) (*Collection, error) {
	root, err := parseObject(data, "collection")
	if err != nil {
		return nil, err
	}

	c := &Collection{
		Prefix:        root.Get("prefix").String(),
		Total:         int(root.Get("total").Int()),
		Title:         root.Get("title").String(),
		Info:          parseInfo(root.Get("info")),
		Uncategorized: stringArray(root.Get("uncategorized")),
		Categories:    parseCategories(root.Get("categories")),
		Hidden:        stringArray(root.Get("hidden")),
		Chars:         parseChars(root.Get("chars")),
		Prefixes:      parseThemeEntries(root.Get("prefixes")),
		Suffixes:      parseThemeEntries(root.Get("suffixes")),
		Themes:        parseLegacyThemes(root.Get("themes")),
	}

	eachObject(root.Get("aliases"), func(name string, v gjson.Result) {
		switch {
		case v.Type == gjson.String && v.String() != "":
			c.Aliases = append(c.Aliases, Alias{Name: name, Parent: v.String()})
		case v.IsObject() && v.Get("parent").String() != "":
			c.Aliases = append(c.Aliases, Alias{
				Name:      name,
				Parent:    v.Get("parent").String(),
				Transform: parseTransform(v),
			})
		}
	})

	return c, nil
}

// ParseCollections parses an API "/collections" response: an object keyed
// by prefix whose values are info blocks.
func ParseCollections(data []byte) (*CollectionsList, error) {
	root, err := parseObject(data, "collections")
	if err != nil {
		return nil, err
	}
	return &CollectionsList{Collections: parseCollectionInfos(root)}, nil
}

// ParseSearch parses an API "/search" response.
func ParseSearch(data []byte) (*SearchResponse, error) {
	root, err := parseObject(data, "search")
	if err != nil {
		return nil, err
	}
	return &SearchResponse{
		Icons:       stringArray(root.Get("icons")),
		Total:       int(root.Get("total").Int()),
		Limit:       int(root.Get("limit").Int()),
		Start:       int(root.Get("start").Int()),
		Collections: parseCollectionInfos(root.Get("collections")),
		Keyword:     root.Get("request.query").String(),
	}, nil
}

func parseCollectionInfos(v gjson.Result) []CollectionInfo {
	var out []CollectionInfo
	eachObject(v, func(prefix string, raw gjson.Result) {
		info := parseInfo(raw)
		if prefix == "" || info == nil {
			return
		}
		out = append(out, CollectionInfo{Prefix: prefix, Info: *info})
	})
	return out
}
