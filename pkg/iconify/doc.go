// Package iconify parses the wire formats of Iconify icon data.
//
// # Formats
//
// Two families of payloads are supported:
//
//   - Raw icon sets: the IconifyJSON format used by @iconify/json bundles
//     and local files ("prefix", "info", "icons", "aliases", "categories",
//     "prefixes", "suffixes", legacy "themes", "chars").
//   - API responses: "/collection", "/collections" and "/search" responses
//     of the Iconify API (v2 and v3 share the shapes used here).
//
// # Ordering
//
// Icon sets are JSON objects keyed by name, and the order of those keys is
// meaningful: it drives the enumeration order of icons, the resolution
// order of aliases and the color assigned to each category. The standard
// library decodes objects into Go maps, which loses that order, so the
// parsers walk the documents with [github.com/tidwall/gjson] and keep every
// object as an ordered slice.
//
// # Errors
//
// A payload that is not JSON, or whose top-level shape is wrong, fails with
// an INVALID_DATA error. A bare numeric body (the API's way of returning
// 404) fails with the matching status error.
package iconify
