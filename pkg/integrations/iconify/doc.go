// Package iconify is a client for the Iconify API.
//
// The client implements [source.Loader] for API providers. It fetches the
// "/collection", "/collections" and "/search" endpoints and returns their
// bodies unparsed; the finder converts them.
//
// # Hosts
//
// A provider may list several API hosts serving the same data. Requests go
// to the last host that answered; on a network failure or 5xx the next
// host is tried. NOT_FOUND and bad input are final and never fall through.
//
// # Caching
//
// Successful bodies are stored in the byte cache under keys from
// [cache.Keyer]. Bodies the API uses to signal failure, a bare status
// number such as 404, are turned into errors and never cached.
//
// [source.Loader]: github.com/matzehuels/iconfinder/pkg/source.Loader
// [cache.Keyer]: github.com/matzehuels/iconfinder/pkg/cache.Keyer
package iconify
