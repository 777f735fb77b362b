// Package integrations provides the HTTP plumbing shared by remote icon
// data clients.
//
// [Client] fetches raw response bytes with retry (see pkg/httputil) and
// keeps them in a [cache.Cache]. Status codes are mapped to pkg/errors
// codes so loaders can hand them straight to storage:
//
//	404      NOT_FOUND
//	429      RATE_LIMITED, retried after Retry-After
//	5xx      NETWORK_ERROR, retried
//	network  NETWORK_ERROR, retried
//
// The Iconify API client lives in the [iconify] subpackage.
//
// [cache.Cache]: github.com/matzehuels/iconfinder/pkg/cache.Cache
// [iconify]: github.com/matzehuels/iconfinder/pkg/integrations/iconify
package integrations
