// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries call the registered hooks; the binary decides what they do.
// By default every hook is a no-op. The CLI installs [LogHooks] when run
// with --verbose, and the server installs them always.
//
//	observability.SetFinderHooks(observability.NewLogHooks(logger))
//
// Emitting:
//
//	observability.Finder().OnLoadStart(ctx, provider, prefix)
//	// ... fetch and convert ...
//	observability.Finder().OnLoadComplete(ctx, provider, prefix, total, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// FinderHooks receives events from icon set loading and querying.
type FinderHooks interface {
	OnLoadStart(ctx context.Context, provider, prefix string)
	// OnLoadComplete reports the number of visible icons of the converted set.
	OnLoadComplete(ctx context.Context, provider, prefix string, total int, duration time.Duration, err error)

	// OnQuery reports a filtered, paginated view.
	OnQuery(ctx context.Context, prefix, keyword string, matches int, duration time.Duration)
}

// CacheHooks receives events from the byte cache. keyType is the key kind
// ("iconset", "collections", "search", "http").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from outgoing API requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError reports transport failures, not error statuses.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopFinderHooks does nothing.
type NoopFinderHooks struct{}

func (NoopFinderHooks) OnLoadStart(context.Context, string, string)                                {}
func (NoopFinderHooks) OnLoadComplete(context.Context, string, string, int, time.Duration, error) {}
func (NoopFinderHooks) OnQuery(context.Context, string, string, int, time.Duration)                {}

// NoopCacheHooks does nothing.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks does nothing.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu     sync.RWMutex
	finderHooks FinderHooks = NoopFinderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
)

// SetFinderHooks registers h. A nil h is ignored.
func SetFinderHooks(h FinderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		finderHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Finder returns the registered finder hooks.
func Finder() FinderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return finderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	finderHooks = NoopFinderHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
