package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks logs to logger under the "obs" prefix.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Install registers h for every hook kind.
func (h *LogHooks) Install() {
	SetFinderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLoadStart(_ context.Context, provider, prefix string) {
	h.logger.Debug("load start", "provider", provider, "prefix", prefix)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, provider, prefix string, total int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "provider", provider, "prefix", prefix, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load done", "provider", provider, "prefix", prefix, "icons", total, "duration", d)
}

func (h *LogHooks) OnQuery(_ context.Context, prefix, keyword string, matches int, d time.Duration) {
	h.logger.Debug("query", "prefix", prefix, "keyword", keyword, "matches", matches, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ FinderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
