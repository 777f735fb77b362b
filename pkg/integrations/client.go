package integrations

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/iconfinder/pkg/buildinfo"
	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/httputil"
	"github.com/matzehuels/iconfinder/pkg/observability"
)

// Client fetches raw bytes over HTTP with caching and retries.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
	policy  httputil.Policy
}

// NewClient creates a Client. A nil cache disables caching; headers are
// added to every request and may be nil.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(0),
		cache:   c,
		ttl:     ttl,
		headers: headers,
		policy:  httputil.DefaultPolicy,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRetryPolicy replaces the retry policy.
func (c *Client) WithRetryPolicy(p httputil.Policy) *Client {
	c.policy = p
	return c
}

// Cached returns the bytes stored under key, or calls fetch and stores its
// result. keyType labels the key for cache hooks. With refresh set the
// cached entry is ignored and overwritten. Failed fetches are not cached.
func (c *Client) Cached(ctx context.Context, key, keyType string, refresh bool, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if !refresh {
		data, ok, err := c.cache.Get(ctx, key)
		if err == nil && ok {
			hooks.OnCacheHit(ctx, keyType)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, keyType)
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, nil
}

// Get fetches rawURL and returns the body, retrying transient failures.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := c.policy.Do(ctx, func(int) error {
		var err error
		body, err = c.do(ctx, rawURL)
		return err
	})
	return body, err
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad request URL %q", rawURL)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", host+path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, host+path); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", host+path))
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s: response larger than %d bytes", host+path, maxBodyBytes)
	}
	return data, nil
}

func checkStatus(resp *http.Response, what string) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", what)
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err:   errors.New(errors.ErrCodeRateLimited, "%s: rate limited", what),
			After: httputil.RetryAfter(resp.Header),
		}
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "%s: status %d", what, code))
	default:
		return errors.FromStatus(code, "%s: status %d", what, code)
	}
}

func hostPath(u *url.URL) (string, string) {
	return u.Host, u.Path
}
