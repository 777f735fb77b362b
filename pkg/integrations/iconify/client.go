package iconify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/httputil"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/integrations"
	"github.com/matzehuels/iconfinder/pkg/source"
)

// DefaultHosts are the public Iconify API mirrors.
var DefaultHosts = []string{
	"https://api.iconify.design",
	"https://api.simplesvg.com",
	"https://api.unisvg.com",
}

// DefaultSearchLimit is used when a search asks for no limit.
const DefaultSearchLimit = 64

// Options configure a Client.
type Options struct {
	// Provider is the provider name used in cache keys.
	Provider string
	// Hosts are tried in order. Empty means DefaultHosts.
	Hosts []string
	// Version is the API version, 2 or 3. It only changes how payloads are
	// tagged. Zero means 2.
	Version int

	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Timeout time.Duration
	Retry   *httputil.Policy
}

// Client talks to one provider's Iconify API hosts.
type Client struct {
	http     *integrations.Client
	keyer    cache.Keyer
	provider string
	hosts    []string
	format   iconset.Source
	current  atomic.Int32 // index of the last host that answered
}

// NewClient validates opts and returns a client.
func NewClient(opts Options) (*Client, error) {
	hosts := opts.Hosts
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}
	clean := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if err := errors.ValidateURL(h); err != nil {
			return nil, err
		}
		clean = append(clean, strings.TrimRight(h, "/"))
	}

	format := iconset.SourceAPIv2
	switch opts.Version {
	case 0, 2:
	case 3:
		format = iconset.SourceAPIv3
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported API version %d", opts.Version)
	}

	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	hc := integrations.NewClient(opts.Cache, opts.TTL, nil).WithHTTPClient(integrations.NewHTTPClient(opts.Timeout))
	if opts.Retry != nil {
		hc.WithRetryPolicy(*opts.Retry)
	}
	return &Client{
		http:     hc,
		keyer:    keyer,
		provider: opts.Provider,
		hosts:    clean,
		format:   format,
	}, nil
}

// Hosts returns the configured hosts.
func (c *Client) Hosts() []string { return append([]string(nil), c.hosts...) }

// Load implements source.Loader.
func (c *Client) Load(ctx context.Context, req source.Request) (source.Payload, error) {
	switch req.Kind {
	case source.KindIconSet:
		data, err := c.Collection(ctx, req.Prefix, req.Refresh)
		return source.Payload{Data: data, Format: c.format}, err
	case source.KindCollections:
		data, err := c.Collections(ctx, req.Refresh)
		return source.Payload{Data: data}, err
	case source.KindSearch:
		data, err := c.Search(ctx, SearchOptions{
			Keyword: req.Keyword,
			Limit:   req.Limit,
			Start:   req.Start,
			Prefix:  req.Prefix,
		}, req.Refresh)
		return source.Payload{Data: data}, err
	default:
		return source.Payload{}, errors.New(errors.ErrCodeUnsupported, "unknown request kind %q", req.Kind)
	}
}

// Collection fetches the icon list of one set.
func (c *Client) Collection(ctx context.Context, prefix string, refresh bool) ([]byte, error) {
	if err := errors.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	q := url.Values{"prefix": {prefix}, "info": {"true"}, "chars": {"true"}}
	key := c.keyer.IconSetKey(c.provider, prefix)
	return c.cached(ctx, key, "iconset", refresh, "/collection?"+q.Encode())
}

// Collections fetches the list of sets, hidden ones included.
func (c *Client) Collections(ctx context.Context, refresh bool) ([]byte, error) {
	key := c.keyer.CollectionsKey(c.provider)
	return c.cached(ctx, key, "collections", refresh, "/collections?hidden=true")
}

// SearchOptions are the "/search" parameters.
type SearchOptions struct {
	Keyword string
	Limit   int
	Start   int
	Prefix  string // restrict to one set
}

// Search runs a keyword search across sets.
func (c *Client) Search(ctx context.Context, opts SearchOptions, refresh bool) ([]byte, error) {
	opts.Keyword = strings.TrimSpace(opts.Keyword)
	if opts.Keyword == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search keyword cannot be empty")
	}
	if err := errors.ValidateKeyword(opts.Keyword); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	q := url.Values{"query": {opts.Keyword}, "limit": {strconv.Itoa(opts.Limit)}}
	if opts.Start > 0 {
		q.Set("start", strconv.Itoa(opts.Start))
	}
	if opts.Prefix != "" {
		q.Set("prefix", opts.Prefix)
	}
	key := c.keyer.SearchKey(c.provider, cache.SearchKeyOpts{
		Keyword: opts.Keyword,
		Limit:   opts.Limit,
		Start:   opts.Start,
		Prefix:  opts.Prefix,
	})
	return c.cached(ctx, key, "search", refresh, "/search?"+q.Encode())
}

func (c *Client) cached(ctx context.Context, key, keyType string, refresh bool, pathQuery string) ([]byte, error) {
	return c.http.Cached(ctx, key, keyType, refresh, func(ctx context.Context) ([]byte, error) {
		data, err := c.fetch(ctx, pathQuery)
		if err != nil {
			return nil, err
		}
		return data, checkBody(data, pathQuery)
	})
}

// fetch tries each host once, starting with the last one that answered.
func (c *Client) fetch(ctx context.Context, pathQuery string) ([]byte, error) {
	start := int(c.current.Load())
	var lastErr error
	for i := range c.hosts {
		idx := (start + i) % len(c.hosts)
		data, err := c.http.Get(ctx, c.hosts[idx]+pathQuery)
		if err == nil {
			c.current.Store(int32(idx))
			return data, nil
		}
		if !fallThrough(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// fallThrough reports whether another host might answer err differently.
func fallThrough(err error) bool {
	switch errors.GetCode(err) {
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeRateLimited:
		return true
	}
	return false
}

// checkBody rejects bodies that are not a JSON object. The API answers
// unknown prefixes with a bare "404".
func checkBody(data []byte, what string) error {
	if !gjson.ValidBytes(data) {
		return errors.New(errors.ErrCodeInvalidData, "%s: invalid JSON", what)
	}
	root := gjson.ParseBytes(data)
	switch {
	case root.IsObject():
		return nil
	case root.Type == gjson.Number:
		status := int(root.Int())
		return errors.FromStatus(status, "%s: status %d", what, status)
	default:
		return errors.New(errors.ErrCodeInvalidData, "%s: expected JSON object", what)
	}
}

var _ source.Loader = (*Client)(nil)
