// Package providers maps provider names to the loaders that serve them.
//
// A provider is either an Iconify API deployment (a list of mirror hosts)
// or a local directory. The registry always contains the public Iconify
// API under [Default]; more providers come from configuration.
package providers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/integrations/iconify"
	"github.com/matzehuels/iconfinder/pkg/source"
	"github.com/matzehuels/iconfinder/pkg/source/local"
)

// Default is the name of the public Iconify API provider. An empty
// provider name in a request means Default.
const Default = "iconify"

// Kind is how a provider is reached.
type Kind string

const (
	KindAPI   Kind = "api"
	KindLocal Kind = "local"
)

// Provider describes one provider.
type Provider struct {
	Name    string   `toml:"name" json:"name"`
	Kind    Kind     `toml:"kind" json:"kind"`
	Hosts   []string `toml:"hosts" json:"hosts,omitempty"`
	Version int      `toml:"version" json:"version,omitempty"`
	Dir     string   `toml:"dir" json:"dir,omitempty"`
	Title   string   `toml:"title" json:"title,omitempty"`
}

func (p Provider) validate() error {
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidProvider, "provider name cannot be empty")
	}
	if err := errors.ValidateProvider(p.Name); err != nil {
		return err
	}
	switch p.Kind {
	case KindAPI:
		for _, h := range p.Hosts {
			if err := errors.ValidateURL(h); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidProvider, err, "provider %s: host %q", p.Name, h)
			}
		}
	case KindLocal:
		if p.Dir == "" {
			return errors.New(errors.ErrCodeInvalidProvider, "provider %s: local provider needs a dir", p.Name)
		}
	default:
		return errors.New(errors.ErrCodeInvalidProvider, "provider %s: unknown kind %q", p.Name, p.Kind)
	}
	return nil
}

// CacheOptions are handed to every API client the registry creates.
type CacheOptions struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Timeout time.Duration
}

// Registry holds providers and creates their loaders on first use. It
// implements source.Loader by dispatching on Request.Provider.
type Registry struct {
	opts CacheOptions

	mu        sync.Mutex
	providers map[string]Provider
	loaders   map[string]source.Loader
}

// NewRegistry returns a registry containing Default.
func NewRegistry(opts CacheOptions) *Registry {
	r := &Registry{
		opts:      opts,
		providers: make(map[string]Provider),
		loaders:   make(map[string]source.Loader),
	}
	r.providers[Default] = Provider{
		Name:  Default,
		Kind:  KindAPI,
		Hosts: append([]string(nil), iconify.DefaultHosts...),
		Title: "Iconify",
	}
	return r
}

// Register adds or replaces a provider. Replacing drops its loader.
func (r *Registry) Register(p Provider) error {
	if err := p.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name] = p
	delete(r.loaders, p.Name)
	return nil
}

// RegisterLoader installs a loader directly, bypassing provider
// construction. Used by tests and embedders with their own data.
func (r *Registry) RegisterLoader(name string, l source.Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; !ok {
		r.providers[name] = Provider{Name: name, Kind: KindLocal}
	}
	r.loaders[name] = l
}

// Get returns a provider by name. "" resolves to Default.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[Resolve(name)]
	return p, ok
}

// List returns all providers sorted by name.
func (r *Registry) List() []Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve maps the empty name to Default.
func Resolve(name string) string {
	if name == "" {
		return Default
	}
	return name
}

// Loader returns the loader for a provider, creating it on first use.
func (r *Registry) Loader(name string) (source.Loader, error) {
	name = Resolve(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loaders[name]; ok {
		return l, nil
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "unknown provider %q", name)
	}
	l, err := r.newLoader(p)
	if err != nil {
		return nil, err
	}
	r.loaders[name] = l
	return l, nil
}

func (r *Registry) newLoader(p Provider) (source.Loader, error) {
	switch p.Kind {
	case KindLocal:
		return local.New(p.Dir)
	default:
		return iconify.NewClient(iconify.Options{
			Provider: p.Name,
			Hosts:    p.Hosts,
			Version:  p.Version,
			Cache:    r.opts.Cache,
			Keyer:    r.opts.Keyer,
			TTL:      r.opts.TTL,
			Timeout:  r.opts.Timeout,
		})
	}
}

// Load implements source.Loader.
func (r *Registry) Load(ctx context.Context, req source.Request) (source.Payload, error) {
	l, err := r.Loader(req.Provider)
	if err != nil {
		return source.Payload{}, err
	}
	return l.Load(ctx, req)
}

var _ source.Loader = (*Registry)(nil)
