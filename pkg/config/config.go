// Package config loads iconfinder settings.
//
// Settings are layered: built-in defaults, then the TOML file, then
// ICONFINDER_* environment variables. Command-line flags are applied last
// by the CLI.
//
//	# ~/.config/iconfinder/config.toml
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[[providers]]
//	name = "local"
//	kind = "local"
//	dir = "/srv/icons"
package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/providers"
)

// Config is the full configuration.
type Config struct {
	Cache     CacheConfig          `toml:"cache"`
	Server    ServerConfig         `toml:"server"`
	Finder    FinderConfig         `toml:"finder"`
	Log       LogConfig            `toml:"log"`
	Providers []providers.Provider `toml:"providers"`
}

// CacheConfig selects the byte cache backend.
type CacheConfig struct {
	Backend    string        `toml:"backend" env:"ICONFINDER_CACHE_BACKEND"`
	Dir        string        `toml:"dir" env:"ICONFINDER_CACHE_DIR"`
	URL        string        `toml:"url" env:"ICONFINDER_CACHE_URL"`
	Database   string        `toml:"database" env:"ICONFINDER_CACHE_DATABASE"`
	Collection string        `toml:"collection" env:"ICONFINDER_CACHE_COLLECTION"`
	TTL        time.Duration `toml:"ttl" env:"ICONFINDER_CACHE_TTL"`
	// Scope prefixes every key, for sharing one backend between
	// deployments.
	Scope string `toml:"scope" env:"ICONFINDER_CACHE_SCOPE"`
}

// ServerConfig configures `iconfinder serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" env:"ICONFINDER_ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"ICONFINDER_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"ICONFINDER_WRITE_TIMEOUT"`
}

// FinderConfig holds browsing defaults.
type FinderConfig struct {
	Provider string        `toml:"provider" env:"ICONFINDER_PROVIDER"`
	PerPage  int           `toml:"per_page" env:"ICONFINDER_PER_PAGE"`
	Timeout  time.Duration `toml:"timeout" env:"ICONFINDER_HTTP_TIMEOUT"`
	// Preload lists prefixes loaded at startup by the server.
	Preload []string `toml:"preload" env:"ICONFINDER_PRELOAD" envSeparator:","`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level" env:"ICONFINDER_LOG_LEVEL"`
	Format string `toml:"format" env:"ICONFINDER_LOG_FORMAT"` // text, json or logfmt
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Finder: FinderConfig{
			Provider: providers.Default,
			PerPage:  48,
			Timeout:  15 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/iconfinder/config.toml, or "" when
// the config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "iconfinder", "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/iconfinder, falling back to the
// temp directory.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "iconfinder")
}

// Load reads the file at path over the defaults and applies the
// environment. An empty path means ICONFINDER_CONFIG or DefaultPath; a
// missing default file is not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("ICONFINDER_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !stderrors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks values the loaders would otherwise reject late.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendMemory, cache.BackendNone:
	case cache.BackendRedis, cache.BackendMongo:
		if c.Cache.URL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend %s needs a url", c.Cache.Backend)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Finder.PerPage <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "per_page must be positive, got %d", c.Finder.PerPage)
	}
	if err := errors.ValidateProvider(c.Finder.Provider); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, p := range c.Providers {
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidProvider, "provider %q defined twice", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// OpenCache creates the configured byte cache and its keyer.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	cc, err := cache.Open(ctx, cache.Options{
		Backend:    c.Cache.Backend,
		Dir:        c.Cache.Dir,
		URL:        c.Cache.URL,
		Database:   c.Cache.Database,
		Collection: c.Cache.Collection,
	})
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s cache", c.Cache.Backend)
	}
	keyer := cache.NewDefaultKeyer()
	if c.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Cache.Scope)
	}
	return cc, keyer, nil
}

// Registry builds the provider registry over an opened cache.
func (c *Config) Registry(cc cache.Cache, keyer cache.Keyer) (*providers.Registry, error) {
	r := providers.NewRegistry(providers.CacheOptions{
		Cache:   cc,
		Keyer:   keyer,
		TTL:     c.Cache.TTL,
		Timeout: c.Finder.Timeout,
	})
	for _, p := range c.Providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
