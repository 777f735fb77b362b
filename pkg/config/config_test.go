package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/providers"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memory"
ttl = "2h"

[finder]
per_page = 24
preload = ["mdi", "fa"]

[[providers]]
name = "disk"
kind = "local"
dir = "/srv/icons"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendMemory || cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Finder.PerPage != 24 || len(cfg.Finder.Preload) != 2 {
		t.Errorf("finder = %+v", cfg.Finder)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("defaults should survive, addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0].Kind != providers.KindLocal {
		t.Errorf("providers = %+v", cfg.Providers)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[finder]\nper_page = 24\n")
	t.Setenv("ICONFINDER_PER_PAGE", "12")
	t.Setenv("ICONFINDER_CACHE_BACKEND", "none")
	t.Setenv("ICONFINDER_PRELOAD", "mdi,tabler")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Finder.PerPage != 12 {
		t.Errorf("PerPage = %d, want 12", cfg.Finder.PerPage)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if len(cfg.Finder.Preload) != 2 || cfg.Finder.Preload[1] != "tabler" {
		t.Errorf("Preload = %v", cfg.Finder.Preload)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[cache]\nbackedn = \"file\"\n"},
		{"bad toml", "[cache\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"zero per page", "[finder]\nper_page = 0\n"},
		{"duplicate provider", "[[providers]]\nname = \"a\"\n[[providers]]\nname = \"a\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidInput && code != errors.ErrCodeInvalidProvider {
				t.Errorf("code = %q", code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing file should fail")
	}

	t.Setenv("ICONFINDER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(""); err != nil {
		t.Errorf("missing default file should be fine: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = cache.BackendMemory
	cfg.Cache.Scope = "test:"
	cfg.Providers = []providers.Provider{{Name: "disk", Kind: providers.KindLocal, Dir: t.TempDir()}}

	cc, keyer, err := cfg.OpenCache(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Close()
	if got := keyer.CollectionsKey("x"); got != "test:collections:x" {
		t.Errorf("scoped key = %q", got)
	}

	r, err := cfg.Registry(cc, keyer)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Get("disk"); !ok {
		t.Error("configured provider missing")
	}
	if _, ok := r.Get(""); !ok {
		t.Error("default provider missing")
	}
}
