package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Analyze.MaxMissing != 1 {
		t.Errorf("max_missing = %d, want 1", cfg.Analyze.MaxMissing)
	}
	if !strings.HasSuffix(cfg.Corpus.Root, filepath.Join("oss", "fonts")) {
		t.Errorf("corpus root = %q", cfg.Corpus.Root)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.PopularityTTL() != 24*time.Hour || cfg.CatalogTTL() != 7*24*time.Hour {
		t.Errorf("ttls = %v, %v", cfg.PopularityTTL(), cfg.CatalogTTL())
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, _, err := Load(path, false)
	if err != nil || cfg == nil {
		t.Fatalf("Load(optional) = %v, %v; want defaults", cfg, err)
	}

	if _, _, err := Load(path, true); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(required) error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[corpus]
root = "/src/fonts"

[cache]
backend = "sqlite"
ttl = "1h"

[popularity]
attempts = 5
timeout = "5s"

[analyze]
max_missing = 0
family_filter = "^Noto"
limit = 20

[extras]
colour = "teal"
`)
	cfg, unknown, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Corpus.Root != "/src/fonts" {
		t.Errorf("root = %q", cfg.Corpus.Root)
	}
	if cfg.Cache.Backend != cache.BackendSQLite || cfg.CatalogTTL() != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Popularity.Attempts != 5 || cfg.PopularityTimeout() != 5*time.Second {
		t.Errorf("popularity = %+v", cfg.Popularity)
	}
	// untouched keys keep their defaults
	if cfg.Popularity.Rate != 1 || cfg.Cache.Dir == "" {
		t.Errorf("defaults lost: rate %v, dir %q", cfg.Popularity.Rate, cfg.Cache.Dir)
	}
	if cfg.Analyze.MaxMissing != 0 || cfg.Analyze.FamilyFilter != "^Noto" || cfg.Analyze.Limit != 20 {
		t.Errorf("analyze = %+v", cfg.Analyze)
	}
	if !slices.Contains(unknown, "extras.colour") {
		t.Errorf("unknown keys = %v, want extras.colour", unknown)
	}
	if slices.Contains(unknown, "cache.backend") {
		t.Error("known keys reported as unknown")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `[cache`},
		{"wrongType", "[analyze]\nmax_missing = \"two\""},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"redisWithoutURL", "[cache]\nbackend = \"redis\""},
		{"duration", "[popularity]\ntimeout = \"soon\""},
		{"negativeDuration", "[cache]\nttl = \"-1h\""},
		{"attempts", "[popularity]\nattempts = 0"},
		{"rate", "[popularity]\nrate = -1.0"},
		{"limit", "[analyze]\nlimit = -3"},
		{"maxMissing", "[analyze]\nmax_missing = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.content), true)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if got, want := DefaultPath(), filepath.Join("/xdg/config", "glyphgap", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if got, want := DefaultCacheDir(), filepath.Join("/xdg/cache", "glyphgap"); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/oss/fonts", filepath.Join(home, "oss", "fonts")},
		{"/abs/path", "/abs/path"},
		{"~user/x", "~user/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
