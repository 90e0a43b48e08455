// Package config loads glyphgap settings from a TOML file.
//
// The file is optional. Values it sets replace the defaults; command-line
// flags that were set explicitly replace both. Durations are written as Go
// duration strings ("30s", "24h") and paths may start with "~/".
//
//	[corpus]
//	root = "~/oss/fonts"
//	languages = "~/oss/gflanguages/Lib/gflanguages/data/languages"
//
//	[cache]
//	backend = "sqlite"      # file | sqlite | redis | none
//	ttl = "168h"
//
//	[popularity]
//	timeout = "20s"
//	attempts = 3
//
//	[analyze]
//	max_missing = 2
//	family_filter = "^Noto"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/integrations/gfonts"
	"github.com/glyphgap/glyphgap/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "glyphgap"

// Config is the complete set of file-configurable settings.
type Config struct {
	Corpus     CorpusConfig     `toml:"corpus"`
	Cache      CacheConfig      `toml:"cache"`
	Popularity PopularityConfig `toml:"popularity"`
	Analyze    AnalyzeConfig    `toml:"analyze"`
}

// CorpusConfig locates the font corpus and the language catalog.
type CorpusConfig struct {
	Root      string `toml:"root"`      // checkout of the fonts repository
	Languages string `toml:"languages"` // empty: derived from Root
}

// CacheConfig selects where memoized results are kept.
type CacheConfig struct {
	Backend  string `toml:"backend"`   // file, sqlite, redis or none
	Dir      string `toml:"dir"`       // file and sqlite backends
	RedisURL string `toml:"redis_url"` // redis backend
	TTL      string `toml:"ttl"`       // lifetime of catalog entries
}

// PopularityConfig controls the popularity feed fetch.
type PopularityConfig struct {
	URL      string  `toml:"url"`
	File     string  `toml:"file"`     // read a saved feed instead of fetching
	Timeout  string  `toml:"timeout"`  // per request
	Attempts int     `toml:"attempts"` // including the first
	Rate     float64 `toml:"rate"`     // requests per second, 0 = unpaced
	TTL      string  `toml:"ttl"`      // lifetime of the cached feed
}

// AnalyzeConfig holds defaults for the analyze command.
type AnalyzeConfig struct {
	MaxMissing   int    `toml:"max_missing"`
	FamilyFilter string `toml:"family_filter"`
	Limit        int    `toml:"limit"` // 0 = list everything
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Corpus: CorpusConfig{
			Root: filepath.Join(home, "oss", "fonts"),
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     cache.TTLFamilies.String(),
		},
		Popularity: PopularityConfig{
			URL:      gfonts.DefaultURL,
			Timeout:  "30s",
			Attempts: 3,
			Rate:     1,
			TTL:      cache.TTLPopularity.String(),
		},
		Analyze: AnalyzeConfig{
			MaxMissing: pipeline.DefaultMaxMissing,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/glyphgap/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/glyphgap, falling back to
// ~/.cache.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", AppName)
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults unless required is set. Keys the file sets that glyphgap does
// not know are returned so the caller can warn about them.
func Load(path string, required bool) (*Config, []string, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}

	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, unknown, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, unknown, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	backends := []string{cache.BackendFile, cache.BackendSQLite, cache.BackendRedis, cache.BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend must be one of %s, got %q", strings.Join(backends, ", "), c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis backend")
	}
	for name, d := range map[string]string{
		"cache.ttl":          c.Cache.TTL,
		"popularity.timeout": c.Popularity.Timeout,
		"popularity.ttl":     c.Popularity.TTL,
	} {
		if _, err := parseDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.Popularity.Attempts < 1 {
		return fmt.Errorf("popularity.attempts must be >= 1, got %d", c.Popularity.Attempts)
	}
	if c.Popularity.Rate < 0 {
		return fmt.Errorf("popularity.rate must be >= 0, got %v", c.Popularity.Rate)
	}
	if c.Analyze.Limit < 0 {
		return fmt.Errorf("analyze.limit must be >= 0, got %d", c.Analyze.Limit)
	}
	return errors.ValidateMaxMissing(c.Analyze.MaxMissing)
}

// CatalogTTL is the parsed cache.ttl.
func (c *Config) CatalogTTL() time.Duration {
	d, _ := parseDuration(c.Cache.TTL)
	return d
}

// PopularityTimeout is the parsed popularity.timeout.
func (c *Config) PopularityTimeout() time.Duration {
	d, _ := parseDuration(c.Popularity.Timeout)
	return d
}

// PopularityTTL is the parsed popularity.ttl.
func (c *Config) PopularityTTL() time.Duration {
	d, _ := parseDuration(c.Popularity.TTL)
	return d
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisURL: c.Cache.RedisURL}
}

func (c *Config) expandPaths() {
	for _, p := range []*string{&c.Corpus.Root, &c.Corpus.Languages, &c.Cache.Dir, &c.Popularity.File} {
		*p = ExpandHome(*p)
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// parseDuration accepts an empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", s)
	}
	return d, nil
}
