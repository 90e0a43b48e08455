package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glyphgap/glyphgap/pkg/cache"
)

func TestCachePath(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCachePathFlag(t *testing.T) {
	c, out, _ := testCLI(t)
	dir := t.TempDir()

	if err := execute(c, "cache", "path", "--cache-dir", dir); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCachePathSQLite(t *testing.T) {
	c, out, _ := testCLI(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, cfgPath, "[cache]\nbackend = \"sqlite\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	if err := execute(c, "cache", "path", "--config", cfgPath); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != cache.SQLitePath(dir) {
		t.Errorf("cache path = %q, want %q", got, cache.SQLitePath(dir))
	}
}

func TestCacheClear(t *testing.T) {
	c, out, _ := testCLI(t)
	dir := t.TempDir()

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(`"v"`), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := execute(c, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearDisabled(t *testing.T) {
	c, out, _ := testCLI(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, cfgPath, "[cache]\nbackend = \"none\"\n")

	if err := execute(c, "cache", "clear", "--config", cfgPath); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Caching is disabled") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestCacheInfo(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "cache", "info"); err != nil {
		t.Fatalf("cache info: %v", err)
	}
	for _, want := range []string{"backend", "file", "168h0m0s", "24h0m0s"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("cache info missing %q:\n%s", want, out.String())
		}
	}
}

func TestOpenCacheFallback(t *testing.T) {
	c, _, logs := testCLI(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, cfgPath, "[cache]\nbackend = \"redis\"\nredis_url = \"not a url\"\n")
	root := c.RootCommand()
	c.configPath = cfgPath
	if err := c.loadConfig(root); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	backend := c.openCache(context.Background(), false)
	defer backend.Close()
	if _, ok := backend.(*cache.NullCache); !ok {
		t.Errorf("openCache = %T, want *cache.NullCache", backend)
	}
	if !strings.Contains(logs.String(), "Cache unavailable") {
		t.Errorf("expected a warning, got:\n%s", logs.String())
	}
}
