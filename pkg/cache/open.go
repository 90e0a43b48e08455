package cache

import (
	"context"
	"path/filepath"

	"github.com/glyphgap/glyphgap/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string // one of the Backend constants; "" means file
	Dir      string // directory for the file and sqlite backends
	RedisURL string
}

// Open constructs the backend named by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendSQLite:
		c, err := NewSQLiteCache(SQLitePath(opts.Dir))
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache backend requires a url")
		}
		c, err := NewRedisCache(ctx, opts.RedisURL, "glyphgap:")
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown cache backend %q", opts.Backend)
	}
}

// SQLitePath is the database file the sqlite backend keeps in dir.
func SQLitePath(dir string) string {
	return filepath.Join(dir, "cache.db")
}
