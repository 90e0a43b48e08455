// Package cache memoizes slow catalog construction across runs.
//
// Building the family catalog means parsing every METADATA.pb in a font
// corpus and reading the cmap of one font per family, which takes minutes
// on a full checkout. Results are stored in a [Cache] under keys derived
// from the operation name and a hash of its structured arguments (see
// [Key]), and looked up through [Memo].
//
// # Backends
//
//   - [FileCache]: one JSON file per key under a directory (default)
//   - [SQLiteCache]: a single SQLite database file
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// Any read failure, expired entry or undecodable payload is reported as a
// miss, never as an error: a stale or corrupt cache must not stop a run.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the data stored under key. hit is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Default time-to-live per kind of cached data.
const (
	// TTLLanguages covers the parsed language catalog.
	TTLLanguages = 7 * 24 * time.Hour

	// TTLFamilies covers the parsed family metadata of a corpus.
	TTLFamilies = 7 * 24 * time.Hour

	// TTLChars covers per-font character sets. Keys include the file's
	// size and modification time, so entries never go stale.
	TTLChars time.Duration = 0

	// TTLPopularity covers the remote popularity feed.
	TTLPopularity = 24 * time.Hour
)
