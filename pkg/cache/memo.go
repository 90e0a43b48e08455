package cache

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/observability"
)

// Memo layers JSON memoization over a [Cache].
type Memo struct {
	Cache Cache

	// Refresh skips lookups so every value is recomputed and rewritten.
	Refresh bool
}

// NewMemo returns a Memo backed by c. A nil c disables caching.
func NewMemo(c Cache, refresh bool) *Memo {
	if c == nil {
		c = NewNullCache()
	}
	return &Memo{Cache: c, Refresh: refresh}
}

// GetOrCompute decodes the value stored under key into v. On a miss it calls
// compute, stores the JSON encoding of its result with the given ttl and
// decodes that result into v.
//
// v must be a pointer to a value of the type compute returns. Lookup and
// store failures never fail the call; only compute errors are returned.
func (m *Memo) GetOrCompute(ctx context.Context, key string, ttl time.Duration, v any, compute func() (any, error)) (hit bool, err error) {
	kind := keyType(key)

	if !m.Refresh {
		data, ok, gerr := m.Cache.Get(ctx, key)
		if gerr == nil && ok && DecodeInto(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, kind)
			return true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	result, err := compute()
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", kind)
	}
	if err := DecodeInto(data, v); err != nil {
		return false, err
	}

	if m.Cache.Set(ctx, key, data, ttl) == nil {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return false, nil
}

// decodeInto decodes data into a fresh value and stores it in v only when
// decoding succeeds, so a corrupt entry never leaves partial state behind.
func DecodeInto(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return json.Unmarshal(data, v)
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

// keyType is the operation name prefix of a key built by [Key].
func keyType(key string) string {
	if op, _, ok := strings.Cut(key, ":"); ok {
		return op
	}
	return key
}
