// Package observability lets callers watch a run without the libraries
// depending on a logging or metrics backend.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Register hooks once at startup, before any run begins:
//
//	observability.Register(observability.Hooks{
//	    Pipeline: myHooks,
//	    Cache:    myHooks,
//	})
//
// Emitting an event:
//
//	observability.Pipeline().OnStageStart(ctx, "families")
//	// ... load families ...
//	observability.Pipeline().OnStageComplete(ctx, "families", len(families), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from the analysis pipeline. Stage names are
// the pipeline's Stage constants.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, count int, duration time.Duration, err error)

	// OnItemSkipped records a single family excluded by a recoverable error.
	OnItemSkipped(ctx context.Context, stage, item string, err error)
}

// CacheHooks receives cache lookups and writes. keyType is the operation
// prefix of the key, such as "chars" or "gfonts:".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives outgoing requests. OnError covers transport failures
// only; error statuses arrive through OnResponse.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type noopPipeline struct{}

func (noopPipeline) OnStageStart(context.Context, string)                                {}
func (noopPipeline) OnStageComplete(context.Context, string, int, time.Duration, error) {}
func (noopPipeline) OnItemSkipped(context.Context, string, string, error)               {}

type noopCache struct{}

func (noopCache) OnCacheHit(context.Context, string)      {}
func (noopCache) OnCacheMiss(context.Context, string)     {}
func (noopCache) OnCacheSet(context.Context, string, int) {}

type noopHTTP struct{}

func (noopHTTP) OnRequest(context.Context, string, string, string)                      {}
func (noopHTTP) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (noopHTTP) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// Hooks groups the hooks passed to [Register]. Nil fields keep whatever is
// currently registered for that category.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Hooks {
	return Hooks{Pipeline: noopPipeline{}, Cache: noopCache{}, HTTP: noopHTTP{}}
}

// Register installs the non-nil hooks in h.
func Register(h Hooks) {
	mu.Lock()
	defer mu.Unlock()
	if h.Pipeline != nil {
		current.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// Reset restores the no-op hooks.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.Pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.Cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.HTTP
}
