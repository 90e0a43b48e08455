package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/glyphgap/glyphgap/pkg/observability"
)

// recorder tallies pipeline and cache events.
type recorder struct {
	mu      sync.Mutex
	stages  map[string]int
	skipped map[string][]string
	hits    map[string]int
	misses  map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		stages:  make(map[string]int),
		skipped: make(map[string][]string),
		hits:    make(map[string]int),
		misses:  make(map[string]int),
	}
}

func (r *recorder) OnStageStart(context.Context, string) {}

func (r *recorder) OnStageComplete(_ context.Context, stage string, _ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		r.stages[stage]++
	}
}

func (r *recorder) OnItemSkipped(_ context.Context, stage, item string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped[stage] = append(r.skipped[stage], item)
}

func (r *recorder) OnCacheHit(_ context.Context, keyType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits[keyType]++
}

func (r *recorder) OnCacheMiss(_ context.Context, keyType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses[keyType]++
}

func (r *recorder) OnCacheSet(context.Context, string, int) {}

var (
	_ observability.PipelineHooks = (*recorder)(nil)
	_ observability.CacheHooks    = (*recorder)(nil)
)
