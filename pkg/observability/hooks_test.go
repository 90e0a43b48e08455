package observability

import (
	"context"
		"sync"
	"testing"
	"time"
)

// stageCount counts completed stages and ignores everything else.
type stageCount struct {
	noopCache
	mu sync.Mutex
	n  int
}

func (s *stageCount) OnStageStart(context.Context, string) {}
func (s *stageCount) OnItemSkipped(context.Context, string, string, error) {}

func (s *stageCount) OnStageComplete(context.Context, string, int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
}

func (s *stageCount) load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	Pipeline().OnStageStart(ctx, "families")
	Pipeline().OnStageComplete(ctx, "families", 1800, time.Second, nil)
	Pipeline().OnItemSkipped(ctx, "chars", "Broken Font", nil)
	Cache().OnCacheHit(ctx, "chars")
	Cache().OnCacheMiss(ctx, "families")
	Cache().OnCacheSet(ctx, "languages", 1024)
	HTTP().OnRequest(ctx, "GET", "fonts.google.com", "/metadata/fonts")
	HTTP().OnResponse(ctx, "GET", "fonts.google.com", "/metadata/fonts", 200, time.Second)
	HTTP().OnError(ctx, "GET", "fonts.google.com", "/metadata/fonts", nil)

	if _, ok := Pipeline().(noopPipeline); !ok {
		t.Errorf("Pipeline() = %T, want no-op", Pipeline())
	}
}

func TestRegister(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	c := &stageCount{}
	Register(Hooks{Pipeline: c})
	if Pipeline() != PipelineHooks(c) {
		t.Error("Register should install the pipeline hooks")
	}
	if _, ok := Cache().(noopCache); !ok {
		t.Error("nil Cache field should keep the no-op hooks")
	}

	// nil fields keep what is registered
	Register(Hooks{Cache: c})
	if Pipeline() != PipelineHooks(c) || Cache() != CacheHooks(c) {
		t.Error("second Register should keep the pipeline hooks")
	}

	Reset()
	if _, ok := Pipeline().(noopPipeline); !ok {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestRegisterConcurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ctx := context.Background()
	h := &stageCount{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Register(Hooks{Pipeline: h})
			for j := 0; j < 100; j++ {
				Pipeline().OnStageComplete(ctx, "chars", 1, time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()
	if got := h.load(); got != 800 {
		t.Errorf("completed = %d, want 800", got)
	}
}
