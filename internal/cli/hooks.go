package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphgap/glyphgap/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnStageStart(_ context.Context, stage string) {
	h.logger.Debug("Stage started", "stage", stage)
}

func (h logHooks) OnStageComplete(_ context.Context, stage string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Stage failed", "stage", stage, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("Stage done", "stage", stage, "count", count, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnItemSkipped(_ context.Context, stage, item string, err error) {
	h.logger.Debug("Skipped", "stage", stage, "item", item, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "key", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "key", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "key", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("Request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("Response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("Request failed", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)
