package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a charmbracelet logger at debug level,
// and failures at warn level.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ViewerHooks   = (*LogHooks)(nil)
)

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetViewerHooks(h)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.Logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(msg, kv...)
}

func (h *LogHooks) OnBuildStart(_ context.Context, scene string) {
	h.Logger.Debug("build scene", "scene", scene)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, scene string, cells int, d time.Duration, err error) {
	h.done("scene built", err, "scene", scene, "cells", cells, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnComposeStart(_ context.Context, scene string, cells int) {
	h.Logger.Debug("compose", "scene", scene, "cells", cells)
}

func (h *LogHooks) OnComposeComplete(_ context.Context, scene string, d time.Duration, err error) {
	h.done("composed", err, "scene", scene, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("rendered", err, "formats", formats, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("request", "method", method, "path", path, "status", status, "elapsed", d)
}

func (h *LogHooks) OnSnapshot(_ context.Context, path string, attempt int, err error) {
	h.done("snapshot", err, "path", path, "attempt", attempt)
}
