package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines.
type LogHooks struct {
	Logger *log.Logger
}

// InstallLogHooks registers l for all hook categories.
func InstallLogHooks(l *log.Logger) {
	h := &LogHooks{Logger: l}
	SetRenderHooks(h)
	SetChatHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetStreamHooks(h)
}

func (h *LogHooks) OnLayout(_ context.Context, diagram string, width, height int, d time.Duration) {
	h.Logger.Debug("layout", "diagram", diagram, "width", width, "height", height, "took", d)
}

func (h *LogHooks) OnRender(_ context.Context, diagram, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "diagram", diagram, "format", format, "err", err)
		return
	}
	h.Logger.Debug("render", "diagram", diagram, "format", format, "bytes", size, "took", d)
}

func (h *LogHooks) OnChatRequest(_ context.Context, model string, turns int) {
	h.Logger.Debug("chat request", "model", model, "turns", turns)
}

func (h *LogHooks) OnChatComplete(_ context.Context, model string, fallback bool, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("chat failed", "model", model, "fallback", fallback, "err", err)
		return
	}
	h.Logger.Debug("chat complete", "model", model, "fallback", fallback, "took", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnStreamOpen(_ context.Context, diagram, session string, width, height int) {
	h.Logger.Debug("stream opened", "diagram", diagram, "session", session, "width", width, "height", height)
}

func (h *LogHooks) OnStreamClose(_ context.Context, diagram, session string, frames int, d time.Duration) {
	h.Logger.Debug("stream closed", "diagram", diagram, "session", session, "frames", frames, "took", d)
}
