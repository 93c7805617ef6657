// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks without depending on a
// particular backend. Defaults are no-ops; the CLI installs log-backed hooks
// at startup and tests can install recorders.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetRenderHooks(&myRenderHooks{})
//	observability.SetStreamHooks(&myStreamHooks{})
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... lay out the diagram ...
//	observability.Render().OnLayout(ctx, "orbital", width, height, time.Since(start))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// RenderHooks receives events from diagram layout and rendering.
type RenderHooks interface {
	// OnLayout records a (re-)layout of a diagram at the given size.
	OnLayout(ctx context.Context, diagram string, width, height int, duration time.Duration)

	// OnRender records a rendered artifact.
	OnRender(ctx context.Context, diagram, format string, size int, duration time.Duration, err error)
}

// ChatHooks receives events from the concierge.
type ChatHooks interface {
	OnChatRequest(ctx context.Context, model string, turns int)

	// OnChatComplete records the outcome. fallback is true when a canned
	// reply was returned instead of generated text.
	OnChatComplete(ctx context.Context, model string, fallback bool, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. keyType is the key
// prefix: snapshot, chart or social.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// StreamHooks receives the lifetime of live frame streams.
type StreamHooks interface {
	OnStreamOpen(ctx context.Context, diagram, session string, width, height int)

	// OnStreamClose records how many frames the client received.
	OnStreamClose(ctx context.Context, diagram, session string, frames int, duration time.Duration)
}

// NoopRenderHooks discards render events.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLayout(context.Context, string, int, int, time.Duration)           {}
func (NoopRenderHooks) OnRender(context.Context, string, string, int, time.Duration, error) {}

// NoopChatHooks discards chat events.
type NoopChatHooks struct{}

func (NoopChatHooks) OnChatRequest(context.Context, string, int)                         {}
func (NoopChatHooks) OnChatComplete(context.Context, string, bool, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopStreamHooks discards stream events.
type NoopStreamHooks struct{}

func (NoopStreamHooks) OnStreamOpen(context.Context, string, string, int, int)            {}
func (NoopStreamHooks) OnStreamClose(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set, falling back to def when unset.
type slot[T any] struct {
	p   atomic.Pointer[T]
	def T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.def
}

// set ignores a nil interface so callers can pass optional hooks through.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.p.Store(&h)
}

var (
	renderHooks = slot[RenderHooks]{def: NoopRenderHooks{}}
	chatHooks   = slot[ChatHooks]{def: NoopChatHooks{}}
	cacheHooks  = slot[CacheHooks]{def: NoopCacheHooks{}}
	httpHooks   = slot[HTTPHooks]{def: NoopHTTPHooks{}}
	streamHooks = slot[StreamHooks]{def: NoopStreamHooks{}}
)

func SetRenderHooks(h RenderHooks) { renderHooks.set(h) }
func SetChatHooks(h ChatHooks)     { chatHooks.set(h) }
func SetCacheHooks(h CacheHooks)   { cacheHooks.set(h) }
func SetHTTPHooks(h HTTPHooks)     { httpHooks.set(h) }
func SetStreamHooks(h StreamHooks) { streamHooks.set(h) }

func Render() RenderHooks { return renderHooks.get() }
func Chat() ChatHooks     { return chatHooks.get() }
func Cache() CacheHooks   { return cacheHooks.get() }
func HTTP() HTTPHooks     { return httpHooks.get() }
func Stream() StreamHooks { return streamHooks.get() }

// Reset restores every hook set to its no-op default.
func Reset() {
	renderHooks.p.Store(nil)
	chatHooks.p.Store(nil)
	cacheHooks.p.Store(nil)
	httpHooks.p.Store(nil)
	streamHooks.p.Store(nil)
}
