// Package observability provides hooks for metrics, tracing, and logging
// around the annealing run, the cache, and the HTTP API.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about annealing progress, cache
// operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core tree dependency-free from observability frameworks
//   - Allows different backends (the TUI, structured logging, a metrics sink)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnnealHooks(&myAnnealHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Anneal().OnIteration(ev)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Anneal Hooks
// =============================================================================

// IterationEvent reports the state of one annealing iteration.
type IterationEvent struct {
	Iteration   int
	Temperature float64
	Cost        float64
	BestCost    float64
}

// PerturbationEvent reports the outcome of one applied perturbation.
type PerturbationEvent struct {
	Kind     string
	Accepted bool
}

// AnnealHooks receives events from the simulated annealing driver.
type AnnealHooks interface {
	OnIteration(ev IterationEvent)
	OnPerturbation(ev PerturbationEvent)
	OnRunComplete(bestCost float64, bestArea int, timedOut bool)
}

// Hooks is a convenience alias so callers that only need annealing
// events (e.g. pkg/anneal) can name the narrower concept directly.
type Hooks = AnnealHooks

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client/server operations.
type HTTPHooks interface {
	// OnRequest records an incoming or outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnnealHooks is a no-op implementation of AnnealHooks.
type NoopAnnealHooks struct{}

func (NoopAnnealHooks) OnIteration(IterationEvent)       {}
func (NoopAnnealHooks) OnPerturbation(PerturbationEvent) {}
func (NoopAnnealHooks) OnRunComplete(float64, int, bool) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopHooks returns a no-op AnnealHooks, handy as a Driver default.
func NoopHooks() AnnealHooks { return NoopAnnealHooks{} }

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	annealHooks AnnealHooks = NoopAnnealHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetAnnealHooks registers custom annealing hooks.
// This should be called once at application startup before Run.
func SetAnnealHooks(h AnnealHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		annealHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Anneal returns the registered annealing hooks.
func Anneal() AnnealHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return annealHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	annealHooks = NoopAnnealHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
