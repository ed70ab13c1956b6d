package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the evaluation pipeline. Words are
// passed in their display form.
type PipelineHooks interface {
	OnEvaluateStart(ctx context.Context, word string, circular bool)
	OnEvaluateComplete(ctx context.Context, word string, index int, duration time.Duration, err error)

	// OnSearchRound is called once per breadth-first round with the size
	// of the new frontier.
	OnSearchRound(ctx context.Context, word string, depth, frontier int)

	OnBatchStart(ctx context.Context, runID string, words int)
	OnBatchComplete(ctx context.Context, runID string, evaluated, failed int, duration time.Duration)
}

// CacheHooks receives result cache lookups and writes. keyType names the
// kind of entry ("result").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnEvaluateStart(context.Context, string, bool)                        {}
func (NoopPipelineHooks) OnEvaluateComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnSearchRound(context.Context, string, int, int)                      {}
func (NoopPipelineHooks) OnBatchStart(context.Context, string, int)                            {}
func (NoopPipelineHooks) OnBatchComplete(context.Context, string, int, int, time.Duration)     {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
}

var defaults = registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// Readers load the registry lock-free since OnSearchRound fires many times
// per word; writers are serialized by mu.
var (
	mu      sync.Mutex
	current atomic.Pointer[registry]
)

func init() { current.Store(&defaults) }

func update(f func(r *registry)) {
	mu.Lock()
	defer mu.Unlock()
	next := *current.Load()
	f(&next)
	current.Store(&next)
}

// SetPipelineHooks installs h for all later pipeline events. A nil h is
// ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	update(func(r *registry) { r.pipeline = h })
}

// SetCacheHooks installs h for all later cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	update(func(r *registry) { r.cache = h })
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// Reset restores the no-op hooks. Tests call it in t.Cleanup.
func Reset() {
	update(func(r *registry) { *r = defaults })
}
