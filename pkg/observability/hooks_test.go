package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder remembers the words it saw so tests can tell hooks apart.
type recorder struct {
	NoopPipelineHooks
	NoopCacheHooks
	mu    sync.Mutex
	words []string
}

func (r *recorder) OnEvaluateStart(_ context.Context, word string, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words = append(r.words, word)
}

func TestRegistryDefaults(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	// No-ops accept every event.
	ctx := context.Background()
	Pipeline().OnSearchRound(ctx, "123132", 1, 3)
	Pipeline().OnBatchComplete(ctx, "run", 10, 0, time.Second)
	Cache().OnCacheSet(ctx, "result", 1024)
}

func TestRegistrySetAndReset(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)

	if Pipeline() != PipelineHooks(rec) || Cache() != CacheHooks(rec) {
		t.Fatal("installed hooks were not returned, or nil replaced them")
	}
	Pipeline().OnEvaluateStart(context.Background(), "1221", false)
	if len(rec.words) != 1 || rec.words[0] != "1221" {
		t.Errorf("recorded %v", rec.words)
	}

	// Replacing one kind of hook keeps the other.
	SetPipelineHooks(NoopPipelineHooks{})
	if Cache() != CacheHooks(rec) {
		t.Error("SetPipelineHooks replaced the cache hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestRegistryConcurrentReaders(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				Pipeline().OnEvaluateStart(ctx, "12", false)
				Cache().OnCacheMiss(ctx, "result")
			}
		}()
	}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	wg.Wait()
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := &Counters{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnSearchRound(ctx, "1221", 1, 1)
			c.OnEvaluateComplete(ctx, "1221", 1, time.Millisecond, nil)
			c.OnCacheMiss(ctx, "result")
			c.OnCacheSet(ctx, "result", 10)
		}()
	}
	wg.Wait()
	c.OnEvaluateComplete(ctx, "121", 0, time.Millisecond, errors.New("odd length"))
	c.OnCacheHit(ctx, "result")

	if got := c.Evaluations.Load(); got != 9 {
		t.Errorf("Evaluations = %d, want 9", got)
	}
	if got := c.Failures.Load(); got != 1 {
		t.Errorf("Failures = %d, want 1", got)
	}
	if got := c.Rounds.Load(); got != 8 {
		t.Errorf("Rounds = %d, want 8", got)
	}
	if c.CacheHits.Load() != 1 || c.CacheMisses.Load() != 8 || c.CacheWrites.Load() != 8 {
		t.Errorf("cache counters = %d/%d/%d", c.CacheHits.Load(), c.CacheMisses.Load(), c.CacheWrites.Load())
	}
	if c.EvalTime() != 9*time.Millisecond {
		t.Errorf("EvalTime = %v, want 9ms", c.EvalTime())
	}
}

