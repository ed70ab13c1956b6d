package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is a PipelineHooks and CacheHooks implementation that tallies
// events in memory. The CLI registers one to print run statistics; it is
// safe for concurrent use.
type Counters struct {
	NoopPipelineHooks

	Evaluations atomic.Int64
	Failures    atomic.Int64
	Rounds      atomic.Int64
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
	CacheWrites atomic.Int64

	evalNanos atomic.Int64
}

// OnEvaluateComplete counts an evaluation and its duration.
func (c *Counters) OnEvaluateComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	c.Evaluations.Add(1)
	c.evalNanos.Add(int64(d))
	if err != nil {
		c.Failures.Add(1)
	}
}

// OnSearchRound counts a search round.
func (c *Counters) OnSearchRound(context.Context, string, int, int) {
	c.Rounds.Add(1)
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.CacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.CacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) { c.CacheWrites.Add(1) }

// EvalTime returns the summed duration of all completed evaluations.
func (c *Counters) EvalTime() time.Duration {
	return time.Duration(c.evalNanos.Load())
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
)
