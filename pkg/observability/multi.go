package observability

import (
	"context"
	"time"
)

// MultiPipelineHooks forwards every pipeline event to each of its hooks in order.
type MultiPipelineHooks []PipelineHooks

func (m MultiPipelineHooks) OnEvaluateStart(ctx context.Context, w string, circular bool) {
	for _, h := range m {
		h.OnEvaluateStart(ctx, w, circular)
	}
}

func (m MultiPipelineHooks) OnEvaluateComplete(ctx context.Context, w string, index int, d time.Duration, err error) {
	for _, h := range m {
		h.OnEvaluateComplete(ctx, w, index, d, err)
	}
}

func (m MultiPipelineHooks) OnSearchRound(ctx context.Context, w string, depth, frontier int) {
	for _, h := range m {
		h.OnSearchRound(ctx, w, depth, frontier)
	}
}

func (m MultiPipelineHooks) OnBatchStart(ctx context.Context, runID string, words int) {
	for _, h := range m {
		h.OnBatchStart(ctx, runID, words)
	}
}

func (m MultiPipelineHooks) OnBatchComplete(ctx context.Context, runID string, evaluated, failed int, d time.Duration) {
	for _, h := range m {
		h.OnBatchComplete(ctx, runID, evaluated, failed, d)
	}
}

// MultiCacheHooks forwards every cache event to each of its hooks in order.
type MultiCacheHooks []CacheHooks

func (m MultiCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheHit(ctx, keyType)
	}
}

func (m MultiCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (m MultiCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, keyType, size)
	}
}
