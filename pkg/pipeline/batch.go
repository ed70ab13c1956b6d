package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/nestindex/pkg/buildinfo"
	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/observability"
	"github.com/matzehuels/nestindex/pkg/word"
)

// Entry is one word of a batch as it appeared in the input.
type Entry struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
}

// Outcome is the result of evaluating one Entry. Exactly one of Result and
// Error is set.
type Outcome struct {
	Line   int             `json:"line"`
	Input  string          `json:"input"`
	Result *nesting.Result `json:"result,omitempty"`
	Cached bool            `json:"cached,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   errors.Code     `json:"code,omitempty"`
}

// OK reports whether the entry was evaluated.
func (o Outcome) OK() bool { return o.Result != nil }

// Bucket counts the words that share one nesting index.
type Bucket struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// Histogram is the distribution of nesting indices, ordered by index.
type Histogram []Bucket

// NewHistogram counts the indices of the evaluated outcomes.
func NewHistogram(outcomes []Outcome) Histogram {
	counts := make(map[int]int)
	for _, o := range outcomes {
		if o.OK() {
			counts[o.Result.Index]++
		}
	}
	h := make(Histogram, 0, len(counts))
	for idx, n := range counts {
		h = append(h, Bucket{Index: idx, Count: n})
	}
	slices.SortFunc(h, func(a, b Bucket) int { return a.Index - b.Index })
	return h
}

// Count returns the number of words with the given index.
func (h Histogram) Count(index int) int {
	for _, b := range h {
		if b.Index == index {
			return b.Count
		}
	}
	return 0
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	Words     int           `json:"words"`
	Evaluated int           `json:"evaluated"`
	Failed    int           `json:"failed"`
	CacheHits int           `json:"cache_hits"`
	MaxIndex  int           `json:"max_index"`
	Duration  time.Duration `json:"duration_ns"`
}

// Report is the result of a batch run. Outcomes are in input order.
type Report struct {
	RunID     string         `json:"run_id"`
	Build     buildinfo.Info `json:"build"`
	Options   Options        `json:"options"`
	Outcomes  []Outcome      `json:"results"`
	Histogram Histogram      `json:"histogram"`
	Stats     BatchStats     `json:"stats"`
}

// Batch evaluates entries concurrently, at most opts.Jobs at a time.
//
// Entries that fail to parse or are not double occurrence words are recorded
// in their Outcome and do not stop the run. Any other error cancels the
// remaining work and is returned.
func (r *Runner) Batch(ctx context.Context, entries []Entry, opts Options) (*Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "pipeline.Batch", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("words", len(entries)),
		attribute.Int("jobs", opts.Jobs),
	))
	defer span.End()

	logger := opts.Logger.With("run", runID[:8])
	hooks := observability.Pipeline()
	hooks.OnBatchStart(ctx, runID, len(entries))
	logger.Info("starting batch", "words", len(entries), "jobs", opts.Jobs)

	start := time.Now()
	outcomes := make([]Outcome, len(entries))
	var done atomic.Int64
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, e := range entries {
		g.Go(func() error {
			out, err := r.evaluateEntry(gctx, e, opts)
			if err != nil {
				return fmt.Errorf("line %d: %w", e.Line, err)
			}
			outcomes[i] = out
			n := done.Add(1)
			if opts.OnProgress != nil {
				progressMu.Lock()
				opts.OnProgress(int(n), len(entries))
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		hooks.OnBatchComplete(ctx, runID, int(done.Load()), 0, time.Since(start))
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		Build:     buildinfo.Current(),
		Options:   opts,
		Outcomes:  outcomes,
		Histogram: NewHistogram(outcomes),
	}
	report.Stats = summarize(outcomes, time.Since(start))
	hooks.OnBatchComplete(ctx, runID, report.Stats.Evaluated, report.Stats.Failed, report.Stats.Duration)

	logger.Info("batch complete",
		"evaluated", report.Stats.Evaluated,
		"failed", report.Stats.Failed,
		"cached", report.Stats.CacheHits,
		"duration", report.Stats.Duration)
	return report, nil
}

// evaluateEntry turns validation failures into an Outcome and returns every
// other error.
func (r *Runner) evaluateEntry(ctx context.Context, e Entry, opts Options) (Outcome, error) {
	out := Outcome{Line: e.Line, Input: e.Input}
	w, err := word.Parse(e.Input)
	if err == nil {
		out.Result, out.Cached, err = r.Evaluate(ctx, w, opts)
	}
	if err != nil {
		if !errors.IsValidation(err) {
			return Outcome{}, err
		}
		opts.Logger.Debug("skipping word", "line", e.Line, "input", e.Input, "error", err)
		out.Error = errors.UserMessage(err)
		out.Code = errors.GetCode(err)
	}
	return out, nil
}

func summarize(outcomes []Outcome, d time.Duration) BatchStats {
	s := BatchStats{Words: len(outcomes), Duration: d}
	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			continue
		}
		s.Evaluated++
		if o.Cached {
			s.CacheHits++
		}
		s.MaxIndex = max(s.MaxIndex, o.Result.Index)
	}
	return s
}
