package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/nestindex/pkg/cache"
	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/observability"
	"github.com/matzehuels/nestindex/pkg/word"
)

// resultKeyType labels result entries in cache hooks.
const resultKeyType = "result"

// tracer is a no-op until the process installs a tracer provider.
var tracer = otel.Tracer("nestindex/pipeline")

// Runner encapsulates evaluation with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results itself. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Evaluate computes the nesting index of w, consulting the cache first.
// The boolean result reports whether the result came from the cache.
func (r *Runner) Evaluate(ctx context.Context, w word.Word, opts Options) (*nesting.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := w.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.ResultKey(w.Key(), opts.ResultKeyOpts())
	if !opts.Refresh {
		var cached nesting.Result
		err := cache.GetJSON(ctx, r.Cache, key, &cached)
		switch {
		case err == nil:
			observability.Cache().OnCacheHit(ctx, resultKeyType)
			opts.Logger.Debug("cache hit", "word", w, "index", cached.Index)
			return &cached, true, nil
		case stderrors.Is(err, cache.ErrCacheMiss):
			observability.Cache().OnCacheMiss(ctx, resultKeyType)
		default:
			opts.Logger.Warn("cache read failed", "word", w, "error", err)
		}
	}

	res, err := r.compute(ctx, w, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			opts.Logger.Warn("cache write failed", "word", w, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, resultKeyType, len(data))
		}
	}
	return res, false, nil
}

// EvaluateString parses s as a word and evaluates it.
func (r *Runner) EvaluateString(ctx context.Context, s string, opts Options) (*nesting.Result, bool, error) {
	w, err := word.Parse(s)
	if err != nil {
		return nil, false, err
	}
	return r.Evaluate(ctx, w, opts)
}

// compute runs the engine with hooks and debug logging around it.
func (r *Runner) compute(ctx context.Context, w word.Word, opts Options) (*nesting.Result, error) {
	label := w.String()
	ctx, span := tracer.Start(ctx, "pipeline.compute", trace.WithAttributes(
		attribute.String("word", label),
		attribute.Bool("circular", opts.Circular),
		attribute.String("policy", opts.Policy),
	))
	defer span.End()

	hooks := observability.Pipeline()
	hooks.OnEvaluateStart(ctx, label, opts.Circular)

	engineOpts := opts.EngineOptions()
	engineOpts.Progress = func(depth, frontier int) {
		hooks.OnSearchRound(ctx, label, depth, frontier)
		opts.Logger.Debug("search round", "word", label, "depth", depth, "frontier", frontier)
	}

	start := time.Now()
	res, err := nesting.Evaluate(w, engineOpts)
	elapsed := time.Since(start)

	index := 0
	if res != nil {
		index = res.Index
	}
	hooks.OnEvaluateComplete(ctx, label, index, elapsed, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !errors.IsValidation(err) {
			opts.Logger.Error("evaluation failed", "word", label, "error", err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("index", res.Index))

	opts.Logger.Debug("evaluated word",
		"word", label,
		"index", res.Index,
		"circular", opts.Circular,
		"duration", elapsed)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
