// Package pipeline evaluates words for the nestindex CLI.
//
// This package wraps the pure nesting engine with everything a caller needs
// around it: option validation and defaults, the result cache, observability
// hooks, logging, and concurrent evaluation of word lists. The CLI talks only
// to this package, never to the engine directly, so every entry point shares
// the same caching and logging behavior.
//
// # Usage
//
// Create a Runner and evaluate a word:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{Circular: true}
//	res, cached, err := runner.Evaluate(ctx, w, opts)
//
// Evaluate a list of words read from a file:
//
//	entries, err := pkgio.ImportWords("words.txt")
//	report, err := runner.Batch(ctx, entries, pipeline.Options{Jobs: 8})
//	for _, o := range report.Outcomes {
//	    fmt.Println(o.Input, o.Result.Index)
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestindex/pkg/cache"
	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/nesting"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultPolicy is the sequence selection policy.
	DefaultPolicy = "tau"

	// DefaultCacheTTL is how long a stored result stays valid. Results never
	// change for a given word and options; the ttl only bounds disk growth.
	DefaultCacheTTL = 30 * 24 * time.Hour
)

// DefaultJobs returns the default number of concurrent evaluations.
func DefaultJobs() int {
	return runtime.GOMAXPROCS(0)
}

// Format constants for batch output.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats is the set of supported batch output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// =============================================================================
// Options - Evaluation Configuration
// =============================================================================

// Options contains all configuration for evaluating words.
// This struct supports JSON serialization so batch reports can record it.
type Options struct {
	// Engine options
	Circular  bool   `json:"circular"`
	Reversals bool   `json:"reversals,omitempty"`
	Policy    string `json:"policy"`
	Dedupe    bool   `json:"dedupe"`

	// Execution options
	Jobs     int           `json:"jobs,omitempty"`
	Refresh  bool          `json:"refresh,omitempty"` // Recompute even if a cached result exists
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// OnProgress, if set, is called by Batch after each word with the number
	// of words finished and the total. Calls may come from several goroutines.
	OnProgress func(done, total int) `json:"-"`

	policy    nesting.Policy
	validated bool
}

// ValidateFormat checks that a batch output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	p, err := nesting.ParsePolicy(o.Policy)
	if err != nil {
		return err
	}
	o.policy = p
	o.Policy = p.String()

	if o.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jobs must not be negative, got %d", o.Jobs)
	}
	if o.Jobs == 0 {
		o.Jobs = DefaultJobs()
	}
	if o.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", o.CacheTTL)
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// EngineOptions returns the nesting engine options. Progress is left unset.
func (o *Options) EngineOptions() nesting.Options {
	return nesting.Options{
		Circular:  o.Circular,
		Reversals: o.Reversals,
		Policy:    o.policy,
		Dedupe:    o.Dedupe,
	}
}

// ResultKeyOpts returns cache key options for a result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Circular:  o.Circular,
		Reversals: o.Circular && o.Reversals,
		Policy:    o.Policy,
	}
}
