// Package cli implements the nestindex command-line interface.
//
// The commands evaluate single words, batch files of words, and histograms
// of their nesting indices, and manage the on-disk result cache. The CLI is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - index: Nesting index of one word, optionally circular, with its trace
//   - batch: Evaluate every word of a file and write text or JSON results
//   - count: Histogram of nesting indices over a file or saved report
//   - isos: Every circular equivalent of a word with its index
//   - explore: Step through reductions of a word interactively
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every search round. Loggers are passed through context.Context to
// allow structured progress tracking.
//
// # Configuration
//
// Defaults for the evaluation flags may be set in
// $XDG_CONFIG_HOME/nestindex/config.toml (or a YAML file given with
// --config). Flags always win over the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// newLogger returns a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long an evaluation took. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time, rounded
// to the millisecond:
//
//	14:32:01.45 INFO evaluated word=123132 index=2 elapsed=3ms
func (s *stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

// logOptions records the effective evaluation options after config and
// flags have been merged.
func logOptions(l *log.Logger, opts pipeline.Options) {
	l.Debug("options",
		"circular", opts.Circular,
		"reversals", opts.Reversals,
		"policy", opts.Policy,
		"dedupe", opts.Dedupe,
		"jobs", opts.Jobs,
		"refresh", opts.Refresh,
		"ttl", opts.CacheTTL,
	)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored by withLogger, or
// log.Default() for contexts that never went through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
