// Package pkg provides the libraries behind the nestindex CLI.
//
// # Overview
//
// Nestindex measures how deeply a double occurrence word is nested: the
// fewest rounds of deleting maximal return and repeat words (or single
// letters when none exist) that reduce it to the empty word. Circular words
// take the minimum over all their rotations.
//
// # Architecture
//
// The typical data flow through nestindex:
//
//	word list / command-line argument
//	         ↓
//	    [word] package (parse, validate, relabel)
//	         ↓
//	    [pipeline] package (options, cache, hooks, concurrent batches)
//	         ↓
//	    [nesting] package (sequences, reduction rounds, BFS search)
//	         ↓
//	    [io] package (text lines, JSON reports, histograms)
//
// # Main Packages
//
// [word] - The Word type: double occurrence checks, relabeling, rotation,
// reversal, and parsing of digit strings or delimited lists.
//
// [nesting] - The pure engine. Finds return and repeat sequences, applies
// one reduction round, searches breadth-first for the nesting index, and
// enumerates circular equivalents. No I/O and no shared state.
//
// [pipeline] - Runs the engine for the CLI: validates options, consults the
// result cache, emits observability hooks, and evaluates word lists
// concurrently.
//
// [cache] - Result stores: JSON files, an embedded BadgerDB, or nothing.
//
// [observability] - Hook interfaces with in-memory counters and Prometheus
// implementations.
//
// [io] - Reading word lists and reports, writing results.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version information injected at build time.
//
// # Quick Start
//
//	w, _ := word.Parse("123132")
//	idx, trace, _ := nesting.NestingIndex(w)
//	fmt.Println(idx)   // 2
//	fmt.Println(trace) // {123132, 1221, ε} obtained by: remove-letter(1), drop-maximal-sequences
//
// [word]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/word
// [nesting]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/nesting
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/nestindex/pkg/buildinfo
package pkg
