package nesting

import (
	"github.com/matzehuels/nestindex/pkg/word"
)

// Search computes nesting indices by level-order expansion of the branching
// reduction tree.
//
// The zero value is ready to use: tau policy, no frontier de-duplication and
// no progress reporting. Search holds no state between calls and is safe for
// concurrent use if Progress is.
type Search struct {
	// Policy selects the sequences removed in one round.
	Policy Policy

	// Dedupe collapses structurally equal words within a frontier before it
	// is expanded. Every branch from equal words is identical, so the index
	// is unchanged; only the search gets smaller.
	Dedupe bool

	// Progress, if non-nil, is called after each frontier is built with the
	// round number and the number of states in it.
	Progress func(depth, frontier int)
}

// Index returns the nesting index of w and a witnessing reduction path.
//
// The empty word has index 0 and a nil trace. Otherwise the frontier starts
// as the successors of w at depth 1; the first depth at which the frontier
// contains the empty word is the index, and the first such state in frontier
// order is the witness. Every round shortens every branch, so the search ends
// after at most len(w)/2 rounds.
//
// Index fails with [errors.ErrCodeNotDoubleOccurrence] if w is not a double
// occurrence word.
//
// [errors.ErrCodeNotDoubleOccurrence]: github.com/matzehuels/nestindex/pkg/errors
func (s Search) Index(w word.Word) (int, Trace, error) {
	if err := w.Validate(); err != nil {
		return 0, nil, err
	}
	if w.IsEmpty() {
		return 0, nil, nil
	}

	r := Reducer{Policy: s.Policy}
	frontier, err := r.Step(NewState(w))
	if err != nil {
		return 0, nil, err
	}
	depth := 1
	s.report(depth, frontier)

	for {
		for _, st := range frontier {
			if st.IsEmpty() {
				return depth, st.Trace(), nil
			}
		}

		var next []State
		for _, st := range frontier {
			succ, err := r.Step(st)
			if err != nil {
				return 0, nil, err
			}
			next = append(next, succ...)
		}
		if s.Dedupe {
			next = dedupe(next)
		}
		depth++
		frontier = next
		s.report(depth, frontier)
	}
}

func (s Search) report(depth int, frontier []State) {
	if s.Progress != nil {
		s.Progress(depth, len(frontier))
	}
}

// dedupe keeps the first state for each distinct word.
func dedupe(states []State) []State {
	seen := make(map[string]bool, len(states))
	out := states[:0:0]
	for _, st := range states {
		k := st.value.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, st)
	}
	return out
}

// NestingIndex returns the nesting index of w under the tau policy, together
// with one minimal reduction path.
func NestingIndex(w word.Word) (int, Trace, error) {
	return Search{}.Index(w)
}
