package nesting

import (
	"github.com/matzehuels/nestindex/pkg/word"
)

// Options configures [Evaluate].
type Options struct {
	// Circular treats the word as a closed curve and reports the minimum
	// index over its circular equivalents.
	Circular bool

	// Reversals extends the circular minimum to the rotations of the reversed
	// word as well. It has no effect unless Circular is set.
	Reversals bool

	// Policy selects the sequences removed in one round. Default: tau.
	Policy Policy

	// Dedupe collapses equal words within a search frontier.
	Dedupe bool

	// Progress is passed to every [Search] the evaluation runs.
	Progress func(depth, frontier int)
}

func (o Options) search() Search {
	return Search{Policy: o.Policy, Dedupe: o.Dedupe, Progress: o.Progress}
}

// Candidate is one circular equivalent and its own nesting index.
type Candidate struct {
	Word  word.Word `json:"word"`
	Index int       `json:"index"`
	Trace Trace     `json:"trace"`
}

// Result is the outcome of evaluating one word.
type Result struct {
	// Word is the evaluated input as given.
	Word word.Word `json:"word"`

	// Index is the nesting index, or the circular nesting index when
	// Circular is set.
	Index int `json:"index"`

	// Trace is a minimal reduction path. For circular results it starts at
	// Witness rather than at Word.
	Trace Trace `json:"trace"`

	// Witness is the equivalent that attained the circular minimum.
	Witness word.Word `json:"witness,omitempty"`

	Circular  bool   `json:"circular"`
	Reversals bool   `json:"reversals,omitempty"`
	Policy    string `json:"policy"`

	// NoEquivalents is set for a circular evaluation of the empty word.
	NoEquivalents bool `json:"no_equivalents,omitempty"`

	// Candidates lists every distinct equivalent with its index, in
	// enumeration order.
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Evaluate computes the nesting index of w under opts.
//
// Words that are not double occurrence words are rejected with an
// [errors.ErrCodeNotDoubleOccurrence] error before any work is done. In
// circular mode every distinct equivalent is searched and the first one with
// the smallest index becomes the witness. The empty word in circular mode has
// index 0 and NoEquivalents set.
//
// [errors.ErrCodeNotDoubleOccurrence]: github.com/matzehuels/nestindex/pkg/errors
func Evaluate(w word.Word, opts Options) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	res := &Result{
		Word:     w.Clone(),
		Circular: opts.Circular,
		Policy:   opts.Policy.String(),
	}
	search := opts.search()

	if !opts.Circular {
		idx, trace, err := search.Index(w)
		if err != nil {
			return nil, err
		}
		res.Index, res.Trace = idx, trace
		return res, nil
	}

	res.Reversals = opts.Reversals
	equivalents := CircularEquivalents(w)
	if opts.Reversals {
		equivalents = Isomorphisms(w)
	}
	if len(equivalents) == 0 {
		res.NoEquivalents = true
		return res, nil
	}

	best := -1
	res.Candidates = make([]Candidate, 0, len(equivalents))
	for _, eq := range equivalents {
		idx, trace, err := search.Index(eq)
		if err != nil {
			return nil, err
		}
		res.Candidates = append(res.Candidates, Candidate{Word: eq, Index: idx, Trace: trace})
		if best < 0 || idx < res.Candidates[best].Index {
			best = len(res.Candidates) - 1
		}
	}
	winner := res.Candidates[best]
	res.Index = winner.Index
	res.Trace = winner.Trace
	res.Witness = winner.Word
	return res, nil
}

// Reduce computes the nesting index of w, or its circular nesting index when
// circular is set, using the tau policy.
func Reduce(w word.Word, circular bool) (*Result, error) {
	return Evaluate(w, Options{Circular: circular})
}
