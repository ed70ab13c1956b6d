package nesting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/word"
)

// OpKind identifies a reduction operation.
type OpKind int

const (
	// OpDropSequences removes every letter covered by the selected maximal
	// sequences in a single round.
	OpDropSequences OpKind = iota + 1
	// OpRemoveLetter removes both occurrences of one letter.
	OpRemoveLetter
)

const (
	dropSequencesLabel = "drop-maximal-sequences"
	removeLetterFormat = "remove-letter(%d)"
)

// Op is one reduction operation applied to a word.
// Letter is only meaningful for [OpRemoveLetter] and names the letter as it
// appeared in the word the operation was applied to.
type Op struct {
	Kind   OpKind
	Letter int
}

// DropSequences returns the operation that removes all maximal sequences.
func DropSequences() Op { return Op{Kind: OpDropSequences} }

// RemoveLetterOp returns the operation that removes letter.
func RemoveLetterOp(letter int) Op { return Op{Kind: OpRemoveLetter, Letter: letter} }

// String returns the operation label: "drop-maximal-sequences" or
// "remove-letter(ℓ)".
func (o Op) String() string {
	switch o.Kind {
	case OpDropSequences:
		return dropSequencesLabel
	case OpRemoveLetter:
		return fmt.Sprintf(removeLetterFormat, o.Letter)
	}
	return fmt.Sprintf("Op(%d)", int(o.Kind))
}

// MarshalText implements encoding.TextMarshaler using the operation label.
func (o Op) MarshalText() ([]byte, error) {
	if o.Kind != OpDropSequences && o.Kind != OpRemoveLetter {
		return nil, fmt.Errorf("unknown operation kind %d", int(o.Kind))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the labels
// produced by [Op.String].
func (o *Op) UnmarshalText(text []byte) error {
	s := string(text)
	if s == dropSequencesLabel {
		*o = DropSequences()
		return nil
	}
	if strings.HasPrefix(s, "remove-letter(") {
		var letter int
		if _, err := fmt.Sscanf(s, removeLetterFormat, &letter); err == nil {
			*o = RemoveLetterOp(letter)
			return nil
		}
	}
	return fmt.Errorf("unknown operation %q", s)
}

// State is a word reached during reduction together with how it was reached:
// the words visited before it and the operations applied to each of them.
//
// States are immutable. [Reducer.Step] always builds new states, and the
// accessors return copies.
type State struct {
	value   word.Word
	history []word.Word
	path    []Op
}

// NewState returns the starting state for w, with empty history.
func NewState(w word.Word) State {
	return State{value: w.Clone()}
}

// Word returns the current word.
func (s State) Word() word.Word { return s.value.Clone() }

// History returns the words visited before the current one, oldest first.
func (s State) History() []word.Word { return slices.Clone(s.history) }

// Path returns the operations applied to each word of the history.
func (s State) Path() []Op { return slices.Clone(s.path) }

// Depth returns the number of reduction rounds taken to reach the state.
func (s State) Depth() int { return len(s.path) }

// IsEmpty reports whether the current word is the empty word.
func (s State) IsEmpty() bool { return len(s.value) == 0 }

// Trace returns the reduction path that led to the state.
func (s State) Trace() Trace {
	t := make(Trace, len(s.history))
	for i, w := range s.history {
		t[i] = Step{Word: w, Op: s.path[i]}
	}
	return t
}

// successor builds the state reached from s by op.
func (s State) successor(next word.Word, op Op) State {
	history := make([]word.Word, len(s.history), len(s.history)+1)
	copy(history, s.history)
	path := make([]Op, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return State{
		value:   next,
		history: append(history, s.value),
		path:    append(path, op),
	}
}

// Reducer applies reduction rounds under a sequence selection policy.
// The zero value uses [PolicyTau].
type Reducer struct {
	Policy Policy
}

// Step returns every state reachable from s in one reduction round.
//
// If the policy selects any sequences, the first successor drops all of them
// at once; every letter not covered by a selected sequence is additionally
// removed on its own, one successor per letter. If no sequences are selected,
// every letter is removed on its own. Successors are ordered by the parent's
// alphabet and each is relabeled. Every successor is strictly shorter than
// s; the empty state has no successors.
func (r Reducer) Step(s State) ([]State, error) {
	seqs, err := r.Policy.sequences(s.value)
	if err != nil {
		return nil, err
	}

	alphabet := s.value.Alphabet()
	next := make([]State, 0, len(alphabet)+1)
	drop := alphabet
	if len(seqs) > 0 {
		covered := coveredLetters(seqs)
		drop = slices.DeleteFunc(slices.Clone(alphabet), func(l int) bool { return covered[l] })
		next = append(next, s.successor(RemoveSequences(s.value, seqs), DropSequences()))
	}
	for _, letter := range drop {
		next = append(next, s.successor(RemoveLetter(s.value, letter), RemoveLetterOp(letter)))
	}
	return next, nil
}

// RemoveSequences removes both occurrences of every letter that appears in
// any of seqs, then relabels the result.
func RemoveSequences(w word.Word, seqs []Sequence) word.Word {
	covered := coveredLetters(seqs)
	out := make(word.Word, 0, len(w))
	for _, l := range w {
		if !covered[l] {
			out = append(out, l)
		}
	}
	return out.Relabel()
}

// RemoveLetter removes both occurrences of letter, then relabels the result.
func RemoveLetter(w word.Word, letter int) word.Word {
	return w.Without(letter).Relabel()
}

func coveredLetters(seqs []Sequence) map[int]bool {
	covered := make(map[int]bool)
	for _, s := range seqs {
		for _, l := range s.Block {
			covered[l] = true
		}
	}
	return covered
}

// Policy selects which sequences a reduction round removes at once.
type Policy int

const (
	// PolicyTau removes the maximal (non-extendable) sequences.
	PolicyTau Policy = iota
	// PolicySigma removes the sequences of greatest length.
	PolicySigma
)

// Policies lists the valid policy names.
var Policies = []string{"tau", "sigma"}

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyTau:
		return "tau"
	case PolicySigma:
		return "sigma"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy returns the policy named s. The empty string selects
// [PolicyTau].
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tau":
		return PolicyTau, nil
	case "sigma":
		return PolicySigma, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPolicy,
		"unknown policy %q (valid: %s)", s, strings.Join(Policies, ", "))
}

func (p Policy) sequences(w word.Word) ([]Sequence, error) {
	switch p {
	case PolicyTau:
		return TauSequences(w)
	case PolicySigma:
		return SigmaSequences(w)
	}
	return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy %d", int(p))
}
