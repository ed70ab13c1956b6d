package nesting

import (
	"fmt"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/word"
)

// Kind classifies a reducible subword.
type Kind int

const (
	// TypeA is a return word: a mirror-symmetric block such as 1221 or 11,
	// where the letters read inward from both occurrences of the anchor
	// letter agree until they meet in the middle.
	TypeA Kind = iota + 1
	// TypeB is a repeat word: a direct-repeat block such as 123123, where
	// the letters following each occurrence of the anchor letter agree.
	TypeB
)

// String returns "A" or "B".
func (k Kind) String() string {
	switch k {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sequence is a contiguous reducible block of a word, anchored at the two
// occurrences of one letter.
type Sequence struct {
	Kind   Kind
	Letter int // anchor letter
	First  int // position of the first occurrence of Letter
	Second int // position of the second occurrence of Letter
	Start  int // first position of the block (always First)
	End    int // last position of the block, inclusive
	Block  word.Word
}

// Len returns the number of positions the block spans.
func (s Sequence) Len() int { return s.End - s.Start + 1 }

// Letters returns the distinct letters in the block.
func (s Sequence) Letters() []int { return s.Block.Alphabet() }

func (s Sequence) String() string {
	return fmt.Sprintf("%s[%d..%d]%s", s.Kind, s.Start, s.End, s.Block)
}

// FindSequences returns the type A and type B sequences of w, at most one per
// letter, in order of the anchor letter's first appearance.
//
// For a letter with occurrences occ1 < occ2 the type A scan compares
// w[occ1+n] with w[occ2-n] for n = 0, 1, ... and records w[occ1..occ2] once
// the two cursors are adjacent. Only letters without a type A block are
// scanned for type B: w[occ1+n] is compared with w[occ2+n] for n = 1, 2, ...
// and w[occ1..occ2+n] is recorded when occ1+n is adjacent to occ2. Both scans
// stop at the first mismatch.
//
// FindSequences fails with [errors.ErrCodeInvariant] if a letter does not
// occur exactly twice; validated words never trigger this.
func FindSequences(w word.Word) ([]Sequence, error) {
	var seqs []Sequence
	for _, letter := range w.Alphabet() {
		occs := w.Occurrences(letter)
		if len(occs) != 2 {
			return nil, errors.New(errors.ErrCodeInvariant,
				"letter %d occurs %d times in %s", letter, len(occs), w)
		}
		occ1, occ2 := occs[0], occs[1]

		if s, ok := typeA(w, letter, occ1, occ2); ok {
			seqs = append(seqs, s)
			continue
		}
		if s, ok := typeB(w, letter, occ1, occ2); ok {
			seqs = append(seqs, s)
		}
	}
	return seqs, nil
}

func typeA(w word.Word, letter, occ1, occ2 int) (Sequence, bool) {
	for n := 0; occ1+n <= occ2-n; n++ {
		if w[occ1+n] != w[occ2-n] {
			return Sequence{}, false
		}
		if (occ2-n)-(occ1+n) == 1 {
			return newSequence(w, TypeA, letter, occ1, occ2, occ2), true
		}
	}
	return Sequence{}, false
}

func typeB(w word.Word, letter, occ1, occ2 int) (Sequence, bool) {
	if occ2+(occ2-occ1-1) >= len(w) || len(w) == 2 {
		return Sequence{}, false
	}
	// n starts at 1 so a loop is never counted as both A and B.
	for n := 1; occ2+n < len(w); n++ {
		equal := w[occ1+n] == w[occ2+n]
		if occ2-(occ1+n) == 1 && equal {
			return newSequence(w, TypeB, letter, occ1, occ2, occ2+n), true
		}
		if !equal {
			break
		}
	}
	return Sequence{}, false
}

func newSequence(w word.Word, kind Kind, letter, occ1, occ2, end int) Sequence {
	return Sequence{
		Kind:   kind,
		Letter: letter,
		First:  occ1,
		Second: occ2,
		Start:  occ1,
		End:    end,
		Block:  w[occ1 : end+1].Clone(),
	}
}

// TauSequences returns the maximal sequences of w: those that cannot be
// extended outward into a larger block of the same class.
//
// A sequence is kept if its anchor occurrences touch either end of the word,
// if it is type A and the letters just outside it differ, or if it is type B
// (repeat blocks are maximal by construction).
func TauSequences(w word.Word) ([]Sequence, error) {
	seqs, err := FindSequences(w)
	if err != nil {
		return nil, err
	}
	var tau []Sequence
	for _, s := range seqs {
		switch {
		case s.First == 0 || s.Second == len(w)-1:
			tau = append(tau, s)
		case s.Kind == TypeA:
			if w[s.First-1] != w[s.Second+1] {
				tau = append(tau, s)
			}
		default:
			tau = append(tau, s)
		}
	}
	return tau, nil
}

// SigmaSequences returns the sequences of w tied for the greatest block
// length. It returns nil when w has no sequences.
func SigmaSequences(w word.Word) ([]Sequence, error) {
	seqs, err := FindSequences(w)
	if err != nil || len(seqs) == 0 {
		return nil, err
	}
	longest := 0
	for _, s := range seqs {
		longest = max(longest, s.Len())
	}
	var sigma []Sequence
	for _, s := range seqs {
		if s.Len() == longest {
			sigma = append(sigma, s)
		}
	}
	return sigma, nil
}
