package word

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/nestindex/pkg/errors"
)

// Word is a finite sequence of non-negative letters. A structurally valid
// word is a double occurrence word: every letter in it appears exactly twice.
//
// Words are treated as immutable values. Every operation in this package
// returns a fresh slice and never modifies its receiver, so a Word may be
// shared freely once constructed.
type Word []int

// Empty is the empty word, the terminal state of every reduction.
var Empty = Word{}

// commaThreshold is the word length from which String switches to the
// comma-separated form.
const commaThreshold = 20

// Len returns the number of positions in w (twice the alphabet size for a
// double occurrence word).
func (w Word) Len() int { return len(w) }

// IsEmpty reports whether w has no letters.
func (w Word) IsEmpty() bool { return len(w) == 0 }

// Clone returns a copy of w that shares no memory with it.
// Clone of a nil word is the empty, non-nil word.
func (w Word) Clone() Word {
	if w == nil {
		return Word{}
	}
	return slices.Clone(w)
}

// Alphabet returns the distinct letters of w in order of first appearance.
func (w Word) Alphabet() []int {
	seen := make(map[int]bool, len(w)/2)
	letters := make([]int, 0, len(w)/2)
	for _, l := range w {
		if !seen[l] {
			seen[l] = true
			letters = append(letters, l)
		}
	}
	return letters
}

// Occurrences returns the ascending positions of letter in w.
// For a double occurrence word the result has length 2, or 0 if letter does
// not occur.
func (w Word) Occurrences(letter int) []int {
	var occs []int
	for i, l := range w {
		if l == letter {
			occs = append(occs, i)
		}
	}
	return occs
}

// Contains reports whether letter occurs in w.
func (w Word) Contains(letter int) bool {
	return slices.Contains(w, letter)
}

// IsDoubleOccurrence reports whether every letter of w appears exactly twice.
// Odd-length words are never double occurrence; the empty word and a loop
// such as [1 1] are.
func (w Word) IsDoubleOccurrence() bool {
	if len(w)%2 == 1 {
		return false
	}
	if len(w) == 2 && w[0] == w[1] {
		return true
	}
	sorted := slices.Clone(w)
	slices.Sort(sorted)
	for i := 0; i < len(sorted); i += 2 {
		if sorted[i] != sorted[i+1] {
			return false
		}
		if i > 0 && sorted[i] == sorted[i-1] {
			return false
		}
	}
	return true
}

// Validate returns nil if w is a double occurrence word over non-negative
// letters. Otherwise it returns an [errors.ErrCodeNotDoubleOccurrence] error
// describing the first problem found.
func (w Word) Validate() error {
	if len(w)%2 == 1 {
		return errors.New(errors.ErrCodeNotDoubleOccurrence,
			"%s is not a double occurrence word: odd length %d", w, len(w))
	}
	counts := make(map[int]int, len(w)/2)
	for _, l := range w {
		if l < 0 {
			return errors.New(errors.ErrCodeNotDoubleOccurrence,
				"%s is not a double occurrence word: negative letter %d", w, l)
		}
		counts[l]++
	}
	for _, l := range w.Alphabet() {
		if counts[l] != 2 {
			return errors.New(errors.ErrCodeNotDoubleOccurrence,
				"%s is not a double occurrence word: letter %d occurs %d times", w, l, counts[l])
		}
	}
	return nil
}

// Relabel returns w with its letters renumbered 1, 2, ... in order of first
// appearance. Two words with the same pairing structure relabel to equal
// words, and Relabel is idempotent.
func (w Word) Relabel() Word {
	labels := make(map[int]int, len(w)/2)
	out := make(Word, len(w))
	for i, l := range w {
		nl, ok := labels[l]
		if !ok {
			nl = len(labels) + 1
			labels[l] = nl
		}
		out[i] = nl
	}
	return out
}

// Equal reports whether a and b hold the same letters at the same positions.
// Words of different lengths are never equal.
func Equal(a, b Word) bool {
	return slices.Equal(a, b)
}

// Equal reports whether w and o hold the same letters at the same positions.
func (w Word) Equal(o Word) bool { return Equal(w, o) }

// Without returns w with every occurrence of the given letters removed.
// The result is not relabeled.
func (w Word) Without(letters ...int) Word {
	out := make(Word, 0, len(w))
	for _, l := range w {
		if !slices.Contains(letters, l) {
			out = append(out, l)
		}
	}
	return out
}

// RotateRight returns w cyclically shifted k positions to the right, so the
// last k letters move to the front. Negative k rotates left.
func (w Word) RotateRight(k int) Word {
	n := len(w)
	if n == 0 {
		return Word{}
	}
	k = ((k % n) + n) % n
	out := make(Word, 0, n)
	out = append(out, w[n-k:]...)
	return append(out, w[:n-k]...)
}

// Reverse returns w read backwards.
func (w Word) Reverse() Word {
	out := w.Clone()
	slices.Reverse(out)
	return out
}

// String formats w for display. Short words with single-digit letters are
// written without separators ("123132"); words of length 20 or more, or
// with a letter above 9, are comma separated. The empty word is "ε".
func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	if len(w) >= commaThreshold || slices.ContainsFunc(w, func(l int) bool { return l > 9 || l < 0 }) {
		return w.Key()
	}
	var b strings.Builder
	for _, l := range w {
		b.WriteString(strconv.Itoa(l))
	}
	return b.String()
}

// Key returns the unambiguous comma-separated form of w ("1,2,1,2").
// The empty word has the empty key.
func (w Word) Key() string {
	parts := make([]string, len(w))
	for i, l := range w {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}
