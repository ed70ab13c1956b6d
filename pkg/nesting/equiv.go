package nesting

import "github.com/matzehuels/nestindex/pkg/word"

// CircularEquivalents returns the distinct relabeled cyclic rotations of w.
//
// The word is rotated right by one position len(w) times; each rotation is
// relabeled and kept the first time it is seen, so the last element is always
// the relabeling of w itself. The empty word has no equivalents.
func CircularEquivalents(w word.Word) []word.Word {
	return appendRotations(nil, make(map[string]bool), w)
}

// Isomorphisms returns the circular equivalents of w followed by those of its
// reversal that were not already seen. Reading a closed curve's word in the
// other direction yields the same curve, so these words all share the
// circular nesting index.
func Isomorphisms(w word.Word) []word.Word {
	seen := make(map[string]bool)
	out := appendRotations(nil, seen, w)
	return appendRotations(out, seen, w.Reverse())
}

func appendRotations(out []word.Word, seen map[string]bool, w word.Word) []word.Word {
	cur := w
	for range len(w) {
		cur = cur.RotateRight(1)
		r := cur.Relabel()
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
