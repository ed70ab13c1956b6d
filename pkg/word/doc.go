// Package word provides the double occurrence word type and the elementary
// operations the reduction engine is built from.
//
// # Overview
//
// A double occurrence word is a finite sequence of letters in which every
// letter appears exactly twice, such as 123132 or 1221. Such words model the
// scrambled arrangement of gene segments in ciliate genome assembly; their
// structure, not the concrete letter values, is what matters. Two words that
// differ only by a renaming of letters are considered the same, which is why
// [Word.Relabel] is applied after every structural change.
//
// # Basic Usage
//
// Parse a word from text, check it, and inspect it:
//
//	w, err := word.Parse("1,2,3,1,3,2")
//	if err != nil {
//	    return err
//	}
//	if err := w.Validate(); err != nil {
//	    return err // errors.ErrCodeNotDoubleOccurrence
//	}
//	fmt.Println(w.Alphabet())       // [1 2 3]
//	fmt.Println(w.Occurrences(3))   // [2 4]
//	fmt.Println(w.Without(1).Relabel()) // 1221
//
// # Immutability
//
// All methods return new slices. Callers that keep a Word must not modify
// its elements in place; the reduction engine shares Word values between
// states.
package word
