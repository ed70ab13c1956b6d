// Package nesting computes the nesting index of double occurrence words.
//
// A double occurrence word (see package word) is reduced to the empty word in
// rounds. In each round either every maximal reducible block is dropped at
// once, or a single letter is removed. The nesting index is the least number
// of rounds that reaches the empty word; the circular nesting index is the
// least nesting index over all cyclic rotations of the word.
//
// # Sequences
//
// Two kinds of blocks are reducible in one round:
//
//   - Type A (return words): mirror blocks such as 11, 1221 or 123321.
//   - Type B (repeat words): direct repeats such as 1212 or 123123.
//
// [FindSequences] locates at most one block per letter. [TauSequences] keeps
// the blocks that cannot be extended outward, and [SigmaSequences] keeps the
// longest ones. The [Policy] of a [Reducer] chooses between the two.
//
// # Search
//
// [Search.Index] explores every reduction path level by level and stops at
// the first level that contains the empty word, so the index it returns is
// minimal and the returned [Trace] witnesses it:
//
//	idx, trace, err := nesting.NestingIndex(word.Word{1, 2, 3, 1, 3, 2})
//	// idx == 2
//	// trace.String() == "{123132, 1221, ε} obtained by: remove-letter(1), drop-maximal-sequences"
//
// The number of paths grows quickly with the word length. Setting
// [Search.Dedupe] collapses identical words within a level, which keeps the
// index and usually shrinks the search a great deal.
//
// # Circular Evaluation
//
// [Evaluate] with [Options.Circular] searches every distinct relabeled
// rotation returned by [CircularEquivalents] and reports the smallest index.
// With [Options.Reversals] the rotations of the reversed word returned by
// [Isomorphisms] are included as well.
//
// All functions in this package are pure: they do not perform I/O, keep no
// global state, and never modify their arguments.
package nesting
