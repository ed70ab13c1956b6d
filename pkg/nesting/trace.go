package nesting

import (
	"strings"

	"github.com/matzehuels/nestindex/pkg/word"
)

// Step is one round of a reduction path: the word the round started from and
// the operation applied to it.
type Step struct {
	Word word.Word `json:"word"`
	Op   Op        `json:"op"`
}

// Trace is a reduction path that ends at the empty word. Its length is the
// number of rounds taken. The empty word itself has the empty trace.
type Trace []Step

// Words returns the visited words including the final empty word.
func (t Trace) Words() []word.Word {
	words := make([]word.Word, 0, len(t)+1)
	for _, s := range t {
		words = append(words, s.Word)
	}
	return append(words, word.Empty)
}

// Ops returns the operation labels in order.
func (t Trace) Ops() []string {
	ops := make([]string, len(t))
	for i, s := range t {
		ops[i] = s.Op.String()
	}
	return ops
}

// String renders the trace as "{w0, w1, ..., ε} obtained by: op1, op2, ...".
func (t Trace) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, s := range t {
		b.WriteString(s.Word.String())
		b.WriteString(", ")
	}
	b.WriteString(word.Empty.String())
	b.WriteString("} obtained by: ")
	b.WriteString(strings.Join(t.Ops(), ", "))
	return b.String()
}
