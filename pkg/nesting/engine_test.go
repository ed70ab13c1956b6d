package nesting

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/word"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		w        word.Word
		circular bool
		want     int
	}{
		{"loop", word.Word{1, 1}, false, 1},
		{"return word", word.Word{1, 2, 2, 1}, false, 1},
		{"repeat word", word.Word{1, 2, 1, 2}, false, 1},
		{"irreducible", word.Word{1, 2, 3, 1, 3, 2}, false, 2},
		{"three rounds", word.Word{1, 2, 3, 4, 2, 1, 4, 3}, false, 3},
		{"empty", word.Word{}, false, 0},
		{"circular lowers index", word.Word{1, 2, 2, 3, 1, 3}, true, 1},
		{"circular outer loop", word.Word{1, 2, 2, 3, 3, 4, 4, 1}, true, 1},
		{"circular five letters", word.Word{1, 2, 3, 4, 4, 2, 5, 1, 3, 5}, true, 2},
		{"circular equal to linear", word.Word{1, 2, 3, 1, 3, 2}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reduce(tt.w, tt.circular)
			if err != nil {
				t.Fatalf("Reduce(%s) error: %v", tt.w, err)
			}
			if res.Index != tt.want {
				t.Errorf("Reduce(%s, %v).Index = %d, want %d", tt.w, tt.circular, res.Index, tt.want)
			}
			if len(res.Trace) != res.Index {
				t.Errorf("trace has %d steps, index %d", len(res.Trace), res.Index)
			}
		})
	}
}

func TestEvaluate_CircularWitness(t *testing.T) {
	res, err := Evaluate(word.Word{1, 2, 2, 3, 1, 3}, Options{Circular: true})
	if err != nil {
		t.Fatal(err)
	}
	// 121233 and 112323 both reach index 1; the first one enumerated wins.
	if res.Witness.String() != "121233" {
		t.Errorf("Witness = %s, want 121233", res.Witness)
	}
	if len(res.Candidates) != 6 {
		t.Fatalf("got %d candidates, want 6", len(res.Candidates))
	}
	for _, c := range res.Candidates {
		if c.Index < res.Index {
			t.Errorf("candidate %s has index %d below reported minimum %d", c.Word, c.Index, res.Index)
		}
	}
	if got := res.Trace.String(); got != "{121233, ε} obtained by: drop-maximal-sequences" {
		t.Errorf("trace = %q", got)
	}
	if !res.Word.Equal(word.Word{1, 2, 2, 3, 1, 3}) {
		t.Errorf("Word = %s, want the input", res.Word)
	}
}

func TestEvaluate_CircularEquivalentsShareIndex(t *testing.T) {
	for _, w := range CircularEquivalents(word.Word{1, 2, 3, 1, 3, 2}) {
		res, err := Reduce(w, true)
		if err != nil {
			t.Fatal(err)
		}
		if res.Index != 2 {
			t.Errorf("circular index of %s = %d, want 2", w, res.Index)
		}
	}
}

func TestEvaluate_CircularEmpty(t *testing.T) {
	res, err := Reduce(word.Empty, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 0 || !res.NoEquivalents || len(res.Candidates) != 0 {
		t.Errorf("Reduce(ε, circular) = %+v, want index 0 with no equivalents", res)
	}
}

func TestEvaluate_Reversals(t *testing.T) {
	w := word.Word{1, 2, 3, 4, 4, 2, 5, 1, 3, 5}
	plain, err := Evaluate(w, Options{Circular: true})
	if err != nil {
		t.Fatal(err)
	}
	withRev, err := Evaluate(w, Options{Circular: true, Reversals: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(withRev.Candidates) != 20 {
		t.Errorf("got %d candidates with reversals, want 20", len(withRev.Candidates))
	}
	if withRev.Index > plain.Index {
		t.Errorf("reversals raised the index: %d > %d", withRev.Index, plain.Index)
	}
	if !withRev.Reversals {
		t.Error("Reversals not recorded on the result")
	}
}

func TestEvaluate_ReversalsIgnoredWhenLinear(t *testing.T) {
	res, err := Evaluate(word.Word{1, 2, 3, 1, 3, 2}, Options{Reversals: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Circular || res.Reversals || res.Candidates != nil {
		t.Errorf("linear evaluation produced circular data: %+v", res)
	}
}

func TestEvaluate_Invalid(t *testing.T) {
	res, err := Evaluate(word.Word{1, 2, 1}, Options{Circular: true})
	if res != nil {
		t.Errorf("Evaluate returned a result for an invalid word: %+v", res)
	}
	if !errors.Is(err, errors.ErrCodeNotDoubleOccurrence) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNotDoubleOccurrence)
	}
}

func TestResult_JSON(t *testing.T) {
	res, err := Reduce(word.Word{1, 2, 3, 1, 3, 2}, false)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"word":[1,2,3,1,3,2]`,
		`"index":2`,
		`"op":"remove-letter(1)"`,
		`"op":"drop-maximal-sequences"`,
		`"policy":"tau"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}

	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Trace.String() != res.Trace.String() {
		t.Errorf("decoded trace = %q, want %q", back.Trace, res.Trace)
	}
}
