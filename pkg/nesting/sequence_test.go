package nesting

import (
	"testing"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/word"
)

func blocks(seqs []Sequence) []string {
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.Kind.String() + ":" + s.Block.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFindSequences(t *testing.T) {
	tests := []struct {
		name string
		w    word.Word
		want []string
	}{
		{"loop", word.Word{1, 1}, []string{"A:11"}},
		{"nested return", word.Word{1, 2, 2, 1}, []string{"A:1221", "A:22"}},
		{"repeat", word.Word{1, 2, 1, 2}, []string{"B:1212"}},
		{"two loops", word.Word{1, 1, 2, 2}, []string{"A:11", "A:22"}},
		{"irreducible", word.Word{1, 2, 3, 1, 3, 2}, nil},
		{"long repeat", word.Word{1, 2, 3, 1, 2, 3}, []string{"B:123123"}},
		{"inner repeat", word.Word{1, 2, 3, 2, 3, 1}, []string{"B:2323"}},
		{"empty", word.Word{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs, err := FindSequences(tt.w)
			if err != nil {
				t.Fatalf("FindSequences(%s) error: %v", tt.w, err)
			}
			if got := blocks(seqs); !equalStrings(got, tt.want) {
				t.Errorf("FindSequences(%s) = %v, want %v", tt.w, got, tt.want)
			}
		})
	}
}

func TestFindSequences_Positions(t *testing.T) {
	seqs, err := FindSequences(word.Word{1, 2, 3, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 1 {
		t.Fatalf("got %d sequences, want 1", len(seqs))
	}
	s := seqs[0]
	if s.Letter != 2 || s.First != 1 || s.Second != 3 || s.Start != 1 || s.End != 4 {
		t.Errorf("sequence = %+v, want letter 2 at [1..4] anchored at 1 and 3", s)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if got := s.Letters(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Letters() = %v, want [2 3]", got)
	}
	if got := s.String(); got != "B[1..4]2323" {
		t.Errorf("String() = %q", got)
	}
}

func TestFindSequences_Invariant(t *testing.T) {
	_, err := FindSequences(word.Word{1, 2, 1})
	if !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("FindSequences(121) error = %v, want %s", err, errors.ErrCodeInvariant)
	}
}

func TestTauSequences(t *testing.T) {
	tests := []struct {
		name string
		w    word.Word
		want []string
	}{
		{"outermost return only", word.Word{3, 1, 2, 2, 1, 3}, []string{"A:312213"}},
		{"return and loop", word.Word{1, 2, 3, 3, 2, 1, 4, 4}, []string{"A:123321", "A:44"}},
		{"inner loops kept", word.Word{1, 2, 2, 3, 3, 1}, []string{"A:22", "A:33"}},
		{"repeat always kept", word.Word{1, 2, 3, 2, 3, 1}, []string{"B:2323"}},
		{"single loop", word.Word{1, 2, 3, 4, 4, 2, 5, 1, 3, 5}, []string{"A:44"}},
		{"none", word.Word{1, 2, 3, 1, 3, 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs, err := TauSequences(tt.w)
			if err != nil {
				t.Fatal(err)
			}
			if got := blocks(seqs); !equalStrings(got, tt.want) {
				t.Errorf("TauSequences(%s) = %v, want %v", tt.w, got, tt.want)
			}
		})
	}
}

func TestSigmaSequences(t *testing.T) {
	tests := []struct {
		name string
		w    word.Word
		want []string
	}{
		{"longest wins", word.Word{1, 2, 3, 3, 2, 1, 4, 4}, []string{"A:123321"}},
		{"ties kept", word.Word{1, 1, 2, 2}, []string{"A:11", "A:22"}},
		{"none", word.Word{1, 2, 3, 1, 3, 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs, err := SigmaSequences(tt.w)
			if err != nil {
				t.Fatal(err)
			}
			if got := blocks(seqs); !equalStrings(got, tt.want) {
				t.Errorf("SigmaSequences(%s) = %v, want %v", tt.w, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if TypeA.String() != "A" || TypeB.String() != "B" {
		t.Errorf("kinds = %s, %s", TypeA, TypeB)
	}
	if got := Kind(7).String(); got != "Kind(7)" {
		t.Errorf("Kind(7).String() = %q", got)
	}
}
