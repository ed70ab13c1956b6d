package word

import (
	"testing"

	"github.com/matzehuels/nestindex/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Word
		wantErr bool
	}{
		{name: "digits", input: "123321", want: Word{1, 2, 3, 3, 2, 1}},
		{name: "commas", input: "1,2,3,3,2,1", want: Word{1, 2, 3, 3, 2, 1}},
		{name: "multi digit letters", input: "10,11,10,11", want: Word{10, 11, 10, 11}},
		{name: "dashes", input: "1-2-1-2", want: Word{1, 2, 1, 2}},
		{name: "spaces", input: "1 2 2 1", want: Word{1, 2, 2, 1}},
		{name: "mixed delimiters", input: "1, 2;2 .1", want: Word{1, 2, 2, 1}},
		{name: "repeated delimiters", input: "1,,1", want: Word{1, 1}},
		{name: "surrounding space", input: "  1221\n", want: Word{1, 2, 2, 1}},
		{name: "empty", input: "", want: Word{}},
		{name: "blank", input: "   ", want: Word{}},
		{name: "only delimiters", input: ",,", want: Word{}},
		{name: "not double occurrence is still parsed", input: "121", want: Word{1, 2, 1}},

		{name: "letters", input: "abba", wantErr: true},
		{name: "letter token", input: "1,a,1", wantErr: true},
		{name: "too many digits", input: "1,12345678901", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidWord) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidWord)
				}
				return
			}
			if !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"1221", "123132", "10,11,10,11"} {
		w := MustParse(s)
		if got := w.String(); got != s {
			t.Errorf("MustParse(%q).String() = %q", s, got)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("x")
}
