package word

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/nestindex/pkg/errors"
)

// Parse reads a word from its textual form.
//
// Two notations are accepted:
//   - Undelimited digits, one letter per digit: "123321"
//   - Letters separated by punctuation or whitespace: "1,2,3,3,2,1",
//     "10-11-10-11", "1 2 2 1"
//
// Consecutive delimiters are collapsed. Blank input is the empty word.
// Parse does not check the double occurrence property; see [Word.Validate].
//
// Errors carry [errors.ErrCodeInvalidWord].
func Parse(s string) (Word, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Word{}, nil
	}

	if !strings.ContainsFunc(s, isDelimiter) {
		w := make(Word, 0, len(s))
		for _, r := range s {
			if r < '0' || r > '9' {
				return nil, errors.New(errors.ErrCodeInvalidWord, "invalid letter %q in %q", r, s)
			}
			w = append(w, int(r-'0'))
		}
		return w, nil
	}

	tokens := strings.FieldsFunc(s, isDelimiter)
	w := make(Word, 0, len(tokens))
	for _, tok := range tokens {
		if err := errors.ValidateToken(tok); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWord, err, "parse %q", s)
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWord, err, "parse %q", s)
		}
		w = append(w, n)
	}
	return w, nil
}

// MustParse is like [Parse] but panics on error. It is intended for tests
// and package-level fixtures.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

func isDelimiter(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}
