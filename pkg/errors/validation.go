package errors

import (
	"strings"
	"unicode"
)

// maxTokenDigits bounds a single letter token. Nine digits always fit in an
// int on every platform Go supports.
const maxTokenDigits = 9

// ValidateToken validates a single letter token of a textual word.
//
// The validation rules are:
//   - No empty tokens
//   - Only ASCII decimal digits (letters are non-negative integers)
//   - At most 9 digits
func ValidateToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidWord, "empty letter")
	}

	if len(token) > maxTokenDigits {
		return New(ErrCodeInvalidWord, "letter %q too long (max %d digits)", token, maxTokenDigits)
	}

	for _, r := range token {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidWord, "letter %q is not a non-negative integer", token)
		}
	}

	return nil
}

// ValidatePath validates an input or output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
