// Package errors defines the coded errors nestindex returns.
//
// Every error a caller may need to act on is an [*Error] carrying a [Code].
// Codes fall into three groups:
//
//   - word errors: the input is not a word the engine accepts
//     (INVALID_WORD, NOT_DOUBLE_OCCURRENCE, INVALID_INPUT)
//   - usage errors: a flag, config value, or path is wrong
//     (INVALID_POLICY, INVALID_FORMAT, INVALID_PATH, FILE_NOT_FOUND)
//   - bugs: INVARIANT_VIOLATION
//
// Batch runs record word errors per word and keep going; see [IsValidation].
// The command-line tool maps codes to exit statuses with [ExitCode].
//
//	if err := w.Validate(); errors.Is(err, errors.ErrCodeNotDoubleOccurrence) {
//	    // skip the word
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class. It is also written to JSON
// reports next to each failed word.
type Code string

const (
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidWord         Code = "INVALID_WORD"
	ErrCodeNotDoubleOccurrence Code = "NOT_DOUBLE_OCCURRENCE"

	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// ErrCodeInvariant means a reduction broke a property that holds for
	// every double occurrence word.
	ErrCodeInvariant Code = "INVARIANT_VIOLATION"
)

// Error is an error with a code, a message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause, which stays reachable through
// errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message without the code prefix, or err.Error()
// for errors that carry no code.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err rejects one input word. A batch stores
// such errors in the word's outcome instead of aborting.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidWord, ErrCodeNotDoubleOccurrence:
		return true
	}
	return false
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for word and
// usage errors, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsValidation(err) {
		return 2
	}
	switch GetCode(err) {
	case ErrCodeInvalidPolicy, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeFileNotFound:
		return 2
	}
	return 1
}
