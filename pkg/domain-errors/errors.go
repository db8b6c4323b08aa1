// Package domainerrors defines the coded error type shared by all services.
// Services attach a Code plus a human-readable message; the transport layer
// pattern-matches on the code to pick an HTTP status. Codes form a small
// closed set so no layer ever inspects concrete error types.
package domainerrors

import "errors"

type Code string

const (
	// CodeValidation marks malformed or blank input caught at the boundary.
	CodeValidation Code = "validation"
	// CodeNotFound marks a missing book, member, or lending record.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness collision, e.g. a duplicate email.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a domain rule rejection, e.g. lending a
	// book with no quantity available.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks unexpected failures that must not leak detail.
	CodeInternal Code = "internal"
)

// Error carries a code and message across layer boundaries.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is / errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is a readable alias for HasCode at call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
