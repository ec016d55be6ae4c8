// Package nlerrors holds the typed error kinds used across the learner, its
// automaton/grammar algebra, and its MAT collaborators, per spec.md §7.
// Mirrors the teacher's server/serr package: a handful of sentinel errors
// created with errors.New, plus an Error type that carries causes and is
// compatible with errors.Is/errors.As.
package nlerrors

import "errors"

var (
	// ErrPrecondition marks a precondition violation: an operation was asked
	// to run on input it explicitly does not support (e.g. complementing a
	// non-deterministic automaton). Fatal; not recoverable.
	ErrPrecondition = errors.New("precondition violated")

	// ErrMalformedGrammar marks a per-line grammar-input parse failure. The
	// offending line is skipped and parsing continues; this is the one
	// recoverable kind.
	ErrMalformedGrammar = errors.New("malformed grammar input")

	// ErrTeacherInconsistent marks a MAT that returned different answers to
	// the same query across calls. Fatal; the learner aborts.
	ErrTeacherInconsistent = errors.New("teacher gave inconsistent answers")

	// ErrUnreachable marks an algorithmic branch the implementation asserts
	// can never be taken (e.g. the word generator's dead end). Fatal
	// assertion.
	ErrUnreachable = errors.New("unreachable branch taken")
)

// Error is a typed error with one or more causes. Calling errors.Is on an
// Error with any of its causes as the target returns true.
type Error struct {
	msg   string
	cause []error
}

// New returns an Error with the given message and zero or more causes. The
// first cause, if any, is the one errors.Is and Error() favor.
func New(msg string, cause ...error) *Error {
	return &Error{msg: msg, cause: cause}
}

// Error implements the error interface. If a message was given, it is
// returned with the first cause's message appended; otherwise the first
// cause's message is returned directly.
func (e *Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of Error, for use with errors.Is/errors.As.
func (e *Error) Unwrap() []error {
	return e.cause
}

// Precondition returns an Error wrapping ErrPrecondition with msg as detail.
func Precondition(msg string) *Error {
	return New(msg, ErrPrecondition)
}

// Unreachable returns an Error wrapping ErrUnreachable with msg as detail.
func Unreachable(msg string) *Error {
	return New(msg, ErrUnreachable)
}

// TeacherInconsistent returns an Error wrapping ErrTeacherInconsistent
// describing the offending query.
func TeacherInconsistent(query string) *Error {
	return New("query "+query+" answered inconsistently", ErrTeacherInconsistent)
}
