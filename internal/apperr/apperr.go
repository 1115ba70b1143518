// Package apperr defines the error taxonomy surfaced to API callers and
// its mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for status mapping.
type Kind int

const (
	// Internal is the fallback for unclassified failures.
	Internal Kind = iota
	// Unauthenticated means no or invalid credential was presented.
	Unauthenticated
	// NotFound means a referenced user, task, shortlist or university is missing.
	NotFound
	// Forbidden means a stage-guard mismatch or an illegal action for the stage.
	Forbidden
	// BadState means a missing stage assignment or a profile-completion
	// direction violation.
	BadState
	// BadRequest means a missing or malformed payload field.
	BadRequest
	// Conflict means a pre-existing unique constraint, e.g. a duplicate
	// signup email. Surfaced as a 400 like BadRequest.
	Conflict
)

// Error carries a category and a human-readable detail string.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// New builds an Error of the given kind with a formatted detail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or Internal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case BadState, BadRequest, Conflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
