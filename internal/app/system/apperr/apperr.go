// Package apperr defines the error taxonomy the gateway boundary maps to
// HTTP responses. Stores and policies return these; handlers never invent
// status codes of their own.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for response mapping.
type Kind int

const (
	// KindValidation: malformed or missing input; user-correctable.
	KindValidation Kind = iota + 1
	// KindAuthentication: bad credentials or a bad/expired token. The
	// message is always generic so account existence is not revealed.
	KindAuthentication
	// KindForbidden: authenticated but not a member of the group.
	KindForbidden
	// KindNotFound: group, task, or other referenced entity absent.
	KindNotFound
	// KindConflict: uniqueness violation (email, display name, join code).
	KindConflict
	// KindDependency: backing store or notification sink unavailable.
	KindDependency
	// KindRateLimited: too many attempts from one client or account.
	KindRateLimited
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never exposed outside dev mode
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a user-correctable input error.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Authentication returns the generic credential/token error.
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Message: msg} }

// Forbidden returns a membership-gate error.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// NotFound returns an absent-entity error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict returns a uniqueness-violation error.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// RateLimited returns a too-many-attempts error.
func RateLimited(msg string) error { return &Error{Kind: KindRateLimited, Message: msg} }

// Dependency wraps a store or sink failure with a caller-safe message.
func Dependency(msg string, err error) error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or 0 when err carries no classification.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// MessageOf returns the caller-facing message for err. Unclassified
// errors get a generic message so internals never leak.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}

// HTTPStatus maps an error to its response status code. Unclassified
// errors are treated as dependency failures.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
