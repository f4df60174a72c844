// Package apperr defines the error taxonomy shared by every module.
//
// Errors cross module boundaries over the mono request-reply bus as plain
// strings, so each error renders as "<kind>: <message>" and KindOf can recover
// the kind from either a typed error or its transported text.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an error for transport and HTTP mapping.
type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindAuthentication Kind = "authentication_error"
	KindUnauthorized   Kind = "unauthorized"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal_error"
)

// kinds is ordered so that the more specific prefixes are matched first.
var kinds = []Kind{
	KindValidation,
	KindAuthentication,
	KindUnauthorized,
	KindConflict,
	KindNotFound,
	KindInternal,
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is reports whether target is an *Error with the same kind and message, so
// sentinel errors keep matching after being copied.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation reports missing or malformed input.
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// Authentication reports rejected credentials.
func Authentication(msg string) *Error { return newError(KindAuthentication, msg) }

// Unauthorized reports a missing or invalid session.
func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg) }

// Conflict reports a uniqueness violation.
func Conflict(msg string) *Error { return newError(KindConflict, msg) }

// NotFound reports an absent (or not owned) resource.
func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

// Internal reports an unexpected failure.
func Internal(msg string) *Error { return newError(KindInternal, msg) }

// KindOf returns the kind of err. Errors that are neither an *Error nor carry
// a recognizable "<kind>: " marker in their text are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	msg := err.Error()
	for _, k := range kinds {
		if strings.Contains(msg, string(k)+": ") {
			return k
		}
	}
	return KindInternal
}

// MessageOf returns the client-facing message carried by err. Internal errors
// always yield a generic message so storage details never leak.
func MessageOf(err error) string {
	kind := KindOf(err)
	if kind == KindInternal || kind == "" {
		return "Internal server error"
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	msg := err.Error()
	marker := string(kind) + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// HTTPStatus maps a kind to its response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindAuthentication, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
