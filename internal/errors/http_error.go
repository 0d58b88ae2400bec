package errors

import (
	stderrors "errors"
	"net/http"
)

// Machine-readable reasons carried alongside the HTTP status code, so
// callers can tell a booking conflict apart from a lifecycle violation
// even though both answer 409.
const (
	ReasonValidation        = "validation_error"
	ReasonConflict          = "conflict"
	ReasonInvalidTransition = "invalid_transition"
	ReasonNotFound          = "not_found"
	ReasonUnauthorized      = "unauthorized"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Reason  string
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, reason, message string) *HTTPError {
	return &HTTPError{Code: code, Reason: reason, Message: message}
}

// Validation: malformed or missing input. No state change occurred; the
// caller can correct the request and retry.
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, ReasonValidation, message)
}

// Conflict: the requested interval is no longer free. The caller should
// re-query availability and renegotiate dates; never retried automatically.
func Conflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, ReasonConflict, message)
}

// InvalidTransition: the booking lifecycle forbids the requested status change.
func InvalidTransition(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, ReasonInvalidTransition, message)
}

// NotFound: unknown variant or booking id.
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, ReasonNotFound, message)
}

// Unauthorized: missing or bad admin credentials.
func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, ReasonUnauthorized, message)
}

func hasReason(err error, reason string) bool {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Reason == reason
	}
	return false
}

func IsValidation(err error) bool        { return hasReason(err, ReasonValidation) }
func IsConflict(err error) bool          { return hasReason(err, ReasonConflict) }
func IsInvalidTransition(err error) bool { return hasReason(err, ReasonInvalidTransition) }
func IsNotFound(err error) bool          { return hasReason(err, ReasonNotFound) }
