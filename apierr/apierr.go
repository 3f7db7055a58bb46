package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one entry of the closed error taxonomy.
type Code string

const (
	// CodeInvalidInput marks caller mistakes: empty or oversize text,
	// unrecognized language codes. Never retried.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeRateLimited marks an admission denial on any tier. Retryable
	// after the indicated delay.
	CodeRateLimited Code = "RATE_LIMITED"

	// CodeUpstreamUnavailable marks a non-2xx upstream response other
	// than auth or rate-limit failures. Retryable with backoff.
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"

	// CodeAuthConfiguration marks missing or rejected upstream
	// credentials. An operator error, not a transient failure.
	CodeAuthConfiguration Code = "AUTH_CONFIGURATION"

	// CodeNetworkOffline marks a transport failure before any response
	// was received, including detected offline state. Retryable once
	// connectivity returns.
	CodeNetworkOffline Code = "NETWORK_OFFLINE"

	// CodeInternal marks uncategorized failures. Logged server-side,
	// surfaced generically.
	CodeInternal Code = "INTERNAL_ERROR"
)

// HTTPStatus returns the HTTP status carried by responses with this code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUpstreamUnavailable:
		return http.StatusBadGateway
	case CodeNetworkOffline:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether a caller may reasonably retry an error with
// this code.
func (c Code) Retryable() bool {
	switch c {
	case CodeRateLimited, CodeUpstreamUnavailable, CodeNetworkOffline:
		return true
	default:
		return false
	}
}

// String returns the wire form of the code.
func (c Code) String() string { return string(c) }

// Error is the structured error exchanged across the service boundary.
// Its JSON form is the error body of both endpoints.
type Error struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Status     int    `json:"status"`
	RetryAfter int    `json:"retryAfter,omitempty"`

	cause error
}

// New returns an Error with the status derived from code.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Status: code.HTTPStatus()}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns an Error that records err as its cause. The cause is kept
// for errors.Is/As chains and logging; it is never serialized.
func Wrap(code Code, message string, err error) *Error {
	e := New(code, message)
	e.cause = err
	return e
}

// RateLimited returns a RATE_LIMITED error carrying the retry delay in
// seconds.
func RateLimited(message string, retryAfter int) *Error {
	e := New(CodeRateLimited, message)
	e.RetryAfter = retryAfter
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the recorded cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is matches errors by taxonomy code, so errors.Is(err, apierr.New(code, ""))
// style checks work without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Retryable reports whether the error's code is retryable.
func (e *Error) Retryable() bool { return e.Code.Retryable() }

// FromError coerces any error into a taxonomy Error. A nil err returns
// nil. Errors already in the taxonomy pass through unchanged; anything
// else becomes INTERNAL_ERROR with a generic message.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeInternal, "internal service error", err)
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
