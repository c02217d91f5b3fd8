package jobsift

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be shared across the application and map cleanly
// onto pipeline outcomes: a quota rejection is EQUOTA, a chunk that no
// provider can accept is ETOOLARGE, a provider without credentials is
// EUNAVAILABLE, and so on.
const (
	EINVALID     = "invalid"     // validation or configuration error
	ENOTFOUND    = "not_found"   // entity (or page content) does not exist
	EUNAVAILABLE = "unavailable" // no provider can serve the request
	EQUOTA       = "quota"       // daily call ceiling reached
	ERATELIMIT   = "rate_limit"  // provider rate limit, transient
	ETOOLARGE    = "too_large"   // input exceeds provider context window
	EINTERNAL    = "internal"    // internal error
)

// Error represents an application-specific error. Errors can be
// unwrapped to inspect a wrapped cause.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string

	// Wrapped error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jobsift error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("jobsift error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error { return e.Err }

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL. A nil error returns an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapErrorf is like Errorf but wraps an underlying cause so callers
// can still unwrap it.
func WrapErrorf(err error, code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
