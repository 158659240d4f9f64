// Package apperr defines the error taxonomy shared by the service and HTTP
// layers. Service operations return these as values; nothing panics across
// the service boundary.
package apperr

import "fmt"

// Code classifies a failure for callers.
type Code string

const (
	// CodeUnauthenticated means no caller identity was available. Surfaced
	// to users as "please sign in"; never retried automatically.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeInvalidArgument is a caller error (empty id, bad category, ...).
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeBackend is any persistence-layer failure (network, permission,
	// quota). Opaque: the backend message is passed through, not classified.
	CodeBackend Code = "BACKEND_FAILURE"
)

// Error is a structured failure carrying a taxonomy code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Unauthenticated builds a CodeUnauthenticated error.
func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// InvalidArgument builds a CodeInvalidArgument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

// Backend wraps a persistence error, keeping its message text intact.
func Backend(op string, cause error) *Error {
	return &Error{Code: CodeBackend, Message: op, Cause: cause}
}

// CodeOf extracts the taxonomy code from err, walking wrapped causes.
// Unclassified errors report CodeBackend's absence as empty string.
func CodeOf(err error) Code {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			return ae.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ""
}
