package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"   // validation failure: bad enum value, unparseable date, malformed id
	ENOTFOUND = "not_found" // unknown report or county
	ESTORAGE  = "storage"   // store unavailable or write failure
	EINTERNAL = "internal"  // anything else
)

// Error carries a machine-readable code alongside the failing operation and
// a message safe to show to callers.
type Error struct {
	Code    string
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates an Error with a formatted message.
func Errorf(code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapStorage wraps a backend failure as a storage error.
func WrapStorage(err error, op, message string) *Error {
	return &Error{Code: ESTORAGE, Op: op, Message: message, Err: err}
}

// NotFound creates a not-found error for the named resource.
func NotFound(op, resource, id string) *Error {
	return &Error{Code: ENOTFOUND, Op: op, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// ErrorCode returns the code of err, or EINTERNAL for uncoded errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns a caller-safe message for err. Internal and storage
// errors get a generic message so backend details never leak.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL && e.Code != ESTORAGE {
		return e.Message
	}
	return "An internal error occurred. Please try again later."
}
