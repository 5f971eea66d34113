package bucketmap

import (
	"errors"
	"fmt"
)

// Error is a coded bucketmap error.
type Error struct {
	Code    string // e.g. "TSM-ARG-4000"
	Message string
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// ErrInvalidArgument is returned by New for a non-positive capacity.
var ErrInvalidArgument = &Error{Code: "TSM-ARG-4000", Message: "invalid argument"}

// ErrorCode extracts the code from err if it is an *Error.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
