package errors

import "github.com/pkg/errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "last price must be positive".
	Message string

	// Code (required) is one of the ErrorCode values.
	// E.g. "malformed_tick".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Err (optional) is the underlying cause.
	Err error
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// WithCause attaches the underlying error that produced the details.
func (e *ErrorDetails) WithCause(err error) *ErrorDetails {
	e.Err = err
	return e
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ErrorDetails) Unwrap() error {
	return e.Err
}

// ErrorCodeEquals checks whether a given `error`, or any error it wraps, has a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	return CodeOf(err) == string(code)
}

// CodeOf returns the code of the first ErrorDetails found in the error chain.
func CodeOf(err error) string {
	var details *ErrorDetails
	if errors.As(err, &details) {
		return details.Code
	}
	return ""
}
