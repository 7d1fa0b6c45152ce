package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Driver errors
	ErrDriverUnknown    ErrorCode = "DRIVER_UNKNOWN"
	ErrConnectionFailed ErrorCode = "CONNECTION_FAILED"

	// Evaluation errors
	ErrQueryFailed ErrorCode = "QUERY_FAILED"
	ErrStreamRead  ErrorCode = "STREAM_READ"

	// Output errors. BROKEN_PIPE is not a failure: the downstream
	// consumer closed its end (e.g. `rql ... | head`) and the run
	// terminates cleanly with exit code 0.
	ErrBrokenPipe  ErrorCode = "BROKEN_PIPE"
	ErrOutputWrite ErrorCode = "OUTPUT_WRITE"
)

// RqlError represents a structured error with code and details
type RqlError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RqlError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RqlError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RqlError) Is(target error) bool {
	var targetErr *RqlError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RqlError with the given code and message
func New(code ErrorCode, message string) *RqlError {
	return &RqlError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RqlError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RqlError {
	return &RqlError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RqlError
func Wrap(err error, code ErrorCode, message string) *RqlError {
	if err == nil {
		return nil
	}
	return &RqlError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RqlError {
	if err == nil {
		return nil
	}
	return &RqlError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RqlError) WithDetail(key string, value interface{}) *RqlError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rqlErr *RqlError
	if errors.As(err, &rqlErr) {
		return rqlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RqlError
func GetErrorCode(err error) ErrorCode {
	var rqlErr *RqlError
	if errors.As(err, &rqlErr) {
		return rqlErr.Code
	}
	return ErrUnknown
}
