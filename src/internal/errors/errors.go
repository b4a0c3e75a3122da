// Package errors provides domain-specific error types for ifselect.
//
// Errors carry a code so callers can tell caller-input mistakes
// (INVALID_FORMAT) from lookup failures (RESOLUTION_FAILED) and from
// failures to read the interface table at all (ENUMERATION_ERROR).
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeInvalidFormat indicates a malformed filter or endpoint string.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// ErrCodeResolution indicates a hostname or zone lookup produced nothing usable.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILED"

	// ErrCodeEnumeration indicates the OS interface table could not be read.
	ErrCodeEnumeration ErrorCode = "ENUMERATION_ERROR"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrInvalidFormat    = New(ErrCodeInvalidFormat, "invalid format")
	ErrResolutionFailed = New(ErrCodeResolution, "resolution failed")
	ErrEnumeration      = New(ErrCodeEnumeration, "interface enumeration failed")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// NewInvalidFormatError creates a new caller-input format error.
func NewInvalidFormatError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidFormat, message, cause)
}

// NewResolutionError creates a new hostname/zone resolution error.
func NewResolutionError(message string, cause error) *Error {
	return Wrap(ErrCodeResolution, message, cause)
}

// NewEnumerationError creates a new interface enumeration error.
func NewEnumerationError(message string, cause error) *Error {
	return Wrap(ErrCodeEnumeration, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
