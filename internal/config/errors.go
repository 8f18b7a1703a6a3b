package config

import "fmt"

// ErrorCategory is a stable machine-readable tag for programmatic handling.
type ErrorCategory string

const (
	// CategoryNotFound indicates the configuration file was not found.
	CategoryNotFound ErrorCategory = "config_not_found"
	// CategoryInvalid indicates the configuration file has invalid syntax or shape.
	CategoryInvalid ErrorCategory = "config_invalid"
	// CategoryValidation indicates the configuration is well-formed but
	// semantically invalid.
	CategoryValidation ErrorCategory = "config_validation"
)

// Error represents a configuration-related error with remediation hints.
type Error struct {
	// Category is the stable error category tag.
	Category ErrorCategory
	// Message is the human-readable cause.
	Message string
	// Field is the configuration field that caused the error, if any.
	Field string
	// Suggestions are remediation hints shown to the user.
	Suggestions []string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		if e.Cause != nil {
			return fmt.Sprintf("configuration error [%s]: %s: %v", e.Field, e.Message, e.Cause)
		}
		return fmt.Sprintf("configuration error [%s]: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a configuration error.
func NewError(category ErrorCategory, message string) *Error {
	return &Error{Category: category, Message: message}
}

// NewFieldError creates a configuration error scoped to one field.
func NewFieldError(category ErrorCategory, field, message string, suggestions ...string) *Error {
	return &Error{Category: category, Field: field, Message: message, Suggestions: suggestions}
}

// NewErrorWithCause creates a configuration error wrapping an underlying error.
func NewErrorWithCause(category ErrorCategory, message string, cause error) *Error {
	return &Error{Category: category, Message: message, Cause: cause}
}
