package errors

import (
	"fmt"
)

// SemError is the structured error type for semcore.
// It provides rich context for error handling, logging, and caller presentation.
type SemError struct {
	// Code is the unique error code (e.g., "ERR_401_INVALID_INPUT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *SemError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SemError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SemError.
func (e *SemError) Is(target error) bool {
	if t, ok := target.(*SemError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SemError) WithDetail(key, value string) *SemError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new SemError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SemError {
	return &SemError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new SemError with a formatted message.
func Newf(code string, format string, args ...any) *SemError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a SemError from an existing error.
// The error's message becomes the SemError message.
func Wrap(code string, err error) *SemError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SemError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SemError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SemError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SemError); ok {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a SemError.
// Returns empty string if not a SemError.
func GetCode(err error) string {
	if se, ok := err.(*SemError); ok {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SemError.
// Returns empty string if not a SemError.
func GetCategory(err error) Category {
	if se, ok := err.(*SemError); ok {
		return se.Category
	}
	return ""
}
