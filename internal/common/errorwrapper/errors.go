package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid caller input
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedLanguage indicates a language tag with no pattern tables
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrContentUnavailable indicates a document version whose text could not be obtained
	ErrContentUnavailable = errors.New("content unavailable")
	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrServiceUnavailable indicates a collaborator is not available
	ErrServiceUnavailable = errors.New("service unavailable")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// CollaboratorError represents a failure of an external collaborator call.
// It carries enough context to decide between fallback and propagation.
type CollaboratorError struct {
	Collaborator string
	Operation    string
	Wrapped      error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator '%s' failed during '%s': %v", e.Collaborator, e.Operation, e.Wrapped)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Wrapped
}

// NewCollaboratorError creates a new collaborator error
func NewCollaboratorError(collaborator, operation string, wrapped error) *CollaboratorError {
	return &CollaboratorError{
		Collaborator: collaborator,
		Operation:    operation,
		Wrapped:      wrapped,
	}
}
