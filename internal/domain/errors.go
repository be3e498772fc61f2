package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates that a dataset source could not be
	// fetched or parsed. Loading treats this as a zero-record contribution.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRenderFailed indicates that the formula renderer rejected its input.
	// Rendering degrades to the literal source text on this error.
	ErrRenderFailed = errors.New("render failed")
)

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about a not found entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// SourceError provides details about a dataset source that failed to load.
type SourceError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("dataset source %s: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// NewSourceError creates a new SourceError.
func NewSourceError(source string, cause error) *SourceError {
	return &SourceError{
		Source: source,
		Cause:  cause,
	}
}
