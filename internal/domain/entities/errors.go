package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidTransition  = errors.New("invalid job status transition")
	ErrTransitionConflict = errors.New("job status changed concurrently")
	ErrInvalidInput       = errors.New("invalid input")
)

// ValidationError describes a rejected job submission
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// TransitionError is returned when a status change would move a job backwards
type TransitionError struct {
	From JobStatus
	To   JobStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
