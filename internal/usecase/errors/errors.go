package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
)

// Job errors
var (
	ErrJobNotFound       = fmt.Errorf("job %w", ErrNotFound)
	ErrResultNotFound    = fmt.Errorf("result %w", ErrNotFound)
	ErrJobHasResult      = fmt.Errorf("job result %w", ErrAlreadyExists)
	ErrJobNotCompleted   = fmt.Errorf("job is not completed: %w", ErrConflict)
	ErrJobInvalidState   = fmt.Errorf("job is in a state that does not allow this operation: %w", ErrConflict)
	ErrInvalidResultJSON = fmt.Errorf("resultJson must be valid JSON: %w", ErrInvalidInput)
)

// StatusError attaches the job's current status name to a conflict
type StatusError struct {
	Err    error
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %s)", e.Err.Error(), e.Status)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
