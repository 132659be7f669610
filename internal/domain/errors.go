package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrEventPast    = errors.New("event has already taken place")
)

// ValidationError reports the first input field that failed validation.
// Code is the machine-readable value returned to clients, e.g. "invalid_email".
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Code)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid returns a *ValidationError for the given code.
func Invalid(code string) error {
	return &ValidationError{Code: code}
}

// CapacityError is returned when an RSVP asks for more seats than the event has left.
type CapacityError struct {
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("over capacity: %d seat(s) remaining", e.Remaining)
}
