package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a post or comment identifier that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a create request with a missing or empty required field.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("field %s is invalid", e.Field)
	}
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
