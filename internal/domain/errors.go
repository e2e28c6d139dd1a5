package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports caller input that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrMissingValues is returned when jobName or jobNumber is absent.
var ErrMissingValues = &ValidationError{Message: "Please provide all values"}

// IsValidationError checks if err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
