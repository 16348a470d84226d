package models

import "fmt"

// ValidationError is returned by entity constructors and mutators when the
// input breaks an entity rule or a status transition is illegal.
type ValidationError struct {
	Message string
	// Details maps a field name to the issues found with it. May be nil.
	Details map[string][]string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func newFieldError(field, format string, args ...any) *ValidationError {
	msg := fmt.Sprintf(format, args...)
	return &ValidationError{
		Message: msg,
		Details: map[string][]string{field: {msg}},
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}
