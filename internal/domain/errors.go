package domain

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("access forbidden: you don't own this resource")
	ErrInvalidID          = errors.New("invalid id")
	ErrNoCurrentPlan      = errors.New("no current workout plan")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidFileType    = errors.New("invalid file type")
)

// ValidationError reports a rejected request field using a dotted path
// such as "weeks.0.workouts.1.exercises.0.name".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
