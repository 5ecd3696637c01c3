package models

import (
	"errors"
	"fmt"
)

// ErrValidation — общий признак ошибки валидации входных данных сущности.
var ErrValidation = errors.New("validation error")

// ValidationError описывает нарушенное поле.
// errors.Is(err, ErrValidation) == true для любой ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError создаёт ValidationError для одного поля.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
