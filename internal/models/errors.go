package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — запись с таким id отсутствует
	ErrNotFound = errors.New("not found")
	// ErrConflict — операция нарушает ограничение уникальности
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized — неверный логин или пароль
	ErrUnauthorized = errors.New("invalid username or password")
)

// ValidationError is returned for malformed payloads, out-of-range values,
// unknown references and rejected import documents.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
