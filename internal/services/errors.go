// internal/services/errors.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/utils"
)

// Error kinds. Handlers map each kind to one HTTP status.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a classified service failure. Key is an i18n message key.
type Error struct {
	Kind    error
	Key     string
	Details []utils.ValidationError
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Key
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, key string) error {
	return &Error{Kind: kind, Key: key}
}

// invalidInput wraps a validator failure with its per-field details.
func invalidInput(err error, key string) error {
	return &Error{
		Kind:    ErrValidation,
		Key:     key,
		Details: utils.GetValidationErrors(err),
	}
}

func validate(req interface{}, key string) error {
	if err := utils.ValidateStruct(req); err != nil {
		return invalidInput(err, key)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
