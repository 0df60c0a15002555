// Package apperrors defines the error kinds surfaced by the registry's
// service layer. Handlers translate a kind into the protocol status code;
// services raise errors at the point of detection and never retry.
package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// NotFoundError indicates the entity does not exist for the given tenant/id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AlreadyExistsError indicates a uniqueness constraint violation.
type AlreadyExistsError struct {
	Message string
}

func (e *AlreadyExistsError) Error() string {
	return e.Message
}

// ValidationError indicates a semantic validation failure such as an
// out-of-enum value, a non-positive ordering or a blocked delete.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewNotFound creates a NotFoundError with a formatted message
func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// NewAlreadyExists creates an AlreadyExistsError with a formatted message
func NewAlreadyExists(format string, args ...interface{}) error {
	return &AlreadyExistsError{Message: fmt.Sprintf(format, args...)}
}

// NewValidation creates a ValidationError with a formatted message
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// FromDatabase reclassifies storage errors that escaped the pre-checks.
// A duplicate-key failure from a racing insert surfaces as AlreadyExists
// rather than an opaque server fault; a missing record surfaces as NotFound.
func FromDatabase(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewAlreadyExists("%s already exists", entity)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound("%s not found", entity)
	}
	return err
}
