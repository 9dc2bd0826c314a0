package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPropertyNotFound indicates the referenced listing does not exist.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrForbidden indicates the caller does not own the listing it tries to change.
	ErrForbidden = errors.New("not authorized to modify this property")
	// ErrEmailAlreadyExists is returned when signing up with a taken email.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a token refers to a deleted account.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports a single malformed or missing field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return ValidationError{Field: field, Message: message}
}
