// Package common holds sentinel errors shared by the auth and ads packages.
// Callers should match them with errors.Is / errors.As.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Upload errors never abort an ad submission.
	ErrUpload = errors.New("upload failed")
)

// ValidationError reports a missing or invalid form field. The message is
// safe to show to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
