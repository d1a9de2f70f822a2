// Package common holds the error taxonomy shared by the services and the
// HTTP layer. Callers match these values with errors.Is.
package common

import "errors"

var (
	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation error")

	// ErrAlreadyExists marks input that collides with a stored natural key.
	// It is a validation failure as well.
	ErrAlreadyExists = errors.Join(ErrValidation, errors.New("already exists"))

	// ErrAuthentication marks a missing, invalid or expired credential.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound marks an unknown key.
	ErrNotFound = errors.New("not found")
)

// Detail wraps kind with a human-readable message that is safe to show to
// the caller.
func Detail(kind error, msg string) error {
	return &detailError{kind: kind, msg: msg}
}

type detailError struct {
	kind error
	msg  string
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.kind }

// Message returns the caller-facing message carried by err, or fallback when
// err carries none.
func Message(err error, fallback string) string {
	var d *detailError
	if errors.As(err, &d) {
		return d.msg
	}
	return fallback
}
