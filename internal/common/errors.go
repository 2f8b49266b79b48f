// Package common defines the errors and small helpers shared by the store,
// the persistence layer and the shell. Callers should use errors.Is and
// errors.As to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// Store-level errors.
	ErrNotFound = errors.New("user not found")

	// Authentication errors. The message never says which credential was wrong.
	ErrAuthentication = errors.New("invalid email or password")
)

// ValidationReason identifies why an input was rejected.
type ValidationReason string

const (
	ReasonInvalidEmail   ValidationReason = "invalid email"
	ReasonDuplicateEmail ValidationReason = "email already registered"
	ReasonEmptyName      ValidationReason = "name is required"
	ReasonEmptyPassword  ValidationReason = "password is required"
)

// ValidationError is returned when user input breaks a record invariant.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string { return string(e.Reason) }

// Is lets errors.Is match on the reason alone, e.g.
//
//	errors.Is(err, &common.ValidationError{Reason: common.ReasonDuplicateEmail})
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// StorageError reports a failure to read or write the backing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries the given validation reason.
func IsValidation(err error, reason ValidationReason) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return ve.Reason == reason
}
