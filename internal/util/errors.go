// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
	ErrConflict     = errors.New("conflict")
	ErrStoreFailure = errors.New("store failure")
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEntry is returned by repositories when a unique index rejects a row.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// InvalidInputError names the first field that failed validation.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Field)
}

// Is lets errors.Is(err, ErrInvalidInput) match any field.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidInput builds an InvalidInputError for field.
func InvalidInput(field string) error {
	return &InvalidInputError{Field: field}
}

// InvalidField extracts the offending field name, if err carries one.
func InvalidField(err error) (string, bool) {
	var iv *InvalidInputError
	if errors.As(err, &iv) {
		return iv.Field, true
	}
	return "", false
}

// StoreError wraps a failure coming from the persistence layer.
// Its message is meant for logs only and must not reach API clients.
type StoreError struct {
	Op     string
	UserID string // Set when the failing operation ran on behalf of a known user
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStoreFailure) match every StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

// NewStoreError wraps err as a StoreError, leaving nil and sentinel errors untouched.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEntry) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// WithUser records userID on the StoreError in err's chain, if any.
func WithUser(err error, userID string) error {
	var se *StoreError
	if errors.As(err, &se) && se.UserID == "" {
		se.UserID = userID
	}
	return err
}

// StoreFailure returns the operation and user of the StoreError in err's chain.
func StoreFailure(err error) (op, userID string, ok bool) {
	var se *StoreError
	if !errors.As(err, &se) {
		return "", "", false
	}
	return se.Op, se.UserID, true
}

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
