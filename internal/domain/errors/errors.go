package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers any referenced entity that does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateActiveSubscription guards the one-active-per-pair
	// invariant. The caller should offer an upgrade instead.
	ErrDuplicateActiveSubscription = errors.New("an active subscription to this creator already exists")

	// ErrNotActive is returned when a lifecycle transition requires an
	// active subscription and finds a terminal one.
	ErrNotActive = errors.New("subscription is not active")

	// ErrTierCreatorMismatch is returned when a tier does not belong to
	// the creator named by the operation.
	ErrTierCreatorMismatch = errors.New("tier does not belong to this creator")
)

// ValidationError reports bad input values. Callers branch on it with
// errors.As and surface it without retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
