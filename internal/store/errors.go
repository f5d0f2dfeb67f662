package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when a vote, save or lookup target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the acting author is not the
	// authenticated caller, or does not own the record being changed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConstraintViolation is returned when a uniqueness constraint kept
	// failing after retries. Callers may retry the request.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidInput wraps validation failures of store arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists is returned when a username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")
	// ErrAccountNotLinked is returned when an OAuth sign-in matches the email
	// of an account that belongs to another sign-in method.
	ErrAccountNotLinked = errors.New("account exists with a different sign-in method")
)

// errRowChanged signals that a row read during an upsert changed under us and
// the transaction should be run again.
var errRowChanged = errors.New("row changed concurrently")

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %s", ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
