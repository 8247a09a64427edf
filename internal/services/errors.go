package services

import (
	"errors"
	"fmt"

	"ivr/internal/repositories"
)

var (
	// ErrValidation marks input the service refuses before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks operations targeting a record that does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrAlreadyExists marks a create that would break a uniqueness rule.
	ErrAlreadyExists = repositories.ErrDuplicate
	// ErrUnavailable marks an operation whose backing collaborator is not configured.
	ErrUnavailable = errors.New("service unavailable")

	// ErrCartNotFound marks a cart operation on a user who has no stored cart.
	ErrCartNotFound = fmt.Errorf("cart %w", ErrNotFound)
	// ErrItemNotFound marks a line operation on an itemId the cart does not hold.
	ErrItemNotFound = fmt.Errorf("item in cart %w", ErrNotFound)
)

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
