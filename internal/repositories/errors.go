package repositories

import "errors"

var (
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (user email, cart user) is already taken.
	ErrDuplicate = errors.New("duplicate key")
)
