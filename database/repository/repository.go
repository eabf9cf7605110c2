package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict is returned when a compare-and-swap write finds the
	// trip at a different version than the one it was read at.
	ErrVersionConflict = errors.New("version conflict")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrBookingStateChanged is returned when a booking no longer satisfies the
	// status filter of a conditional update.
	ErrBookingStateChanged = errors.New("booking state changed")
)
