package booking

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a missing trip, booking, bus or bus route.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// InvalidStateError reports an operation attempted against a trip or booking
// that is not in the required state.
type InvalidStateError struct {
	Resource string
	Msg      string
}

func (e InvalidStateError) Error() string {
	if e.Resource == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
}

// ConflictError reports seats already held by another booking, or a duplicate trip.
type ConflictError struct {
	Msg   string
	Seats []string
}

func (e ConflictError) Error() string {
	if len(e.Seats) > 0 {
		return fmt.Sprintf("seats %s are already booked", strings.Join(e.Seats, ", "))
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "conflict"
}

// ValidationError reports malformed input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target InvalidStateError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// ConflictSeats returns the unavailable seat labels carried by err, if any.
func ConflictSeats(err error) []string {
	var target ConflictError
	if errors.As(err, &target) {
		return target.Seats
	}
	return nil
}
