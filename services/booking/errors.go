package booking

import (
	"errors"
	"fmt"

	"bookhive/models"
)

// Domain errors surfaced to the API boundary. Each maps to a distinct
// user-facing failure; none of them indicates a broken system.
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrServiceNotFound   = errors.New("service not found in profile")
	ErrSlotNotFound      = errors.New("no availability slot matches the requested time")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("not authorized for this booking")
	ErrSlotExpired       = errors.New("the slot's start time has already passed")
	ErrDuplicateBooking  = errors.New("an active booking for this slot already exists")
	ErrSlotFull          = errors.New("slot capacity exhausted")
	ErrNoChangeRequested = errors.New("reschedule target matches the current booking")

	errKeyspaceExhausted = errors.New("booking reference keyspace exhausted")
)

// ValidationError reports caller-correctable input problems.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports a status change outside the transition table.
// The booking is never mutated when this is returned.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// StorageError wraps unrecoverable persistence failures so callers can tell
// "you can't do that" apart from "the system is broken".
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return StorageError{Op: op, Err: err}
}
