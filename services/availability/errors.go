package availability

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSlotNotFound     = errors.New("availability slot not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrForbidden        = errors.New("not authorized for this profile")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrDateProtected    = errors.New("date has active bookings and cannot be overwritten")
)

// ValidationError reports caller-correctable input problems.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps persistence failures.
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
