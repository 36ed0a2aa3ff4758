package template

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("template not found")
	ErrForbidden = errors.New("not authorized for this template")
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
