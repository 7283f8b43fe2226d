package datasource

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is, so callers can
// test for absence without caring which backend produced the error.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports that no stored record has the requested id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// OperationError reports that a storage operation (read, write, encode)
// failed for a reason other than absence.
type OperationError struct {
	Entity string
	Op     string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation %s failed: %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("%s operation %s failed", e.Entity, e.Op)
}

func (e *OperationError) Unwrap() error { return e.Err }
