package service

import (
	"errors"
	"fmt"

	"bizplan/internal/datasource"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrTitleRequired   = errors.New("task title must not be empty")
	ErrNameRequired    = errors.New("resource name must not be empty")
	ErrContentRequired = errors.New("resource content must not be empty")
	ErrSizeInvalid     = errors.New("resource size must be positive")
)

// IsValidationError reports whether err is one of the service-level
// validation errors, as opposed to a storage error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrIDRequired) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrContentRequired) ||
		errors.Is(err, ErrSizeInvalid)
}

// normalize is the service boundary's error policy: recognized storage
// errors pass through unchanged so callers keep one taxonomy; anything else
// is wrapped with a stable operation message.
func normalize(op string, err error) error {
	var notFound *datasource.NotFoundError
	var operation *datasource.OperationError
	if errors.As(err, &notFound) || errors.As(err, &operation) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
