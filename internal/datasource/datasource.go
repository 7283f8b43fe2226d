// Package datasource defines the minimal storage contract that decouples
// business logic from a specific backing store. Implementations live in
// subpackages (e.g., kvblob) inside this directory.
package datasource

import (
	"context"

	"bizplan/internal/model"
)

// Patch mutates an existing record in place. Implementations apply only the
// fields present in the partial update and never touch identity fields.
type Patch[T any] interface {
	Apply(T)
}

// DataSource is the capability set every storage backend must provide for
// one entity type. T is a pointer to an entity (e.g., *model.Task).
type DataSource[T model.Entity] interface {
	// GetAll returns every stored record. It fails with *OperationError
	// when the underlying store cannot be read.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the matching record, or the zero value of T when no
	// record has the given id. Absence is not an error.
	GetByID(ctx context.Context, id string) (T, error)

	// Create assigns a fresh unique id and the current timestamp to item,
	// persists it and returns the complete record.
	Create(ctx context.Context, item T) (T, error)

	// Update merges the patch over the stored record, preserving its
	// identity, persists and returns the result. It fails with
	// *NotFoundError when no record has the given id.
	Update(ctx context.Context, id string, patch Patch[T]) (T, error)

	// Delete removes the record and reports whether anything was removed.
	// A missing id is not an error; it reports false.
	Delete(ctx context.Context, id string) (bool, error)
}
