// Package kvblob implements the data-source contract over a single slot of a
// key-value store. One entity type's entire collection lives serialized as a
// JSON array under one key, and every mutation rewrites the whole slot: the
// engine's unit of atomicity is the collection, which keeps writes simple but
// bounds capacity to what fits comfortably in one blob.
//
// There is no locking. Each mutation is read-collection, mutate in memory,
// write-collection; if two mutations interleave, the later write wins and
// silently discards what the earlier one changed. Callers needing per-record
// atomicity should substitute a different DataSource implementation rather
// than patch this engine.
package kvblob

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizplan/internal/datasource"
	"bizplan/internal/kvstore"
	"bizplan/internal/model"
)

// Source is a DataSource whose backing store is one slot of a kvstore.Store.
type Source[T model.Entity] struct {
	store  kvstore.Store
	key    string
	entity string
	log    zerolog.Logger

	newID func() string
	now   func() time.Time
}

// New binds a slot key and a human-readable entity label (used in error
// messages) to the given store.
func New[T model.Entity](store kvstore.Store, key, entity string, log zerolog.Logger) *Source[T] {
	return &Source[T]{
		store:  store,
		key:    key,
		entity: entity,
		log:    log,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ datasource.DataSource[*model.Task] = (*Source[*model.Task])(nil)

// GetAll reads and decodes the slot. A missing slot yields an empty
// collection. A slot that no longer decodes also yields an empty collection:
// the damage is logged and swallowed so a corrupt slot never blocks callers,
// at the known cost of silent data loss.
func (s *Source[T]) GetAll(ctx context.Context) ([]T, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, &datasource.OperationError{Entity: s.entity, Op: "getAll", Err: err}
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn().Err(err).Str("slot", s.key).Str("entity", s.entity).
			Msg("slot no longer decodes, treating as empty")
		return []T{}, nil
	}
	return items, nil
}

// GetByID returns the matching record, or nil when no record has the id.
func (s *Source[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.EntityID() == id {
			return item, nil
		}
	}
	return zero, nil
}

// Create stamps item with a fresh id and the current UTC time, appends it to
// the collection and rewrites the slot.
func (s *Source[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, err
	}

	item.Stamp(s.newID(), s.now())
	items = append(items, item)

	if err := s.write(ctx, "create", items); err != nil {
		return zero, err
	}
	return item, nil
}

// Update merges the patch over the stored record and rewrites the slot.
// Identity fields survive: patches cannot carry id or createdAt.
func (s *Source[T]) Update(ctx context.Context, id string, patch datasource.Patch[T]) (T, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, err
	}

	idx := -1
	for i, item := range items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, &datasource.NotFoundError{Entity: s.entity, ID: id}
	}

	patch.Apply(items[idx])

	if err := s.write(ctx, "update", items); err != nil {
		return zero, err
	}
	return items[idx], nil
}

// Delete removes the record with the given id. A missing id reports false
// without rewriting the slot.
func (s *Source[T]) Delete(ctx context.Context, id string) (bool, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := s.write(ctx, "delete", kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Source[T]) write(ctx context.Context, op string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return &datasource.OperationError{Entity: s.entity, Op: op, Err: err}
	}
	if err := s.store.Set(ctx, s.key, string(raw)); err != nil {
		return &datasource.OperationError{Entity: s.entity, Op: op, Err: err}
	}
	return nil
}
