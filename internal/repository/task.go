// Package repository contains entity-specific data access over an injected
// data source. Strictly persistence plus typed queries; validation lives in
// the service layer.
package repository

import (
	"context"

	"github.com/rs/zerolog"

	"bizplan/internal/datasource"
	"bizplan/internal/datasource/kvblob"
	"bizplan/internal/kvstore"
	"bizplan/internal/model"
)

// TasksSlot is the key under which the whole task collection is stored.
const TasksSlot = "bizplan_tasks"

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	// GetAll returns every task.
	GetAll(ctx context.Context) ([]*model.Task, error)

	// GetByID returns the task with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Task, error)

	// Add persists a new task. Identity is assigned by the data source.
	Add(ctx context.Context, task *model.Task) (*model.Task, error)

	// Update merges the patch over the stored task.
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)

	// Delete removes the task, reporting whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ToggleCompletion flips the task's completed flag via a read-modify-
	// write cycle. Returns nil when no task has the given id.
	ToggleCompletion(ctx context.Context, id string) (*model.Task, error)
}

type taskRepository struct {
	source datasource.DataSource[*model.Task]
}

// NewTaskRepository binds a repository to the given data source.
func NewTaskRepository(source datasource.DataSource[*model.Task]) TaskRepository {
	return &taskRepository{source: source}
}

// NewLocalTaskRepository binds a repository to the local slot engine over the
// given store, using the fixed task slot.
func NewLocalTaskRepository(store kvstore.Store, log zerolog.Logger) TaskRepository {
	return NewTaskRepository(kvblob.New[*model.Task](store, TasksSlot, "task", log))
}

var _ TaskRepository = (*taskRepository)(nil)

func (r *taskRepository) GetAll(ctx context.Context) ([]*model.Task, error) {
	return r.source.GetAll(ctx)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	return r.source.GetByID(ctx, id)
}

func (r *taskRepository) Add(ctx context.Context, task *model.Task) (*model.Task, error) {
	return r.source.Create(ctx, task)
}

func (r *taskRepository) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	return r.source.Update(ctx, id, patch)
}

func (r *taskRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.source.Delete(ctx, id)
}

// ToggleCompletion re-reads the task before writing, but the flip is still a
// read-modify-write over the whole collection: two racing toggles resolve to
// whichever write lands last.
func (r *taskRepository) ToggleCompletion(ctx context.Context, id string) (*model.Task, error) {
	task, err := r.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	completed := !task.Completed
	return r.source.Update(ctx, id, model.TaskPatch{Completed: &completed})
}
