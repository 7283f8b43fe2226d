package service

import (
	"context"
	"strings"
	"time"

	"bizplan/internal/datasource"
	"bizplan/internal/model"
	"bizplan/internal/repository"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Identity (id, createdAt) is always store-assigned.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// TaskService defines the use cases for handling tasks. It is the only
// layer UI code should call.
type TaskService interface {
	// List returns every task.
	List(ctx context.Context) ([]*model.Task, error)

	// ListFiltered returns tasks filtered by completion status; a nil
	// filter returns everything.
	ListFiltered(ctx context.Context, completed *bool) ([]*model.Task, error)

	// Get returns a single task by its id.
	Get(ctx context.Context, id string) (*model.Task, error)

	// Create validates and persists a new task.
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)

	// Update validates the changed fields and merges them over the task.
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)

	// Delete removes the task by id.
	Delete(ctx context.Context, id string) error

	// ToggleCompletion flips the task's completed flag.
	ToggleCompletion(ctx context.Context, id string) (*model.Task, error)
}

// taskService is a concrete implementation of TaskService over a repository.
type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService constructs a new TaskService.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) List(ctx context.Context) ([]*model.Task, error) {
	tasks, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, normalize("list tasks", err)
	}
	return tasks, nil
}

func (s *taskService) ListFiltered(ctx context.Context, completed *bool) ([]*model.Task, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return tasks, nil
	}

	filtered := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == *completed {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, normalize("get task", err)
	}
	if task == nil {
		return nil, &datasource.NotFoundError{Entity: "task", ID: id}
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
	}
	created, err := s.repo.Add(ctx, task)
	if err != nil {
		return nil, normalize("create task", err)
	}
	return created, nil
}

// Update fetches the task first so absence fails before any validation or
// write happens, then validates only the fields being changed.
func (s *taskService) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, normalize("update task", err)
	}
	if existing == nil {
		return nil, &datasource.NotFoundError{Entity: "task", ID: id}
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrTitleRequired
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, normalize("update task", err)
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return normalize("delete task", err)
	}
	if !removed {
		return &datasource.NotFoundError{Entity: "task", ID: id}
	}
	return nil
}

func (s *taskService) ToggleCompletion(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	task, err := s.repo.ToggleCompletion(ctx, id)
	if err != nil {
		return nil, normalize("toggle task", err)
	}
	if task == nil {
		return nil, &datasource.NotFoundError{Entity: "task", ID: id}
	}
	return task, nil
}
