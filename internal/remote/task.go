package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bizplan/internal/model"
	"bizplan/internal/service"
)

// TaskService implements service.TaskService over the wire. Validation rules
// match the local variant exactly, so swapping backends never changes which
// inputs are rejected.
type TaskService struct {
	c *Client
}

// NewTaskService constructs a remote TaskService on the given client.
func NewTaskService(c *Client) *TaskService {
	return &TaskService{c: c}
}

var _ service.TaskService = (*TaskService)(nil)

func (s *TaskService) List(ctx context.Context) ([]*model.Task, error) {
	return call[[]*model.Task](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/tasks",
		entity: "task", op: "getAll",
	})
}

func (s *TaskService) ListFiltered(ctx context.Context, completed *bool) ([]*model.Task, error) {
	q := url.Values{}
	if completed != nil {
		q.Set("completed", strconv.FormatBool(*completed))
	}
	return call[[]*model.Task](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/tasks", query: q,
		entity: "task", op: "getAll",
	})
}

func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, service.ErrIDRequired
	}
	return call[*model.Task](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/tasks/" + url.PathEscape(id),
		entity: "task", op: "getById", id: id,
	})
}

func (s *TaskService) Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, service.ErrTitleRequired
	}
	return call[*model.Task](ctx, s.c, callParams{
		method: http.MethodPost, path: "/api/tasks", body: in,
		entity: "task", op: "create",
	})
}

func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	if id == "" {
		return nil, service.ErrIDRequired
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, service.ErrTitleRequired
	}
	return call[*model.Task](ctx, s.c, callParams{
		method: http.MethodPut, path: "/api/tasks/" + url.PathEscape(id), body: patch,
		entity: "task", op: "update", id: id,
	})
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return service.ErrIDRequired
	}
	_, err := call[struct{}](ctx, s.c, callParams{
		method: http.MethodDelete, path: "/api/tasks/" + url.PathEscape(id),
		entity: "task", op: "delete", id: id,
	})
	return err
}

func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, service.ErrIDRequired
	}
	return call[*model.Task](ctx, s.c, callParams{
		method: http.MethodPatch, path: "/api/tasks/" + url.PathEscape(id) + "/toggle",
		entity: "task", op: "toggle", id: id,
	})
}
