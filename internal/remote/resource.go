package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"bizplan/internal/model"
	"bizplan/internal/service"
)

// ResourceService implements service.ResourceService over the wire.
type ResourceService struct {
	c *Client
}

// NewResourceService constructs a remote ResourceService on the given client.
func NewResourceService(c *Client) *ResourceService {
	return &ResourceService{c: c}
}

var _ service.ResourceService = (*ResourceService)(nil)

func (s *ResourceService) List(ctx context.Context) ([]*model.Resource, error) {
	return call[[]*model.Resource](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/resources",
		entity: "resource", op: "getAll",
	})
}

func (s *ResourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, service.ErrIDRequired
	}
	return call[*model.Resource](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/resources/" + url.PathEscape(id),
		entity: "resource", op: "getById", id: id,
	})
}

func (s *ResourceService) Create(ctx context.Context, in service.CreateResourceInput) (*model.Resource, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, service.ErrNameRequired
	}
	if in.Content == "" {
		return nil, service.ErrContentRequired
	}
	if in.Size <= 0 {
		return nil, service.ErrSizeInvalid
	}
	in.Tags = model.NormalizeTags(in.Tags)
	return call[*model.Resource](ctx, s.c, callParams{
		method: http.MethodPost, path: "/api/resources", body: in,
		entity: "resource", op: "create",
	})
}

func (s *ResourceService) Update(ctx context.Context, id string, patch model.ResourcePatch) (*model.Resource, error) {
	if id == "" {
		return nil, service.ErrIDRequired
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, service.ErrNameRequired
	}
	if patch.Tags != nil {
		patch.Tags = model.NormalizeTags(patch.Tags)
	}
	return call[*model.Resource](ctx, s.c, callParams{
		method: http.MethodPut, path: "/api/resources/" + url.PathEscape(id), body: patch,
		entity: "resource", op: "update", id: id,
	})
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return service.ErrIDRequired
	}
	_, err := call[struct{}](ctx, s.c, callParams{
		method: http.MethodDelete, path: "/api/resources/" + url.PathEscape(id),
		entity: "resource", op: "delete", id: id,
	})
	return err
}

func (s *ResourceService) FindByTags(ctx context.Context, tags []string) ([]*model.Resource, error) {
	q := url.Values{}
	if normalized := model.NormalizeTags(tags); len(normalized) > 0 {
		q.Set("tags", strings.Join(normalized, ","))
	}
	return call[[]*model.Resource](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/resources/search", query: q,
		entity: "resource", op: "findByTags",
	})
}

func (s *ResourceService) FindByType(ctx context.Context, t model.ResourceType) ([]*model.Resource, error) {
	return call[[]*model.Resource](ctx, s.c, callParams{
		method: http.MethodGet, path: "/api/resources/type/" + url.PathEscape(string(t)),
		entity: "resource", op: "findByType",
	})
}
