package service

import (
	"context"
	"strings"

	"bizplan/internal/datasource"
	"bizplan/internal/model"
	"bizplan/internal/repository"
)

// CreateResourceInput carries the caller-supplied fields for a new resource.
// The resource type is derived from the MIME type at ingestion, never
// supplied directly.
type CreateResourceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	Size        int64    `json:"size"`
	Mimetype    string   `json:"mimetype"`
	Tags        []string `json:"tags"`
}

// ResourceService defines the use cases for handling resources.
type ResourceService interface {
	// List returns every resource.
	List(ctx context.Context) ([]*model.Resource, error)

	// Get returns a single resource by its id.
	Get(ctx context.Context, id string) (*model.Resource, error)

	// Create validates, normalizes tags, derives the type from the MIME
	// type, and persists a new resource.
	Create(ctx context.Context, in CreateResourceInput) (*model.Resource, error)

	// Update validates the changed fields and merges them over the resource.
	Update(ctx context.Context, id string, patch model.ResourcePatch) (*model.Resource, error)

	// Delete removes the resource by id.
	Delete(ctx context.Context, id string) error

	// FindByTags returns resources matching at least one of the query tags.
	FindByTags(ctx context.Context, tags []string) ([]*model.Resource, error)

	// FindByType returns resources of the given type.
	FindByType(ctx context.Context, t model.ResourceType) ([]*model.Resource, error)
}

// resourceService is a concrete implementation of ResourceService over a
// repository.
type resourceService struct {
	repo repository.ResourceRepository
}

// NewResourceService constructs a new ResourceService.
func NewResourceService(repo repository.ResourceRepository) ResourceService {
	return &resourceService{repo: repo}
}

func (s *resourceService) List(ctx context.Context) ([]*model.Resource, error) {
	resources, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, normalize("list resources", err)
	}
	return resources, nil
}

func (s *resourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, normalize("get resource", err)
	}
	if res == nil {
		return nil, &datasource.NotFoundError{Entity: "resource", ID: id}
	}
	return res, nil
}

func (s *resourceService) Create(ctx context.Context, in CreateResourceInput) (*model.Resource, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if in.Content == "" {
		return nil, ErrContentRequired
	}
	if in.Size <= 0 {
		return nil, ErrSizeInvalid
	}

	res := &model.Resource{
		Name:        in.Name,
		Type:        model.TypeFromMIME(in.Mimetype),
		Description: in.Description,
		Content:     in.Content,
		Size:        in.Size,
		Mimetype:    in.Mimetype,
		Tags:        model.NormalizeTags(in.Tags),
	}
	created, err := s.repo.Add(ctx, res)
	if err != nil {
		return nil, normalize("create resource", err)
	}
	return created, nil
}

// Update fetches the resource first so absence fails before any validation
// or write happens, then validates only the fields being changed. A present
// tag set is re-normalized before persisting.
func (s *resourceService) Update(ctx context.Context, id string, patch model.ResourcePatch) (*model.Resource, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, normalize("update resource", err)
	}
	if existing == nil {
		return nil, &datasource.NotFoundError{Entity: "resource", ID: id}
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, ErrNameRequired
	}
	if patch.Tags != nil {
		patch.Tags = model.NormalizeTags(patch.Tags)
	}
	if patch.Mimetype != nil {
		derived := model.TypeFromMIME(*patch.Mimetype)
		patch.Type = &derived
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, normalize("update resource", err)
	}
	return updated, nil
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return normalize("delete resource", err)
	}
	if !removed {
		return &datasource.NotFoundError{Entity: "resource", ID: id}
	}
	return nil
}

func (s *resourceService) FindByTags(ctx context.Context, tags []string) ([]*model.Resource, error) {
	resources, err := s.repo.FindByTags(ctx, model.NormalizeTags(tags))
	if err != nil {
		return nil, normalize("find resources by tags", err)
	}
	return resources, nil
}

func (s *resourceService) FindByType(ctx context.Context, t model.ResourceType) ([]*model.Resource, error) {
	resources, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, normalize("find resources by type", err)
	}

	matched := make([]*model.Resource, 0, len(resources))
	for _, res := range resources {
		if res.Type == t {
			matched = append(matched, res)
		}
	}
	return matched, nil
}
