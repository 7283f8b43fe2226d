package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"bizplan/internal/datasource"
	"bizplan/internal/datasource/kvblob"
	"bizplan/internal/kvstore"
	"bizplan/internal/model"
)

// ResourcesSlot is the key under which the whole resource collection is stored.
const ResourcesSlot = "bizplan_resources"

// ResourceRepository defines data access for resources.
type ResourceRepository interface {
	// GetAll returns every resource.
	GetAll(ctx context.Context) ([]*model.Resource, error)

	// GetByID returns the resource with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Resource, error)

	// Add persists a new resource. Identity is assigned by the data source.
	Add(ctx context.Context, res *model.Resource) (*model.Resource, error)

	// Update merges the patch over the stored resource and bumps updatedAt.
	Update(ctx context.Context, id string, patch model.ResourcePatch) (*model.Resource, error)

	// Delete removes the resource, reporting whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// FindByTags returns resources having at least one tag equal to any of
	// the query tags (OR across both sides). An empty query returns all.
	FindByTags(ctx context.Context, tags []string) ([]*model.Resource, error)
}

type resourceRepository struct {
	source datasource.DataSource[*model.Resource]
	now    func() time.Time
}

// NewResourceRepository binds a repository to the given data source.
func NewResourceRepository(source datasource.DataSource[*model.Resource]) ResourceRepository {
	return &resourceRepository{
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewLocalResourceRepository binds a repository to the local slot engine over
// the given store, using the fixed resource slot.
func NewLocalResourceRepository(store kvstore.Store, log zerolog.Logger) ResourceRepository {
	return NewResourceRepository(kvblob.New[*model.Resource](store, ResourcesSlot, "resource", log))
}

var _ ResourceRepository = (*resourceRepository)(nil)

func (r *resourceRepository) GetAll(ctx context.Context) ([]*model.Resource, error) {
	return r.source.GetAll(ctx)
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	return r.source.GetByID(ctx, id)
}

func (r *resourceRepository) Add(ctx context.Context, res *model.Resource) (*model.Resource, error) {
	return r.source.Create(ctx, res)
}

// Update stamps the patch with the current time so every mutation bumps the
// resource's updatedAt.
func (r *resourceRepository) Update(ctx context.Context, id string, patch model.ResourcePatch) (*model.Resource, error) {
	now := r.now()
	patch.UpdatedAt = &now
	return r.source.Update(ctx, id, patch)
}

func (r *resourceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.source.Delete(ctx, id)
}

func (r *resourceRepository) FindByTags(ctx context.Context, tags []string) ([]*model.Resource, error) {
	resources, err := r.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return resources, nil
	}

	matched := make([]*model.Resource, 0, len(resources))
	for _, res := range resources {
		if hasAnyTag(res.Tags, tags) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
