package service

import (
	"context"
	"strings"

	"github.com/gautham-8087/Event-IQ/internal/catalog/repository"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
)

// CatalogService lists catalog resources with plain attribute filters.
// Results keep catalog insertion order.
type CatalogService interface {
	List(ctx context.Context, resourceType model.ResourceType, filter model.ResourceFilter) ([]model.Resource, error)
	ListAll(ctx context.Context) ([]model.Resource, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Resource, error)
}

type catalogService struct {
	repo repository.ResourceRepository
	cfg  *config.Config
}

func NewCatalogService(repo repository.ResourceRepository, cfg *config.Config) CatalogService {
	return &catalogService{repo: repo, cfg: cfg}
}

func (s *catalogService) List(ctx context.Context, resourceType model.ResourceType, filter model.ResourceFilter) ([]model.Resource, error) {
	if !resourceType.Valid() {
		return nil, apperrors.InvalidInput("resource type must be one of Room, Instructor, Equipment")
	}

	resources, err := s.repo.FindByType(ctx, resourceType)
	if err != nil {
		return nil, apperrors.Internal("Failed to list resources", err)
	}

	return filterResources(resources, filter), nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]model.Resource, error) {
	resources, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list resources", err)
	}
	return resources, nil
}

// GetByIDs resolves ids to catalog resources. Every id must exist; a
// missing one yields a not-found error naming it.
func (s *catalogService) GetByIDs(ctx context.Context, ids []string) ([]model.Resource, error) {
	ids = sanitizer.NormalizeIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.InvalidInput("at least one resource id is required")
	}

	resources, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve resources", err)
	}

	if len(resources) != len(ids) {
		found := make(map[string]bool, len(resources))
		for _, r := range resources {
			found[r.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperrors.NotFoundWithID("Resource", id)
			}
		}
	}

	return resources, nil
}

func filterResources(resources []model.Resource, filter model.ResourceFilter) []model.Resource {
	spec := sanitizer.NormalizeSpecialization(filter.Specialization)

	out := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if filter.MinCapacity > 0 && r.Capacity < filter.MinCapacity {
			continue
		}
		// Loose substring heuristic, not a taxonomy match.
		if spec != "" && !strings.Contains(strings.ToLower(r.Specialization), spec) {
			continue
		}
		out = append(out, r)
	}
	return out
}
