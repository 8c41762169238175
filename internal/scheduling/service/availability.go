package service

import (
	"context"
	"time"

	catalogservice "github.com/gautham-8087/Event-IQ/internal/catalog/service"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/repository"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/timeutil"
)

// AvailabilityService answers which resources are free for a time window.
// A resource is free iff no allocation ties it to a blocking event whose
// half-open window overlaps the requested one.
type AvailabilityService interface {
	IsAvailable(ctx context.Context, resourceID string, start, end time.Time) (bool, error)
	FindAvailable(ctx context.Context, resourceType model.ResourceType, start, end time.Time, filter model.ResourceFilter) ([]model.Resource, error)
	CheckAvailability(ctx context.Context, start, end time.Time, minCapacity int, specialization string) (*model.AvailabilityResult, error)
}

type availabilityService struct {
	catalog   catalogservice.CatalogService
	eventRepo repository.EventRepository
	allocRepo repository.AllocationRepository
	cfg       *config.Config
}

func NewAvailabilityService(
	catalog catalogservice.CatalogService,
	eventRepo repository.EventRepository,
	allocRepo repository.AllocationRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		catalog:   catalog,
		eventRepo: eventRepo,
		allocRepo: allocRepo,
		cfg:       cfg,
	}
}

func (s *availabilityService) IsAvailable(ctx context.Context, resourceID string, start, end time.Time) (bool, error) {
	if resourceID == "" {
		return false, apperrors.InvalidInput("resource ID cannot be empty")
	}
	if !end.After(start) {
		return false, apperrors.Validation("end time must be after start time", nil)
	}

	allocations, err := s.allocRepo.FindByResourceID(ctx, resourceID)
	if err != nil {
		return false, apperrors.Internal("Failed to load allocations", err)
	}
	if len(allocations) == 0 {
		return true, nil
	}

	eventIDs := make([]string, 0, len(allocations))
	for _, alloc := range allocations {
		eventIDs = append(eventIDs, alloc.EventID)
	}

	events, err := s.eventRepo.FindByIDs(ctx, eventIDs)
	if err != nil {
		return false, apperrors.Internal("Failed to load allocated events", err)
	}
	byID := make(map[string]*model.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	for _, alloc := range allocations {
		event, ok := byID[alloc.EventID]
		if !ok {
			// Dangling edge left by an out-of-band delete; it holds nothing.
			continue
		}
		if !event.State.Blocks() {
			continue
		}
		if timeutil.Overlaps(event.StartTime, event.EndTime, start, end) {
			return false, nil
		}
	}

	return true, nil
}

func (s *availabilityService) FindAvailable(ctx context.Context, resourceType model.ResourceType, start, end time.Time, filter model.ResourceFilter) ([]model.Resource, error) {
	if !end.After(start) {
		return nil, apperrors.Validation("end time must be after start time", nil)
	}

	candidates, err := s.catalog.List(ctx, resourceType, filter)
	if err != nil {
		return nil, err
	}

	available := make([]model.Resource, 0, len(candidates))
	for _, resource := range candidates {
		free, err := s.IsAvailable(ctx, resource.ID, start, end)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, resource)
		}
	}

	s.cfg.Log.Debug("Availability query completed",
		"resource_type", resourceType,
		"candidates", len(candidates),
		"available", len(available),
	)
	return available, nil
}

// CheckAvailability surveys all three resource types for one window, the
// shape both the manual booking surface and the assistant consume. Each
// list is capped at the configured result limit.
func (s *availabilityService) CheckAvailability(ctx context.Context, start, end time.Time, minCapacity int, specialization string) (*model.AvailabilityResult, error) {
	rooms, err := s.FindAvailable(ctx, model.ResourceRoom, start, end, model.ResourceFilter{MinCapacity: minCapacity})
	if err != nil {
		return nil, err
	}

	instructors, err := s.FindAvailable(ctx, model.ResourceInstructor, start, end, model.ResourceFilter{Specialization: specialization})
	if err != nil {
		return nil, err
	}

	equipment, err := s.FindAvailable(ctx, model.ResourceEquipment, start, end, model.ResourceFilter{})
	if err != nil {
		return nil, err
	}

	limit := s.cfg.AvailabilityLimit
	return &model.AvailabilityResult{
		Rooms:       capResults(rooms, limit),
		Instructors: capResults(instructors, limit),
		Equipment:   capResults(equipment, limit),
	}, nil
}

func capResults(resources []model.Resource, limit int) []model.Resource {
	if limit > 0 && len(resources) > limit {
		return resources[:limit]
	}
	return resources
}
