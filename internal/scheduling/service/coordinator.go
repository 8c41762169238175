package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gautham-8087/Event-IQ/internal/archive"
	catalogservice "github.com/gautham-8087/Event-IQ/internal/catalog/service"
	schedulingerrors "github.com/gautham-8087/Event-IQ/internal/scheduling/errors"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/repository"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/validator"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/roles"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
)

// CoordinatorService owns the booking transaction: an event and its
// resource allocations commit together or not at all. Schedule re-validates
// availability inside the transaction, so a success means no allocated
// blocking event overlapped the window at commit time.
type CoordinatorService interface {
	Schedule(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.Event, error)
	Delete(ctx context.Context, eventID string, actor model.Actor) error
	Remove(ctx context.Context, eventID, actorID string) error
	GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error)
}

type coordinatorService struct {
	cfg          *config.Config
	eventRepo    repository.EventRepository
	allocRepo    repository.AllocationRepository
	lockRepo     repository.AllocationLockRepository
	catalog      catalogservice.CatalogService
	availability AvailabilityService
	validator    *validator.EventValidator
	archiveLog   archive.Log
}

func NewCoordinatorService(
	cfg *config.Config,
	eventRepo repository.EventRepository,
	allocRepo repository.AllocationRepository,
	lockRepo repository.AllocationLockRepository,
	catalog catalogservice.CatalogService,
	availability AvailabilityService,
	eventValidator *validator.EventValidator,
	archiveLog archive.Log,
) CoordinatorService {
	return &coordinatorService{
		cfg:          cfg,
		eventRepo:    eventRepo,
		allocRepo:    allocRepo,
		lockRepo:     lockRepo,
		catalog:      catalog,
		availability: availability,
		validator:    eventValidator,
		archiveLog:   archiveLog,
	}
}

func (s *coordinatorService) Schedule(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.Event, error) {
	if draft == nil {
		return nil, apperrors.InvalidInput("event draft cannot be nil")
	}

	draft.Title = sanitizer.NormalizeTitle(draft.Title)
	draft.Type = sanitizer.TrimAndNormalize(draft.Type)
	draft.Description = sanitizer.TrimAndNormalize(draft.Description)
	draft.Creator = sanitizer.TrimAndNormalize(draft.Creator)

	if err := s.validator.Validate(draft); err != nil {
		return nil, apperrors.Validation("Event validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	ids := sanitizer.NormalizeIDs(resourceIDs)
	if len(ids) == 0 {
		return nil, apperrors.InvalidInput("at least one resource ID is required")
	}
	if _, err := s.catalog.GetByIDs(ctx, ids); err != nil {
		return nil, err
	}

	// Locks are taken in sorted order so two bookings contending over an
	// overlapping resource set cannot deadlock each other.
	sort.Strings(ids)
	acquired, err := s.acquireLocks(ctx, ids)
	defer s.releaseLocks(ids[:acquired])
	if err != nil {
		return nil, err
	}

	var event *model.Event
	txErr := s.eventRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, resourceID := range ids {
			free, err := s.availability.IsAvailable(sessCtx, resourceID, draft.StartTime, draft.EndTime)
			if err != nil {
				return err
			}
			if !free {
				return apperrors.ConflictWithResource(
					fmt.Sprintf("Resource %s is already booked during the requested time", resourceID),
					resourceID,
				)
			}
		}

		event = &model.Event{
			ID:          "EVT-" + uuid.NewString(),
			Title:       draft.Title,
			Type:        draft.Type,
			StartTime:   draft.StartTime.UTC(),
			EndTime:     draft.EndTime.UTC(),
			Description: draft.Description,
			Creator:     draft.Creator,
			State:       model.StateActive,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.eventRepo.Insert(sessCtx, event); err != nil {
			return apperrors.Internal("Failed to persist event", err)
		}

		for _, resourceID := range ids {
			allocation := &model.Allocation{
				ID:         "A-" + uuid.NewString(),
				EventID:    event.ID,
				ResourceID: resourceID,
			}
			if err := s.allocRepo.Insert(sessCtx, allocation); err != nil {
				return apperrors.Internal("Failed to persist allocation", err)
			}
		}
		return nil
	})
	if txErr != nil {
		s.cfg.Log.Warn("Booking rejected",
			"creator", draft.Creator,
			"resources", ids,
			"error", txErr,
		)
		return nil, txErr
	}

	s.appendArchive(ctx, archive.Record{
		Action:      archive.ActionScheduled,
		Event:       event,
		ResourceIDs: ids,
		Actor:       draft.Creator,
		At:          time.Now().UTC(),
	})

	s.cfg.Log.Info("Event scheduled",
		"event_id", event.ID,
		"creator", event.Creator,
		"resources", len(ids),
	)
	return event, nil
}

// acquireLocks takes short-lived advisory locks, one per resource, and
// returns how many were acquired so the caller can release exactly those.
func (s *coordinatorService) acquireLocks(ctx context.Context, resourceIDs []string) (int, error) {
	now := time.Now().UTC()
	for i, resourceID := range resourceIDs {
		lock := &model.AllocationLock{
			ID:        resourceID,
			ExpiresAt: now.Add(s.cfg.AllocationLockTTL),
			CreatedAt: now,
		}
		if err := s.lockRepo.Create(ctx, lock); err != nil {
			if errors.Is(err, schedulingerrors.ErrLockHeld) {
				return i, apperrors.ConflictWithResource(
					fmt.Sprintf("Resource %s is being booked by another request", resourceID),
					resourceID,
				)
			}
			return i, apperrors.Internal("Failed to acquire allocation lock", err)
		}
	}
	return len(resourceIDs), nil
}

func (s *coordinatorService) releaseLocks(resourceIDs []string) {
	// Release runs after the request context may be done; the TTL index is
	// the fallback for locks this pass cannot delete.
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	for _, resourceID := range resourceIDs {
		if err := s.lockRepo.Delete(ctx, resourceID); err != nil {
			s.cfg.Log.Warn("Failed to release allocation lock",
				"resource_id", resourceID,
				"error", err,
			)
		}
	}
}

// Delete removes an event on behalf of an actor, enforcing role rules:
// admins delete anything, teachers delete their own events, students never
// delete directly.
func (s *coordinatorService) Delete(ctx context.Context, eventID string, actor model.Actor) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !roles.CanDelete(actor.Role, event.Creator, actor.ID) {
		return apperrors.Forbidden("You are not allowed to delete this event")
	}
	return s.remove(ctx, event, actor.ID)
}

// Remove deletes an event without a role check. It backs flows that have
// already been authorized, such as an approved deletion request.
func (s *coordinatorService) Remove(ctx context.Context, eventID, actorID string) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	return s.remove(ctx, event, actorID)
}

func (s *coordinatorService) remove(ctx context.Context, event *model.Event, actorID string) error {
	allocations, err := s.allocRepo.FindByEventID(ctx, event.ID)
	if err != nil {
		return apperrors.Internal("Failed to load event allocations", err)
	}
	resourceIDs := make([]string, 0, len(allocations))
	for _, alloc := range allocations {
		resourceIDs = append(resourceIDs, alloc.ResourceID)
	}

	txErr := s.eventRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.allocRepo.DeleteByEventID(sessCtx, event.ID); err != nil {
			return apperrors.Internal("Failed to delete allocations", err)
		}
		if err := s.eventRepo.Delete(sessCtx, event.ID); err != nil {
			if errors.Is(err, schedulingerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Event", event.ID)
			}
			return apperrors.Internal("Failed to delete event", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	archived := *event
	archived.State = model.StateArchived
	s.appendArchive(ctx, archive.Record{
		Action:      archive.ActionArchived,
		Event:       &archived,
		ResourceIDs: resourceIDs,
		Actor:       actorID,
		At:          time.Now().UTC(),
	})

	s.cfg.Log.Info("Event removed",
		"event_id", event.ID,
		"actor", actorID,
		"freed_resources", len(resourceIDs),
	)
	return nil
}

func (s *coordinatorService) GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.allocRepo.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load event allocations", err)
	}
	resourceIDs := make([]string, 0, len(allocations))
	for _, alloc := range allocations {
		resourceIDs = append(resourceIDs, alloc.ResourceID)
	}

	resources := []model.Resource{}
	if len(resourceIDs) > 0 {
		resources, err = s.catalog.GetByIDs(ctx, resourceIDs)
		if err != nil {
			return nil, err
		}
	}

	return &model.EventDetails{Event: event, Resources: resources}, nil
}

func (s *coordinatorService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	events, err := s.eventRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list events", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count events", err)
	}
	return events, total, nil
}

func (s *coordinatorService) getEvent(ctx context.Context, eventID string) (*model.Event, error) {
	if eventID == "" {
		return nil, apperrors.InvalidInput("event ID cannot be empty")
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, schedulingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", eventID)
		}
		return nil, apperrors.Internal("Failed to load event", err)
	}
	return event, nil
}

func (s *coordinatorService) appendArchive(ctx context.Context, record archive.Record) {
	if err := s.archiveLog.Append(ctx, record); err != nil {
		s.cfg.Log.Warn("Failed to append archive record",
			"action", record.Action,
			"event_id", record.Event.ID,
			"error", err,
		)
	}
}
