package service

import (
	"context"

	"github.com/gautham-8087/Event-IQ/internal/assistant"
	approvalsservice "github.com/gautham-8087/Event-IQ/internal/approvals/service"
	schedulingservice "github.com/gautham-8087/Event-IQ/internal/scheduling/service"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/roles"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
	"github.com/gautham-8087/Event-IQ/pkg/timeutil"
)

// AssistantService executes decoded intents on behalf of an actor. It is a
// thin translation layer: availability questions go to the availability
// engine, bookings go through the same pipeline as the manual surface,
// with actors who cannot schedule directly routed into the review queue.
type AssistantService interface {
	Execute(ctx context.Context, actor model.Actor, intent any) (any, error)
}

type assistantService struct {
	cfg          *config.Config
	availability schedulingservice.AvailabilityService
	coordinator  schedulingservice.CoordinatorService
	workflow     approvalsservice.WorkflowService
}

func NewAssistantService(
	cfg *config.Config,
	availability schedulingservice.AvailabilityService,
	coordinator schedulingservice.CoordinatorService,
	workflow approvalsservice.WorkflowService,
) AssistantService {
	return &assistantService{
		cfg:          cfg,
		availability: availability,
		coordinator:  coordinator,
		workflow:     workflow,
	}
}

func (s *assistantService) Execute(ctx context.Context, actor model.Actor, intent any) (any, error) {
	switch it := intent.(type) {
	case *assistant.CheckResourcesIntent:
		return s.checkResources(ctx, it)
	case *assistant.BookEventIntent:
		return s.bookEvent(ctx, actor, it)
	default:
		return nil, apperrors.InvalidInput("unsupported intent type")
	}
}

func (s *assistantService) checkResources(ctx context.Context, intent *assistant.CheckResourcesIntent) (*model.AvailabilityResult, error) {
	start, end, err := timeutil.ParseWindow(intent.StartTime, intent.EndTime)
	if err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}
	return s.availability.CheckAvailability(ctx, start, end, intent.MinCapacity, sanitizer.NormalizeSpecialization(intent.Specialization))
}

func (s *assistantService) bookEvent(ctx context.Context, actor model.Actor, intent *assistant.BookEventIntent) (*model.BookingResult, error) {
	start, end, err := timeutil.ParseWindow(intent.StartTime, intent.EndTime)
	if err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	eventType := sanitizer.TrimAndNormalize(intent.EventType)
	purpose := sanitizer.TrimAndNormalize(intent.Purpose)
	if eventType == "" || purpose == "" {
		return nil, apperrors.Validation("event_type and purpose are required", nil)
	}

	draft := &model.EventDraft{
		Title:       eventType + " - " + purpose,
		Type:        eventType,
		StartTime:   start,
		EndTime:     end,
		Description: intent.Description,
		Creator:     actor.ID,
	}

	if roles.RequiresApproval(actor.Role) {
		request, err := s.workflow.Submit(ctx, draft, intent.ResourceIDs)
		if err != nil {
			return nil, err
		}
		s.cfg.Log.Info("Intent routed to approval queue",
			"actor", actor.ID,
			"request_id", request.ID,
		)
		return &model.BookingResult{
			RequestID: request.ID,
			Status:    model.BookingPendingApproval,
		}, nil
	}

	event, err := s.coordinator.Schedule(ctx, draft, intent.ResourceIDs)
	if err != nil {
		return nil, err
	}
	return &model.BookingResult{
		EventID: event.ID,
		Status:  model.BookingConfirmed,
	}, nil
}
