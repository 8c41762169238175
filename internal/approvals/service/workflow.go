package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	approvalerrors "github.com/gautham-8087/Event-IQ/internal/approvals/errors"
	approvalsrepo "github.com/gautham-8087/Event-IQ/internal/approvals/repository"
	schedulingerrors "github.com/gautham-8087/Event-IQ/internal/scheduling/errors"
	schedulingservice "github.com/gautham-8087/Event-IQ/internal/scheduling/service"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/validator"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/roles"
	"github.com/gautham-8087/Event-IQ/pkg/sanitizer"
)

// DefaultRejectionReason is recorded when a reviewer rejects without one.
const DefaultRejectionReason = "No reason provided"

// WorkflowService runs the review queues: booking proposals from actors who
// cannot schedule directly, and deletion requests for events they cannot
// remove. Submission never checks availability; approval re-runs the full
// booking pipeline, so a proposal that lost its slot stays pending.
type WorkflowService interface {
	Submit(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.PendingEventRequest, error)
	ListPending(ctx context.Context, actor model.Actor) ([]*model.PendingEventRequest, error)
	Approve(ctx context.Context, requestID string, reviewer model.Actor) (*model.Event, error)
	Reject(ctx context.Context, requestID string, reviewer model.Actor, reason string) error

	RequestDeletion(ctx context.Context, eventID string, actor model.Actor) (*model.DeletionRequest, error)
	ListPendingDeletions(ctx context.Context, actor model.Actor) ([]*model.DeletionRequest, error)
	ApproveDeletion(ctx context.Context, requestID string, reviewer model.Actor) error
	RejectDeletion(ctx context.Context, requestID string, reviewer model.Actor) error
}

// EventStore is the slice of the event repository the workflow needs to
// inspect and flag events under review.
type EventStore interface {
	FindByID(ctx context.Context, id string) (*model.Event, error)
	UpdateState(ctx context.Context, id string, state model.EventState) error
}

type workflowService struct {
	cfg          *config.Config
	pendingRepo  approvalsrepo.PendingRequestRepository
	deletionRepo approvalsrepo.DeletionRequestRepository
	eventRepo    EventStore
	coordinator  schedulingservice.CoordinatorService
	validator    *validator.EventValidator
}

func NewWorkflowService(
	cfg *config.Config,
	pendingRepo approvalsrepo.PendingRequestRepository,
	deletionRepo approvalsrepo.DeletionRequestRepository,
	eventRepo EventStore,
	coordinator schedulingservice.CoordinatorService,
	eventValidator *validator.EventValidator,
) WorkflowService {
	return &workflowService{
		cfg:          cfg,
		pendingRepo:  pendingRepo,
		deletionRepo: deletionRepo,
		eventRepo:    eventRepo,
		coordinator:  coordinator,
		validator:    eventValidator,
	}
}

func (s *workflowService) Submit(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.PendingEventRequest, error) {
	if draft == nil {
		return nil, apperrors.InvalidInput("event draft cannot be nil")
	}

	ids := sanitizer.NormalizeIDs(resourceIDs)
	request := &model.PendingEventRequest{
		ID:                   "REQ-" + uuid.NewString(),
		Title:                sanitizer.NormalizeTitle(draft.Title),
		Type:                 sanitizer.TrimAndNormalize(draft.Type),
		StartTime:            draft.StartTime.UTC(),
		EndTime:              draft.EndTime.UTC(),
		Description:          sanitizer.TrimAndNormalize(draft.Description),
		RequestedBy:          sanitizer.TrimAndNormalize(draft.Creator),
		RequestedResourceIDs: ids,
		Status:               model.RequestPending,
	}
	if err := s.validator.ValidateRequest(request); err != nil {
		return nil, apperrors.Validation("Event request validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	if err := s.pendingRepo.Insert(ctx, request); err != nil {
		return nil, apperrors.Internal("Failed to persist event request", err)
	}

	s.cfg.Log.Info("Event request submitted",
		"request_id", request.ID,
		"requested_by", request.RequestedBy,
		"resources", len(ids),
	)
	return request, nil
}

// ListPending shows reviewers the whole queue and everyone else only their
// own submissions.
func (s *workflowService) ListPending(ctx context.Context, actor model.Actor) ([]*model.PendingEventRequest, error) {
	var (
		requests []*model.PendingEventRequest
		err      error
	)
	if roles.CanApprove(actor.Role) {
		requests, err = s.pendingRepo.FindPending(ctx)
	} else {
		requests, err = s.pendingRepo.FindByRequester(ctx, actor.ID)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to list event requests", err)
	}
	return requests, nil
}

func (s *workflowService) Approve(ctx context.Context, requestID string, reviewer model.Actor) (*model.Event, error) {
	request, err := s.reviewableRequest(ctx, requestID, reviewer)
	if err != nil {
		return nil, err
	}

	// The booking pipeline re-validates availability; a conflict leaves the
	// request pending so it can be retried once the slot frees up.
	event, err := s.coordinator.Schedule(ctx, request.Draft(), request.RequestedResourceIDs)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			s.cfg.Log.Info("Approval deferred on conflict",
				"request_id", request.ID,
				"reviewer", reviewer.ID,
			)
		}
		return nil, err
	}

	if err := s.pendingRepo.MarkReviewed(ctx, request.ID, model.RequestApproved, reviewer.ID, ""); err != nil {
		// Lost a review race after booking; undo the booking rather than
		// leave an event no approved request accounts for.
		if removeErr := s.coordinator.Remove(ctx, event.ID, reviewer.ID); removeErr != nil {
			s.cfg.Log.Error("Failed to undo booking after review race",
				"request_id", request.ID,
				"event_id", event.ID,
				"error", removeErr,
			)
		}
		return nil, s.mapReviewErr(err, requestID)
	}

	s.cfg.Log.Info("Event request approved",
		"request_id", request.ID,
		"event_id", event.ID,
		"reviewer", reviewer.ID,
	)
	return event, nil
}

func (s *workflowService) Reject(ctx context.Context, requestID string, reviewer model.Actor, reason string) error {
	request, err := s.reviewableRequest(ctx, requestID, reviewer)
	if err != nil {
		return err
	}

	reason = sanitizer.TrimAndNormalize(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	if err := s.pendingRepo.MarkReviewed(ctx, request.ID, model.RequestRejected, reviewer.ID, reason); err != nil {
		return s.mapReviewErr(err, requestID)
	}

	s.cfg.Log.Info("Event request rejected",
		"request_id", request.ID,
		"reviewer", reviewer.ID,
		"reason", reason,
	)
	return nil
}

func (s *workflowService) reviewableRequest(ctx context.Context, requestID string, reviewer model.Actor) (*model.PendingEventRequest, error) {
	if !roles.CanApprove(reviewer.Role) {
		return nil, apperrors.Forbidden("Your role cannot review requests")
	}
	request, err := s.pendingRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, approvalerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Request", requestID)
		}
		return nil, apperrors.Internal("Failed to load request", err)
	}
	if request.Status.Terminal() {
		return nil, apperrors.Conflict("Request has already been reviewed")
	}
	return request, nil
}

func (s *workflowService) RequestDeletion(ctx context.Context, eventID string, actor model.Actor) (*model.DeletionRequest, error) {
	if !roles.CanRequestDeletion(actor.Role) {
		return nil, apperrors.Forbidden("Your role cannot request event deletion")
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, schedulingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", eventID)
		}
		return nil, apperrors.Internal("Failed to load event", err)
	}

	// Repeat requests coalesce onto the open one instead of stacking up.
	existing, err := s.deletionRepo.FindPendingByEventID(ctx, event.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, approvalerrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up deletion requests", err)
	}

	request := &model.DeletionRequest{
		ID:          "DEL-" + uuid.NewString(),
		EventID:     event.ID,
		RequestedBy: actor.ID,
		Status:      model.RequestPending,
	}
	if err := s.deletionRepo.Insert(ctx, request); err != nil {
		return nil, apperrors.Internal("Failed to persist deletion request", err)
	}
	if err := s.eventRepo.UpdateState(ctx, event.ID, model.StateDeletionRequested); err != nil {
		s.cfg.Log.Warn("Failed to flag event for deletion",
			"event_id", event.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Deletion requested",
		"request_id", request.ID,
		"event_id", event.ID,
		"requested_by", actor.ID,
	)
	return request, nil
}

func (s *workflowService) ListPendingDeletions(ctx context.Context, actor model.Actor) ([]*model.DeletionRequest, error) {
	if !roles.CanApprove(actor.Role) {
		return nil, apperrors.Forbidden("Your role cannot review deletion requests")
	}
	requests, err := s.deletionRepo.FindPending(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list deletion requests", err)
	}
	return requests, nil
}

func (s *workflowService) ApproveDeletion(ctx context.Context, requestID string, reviewer model.Actor) error {
	request, err := s.reviewableDeletion(ctx, requestID, reviewer)
	if err != nil {
		return err
	}

	if err := s.coordinator.Remove(ctx, request.EventID, reviewer.ID); err != nil {
		// The event being gone already satisfies the request.
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			return err
		}
	}
	if err := s.deletionRepo.MarkReviewed(ctx, request.ID, model.RequestApproved, reviewer.ID); err != nil {
		return s.mapReviewErr(err, requestID)
	}

	s.cfg.Log.Info("Deletion request approved",
		"request_id", request.ID,
		"event_id", request.EventID,
		"reviewer", reviewer.ID,
	)
	return nil
}

func (s *workflowService) RejectDeletion(ctx context.Context, requestID string, reviewer model.Actor) error {
	request, err := s.reviewableDeletion(ctx, requestID, reviewer)
	if err != nil {
		return err
	}

	if err := s.deletionRepo.MarkReviewed(ctx, request.ID, model.RequestRejected, reviewer.ID); err != nil {
		return s.mapReviewErr(err, requestID)
	}
	// The event goes back to plain active; it kept blocking throughout.
	if err := s.eventRepo.UpdateState(ctx, request.EventID, model.StateActive); err != nil {
		if !errors.Is(err, schedulingerrors.ErrNotFound) {
			return apperrors.Internal("Failed to restore event state", err)
		}
	}

	s.cfg.Log.Info("Deletion request rejected",
		"request_id", request.ID,
		"event_id", request.EventID,
		"reviewer", reviewer.ID,
	)
	return nil
}

func (s *workflowService) reviewableDeletion(ctx context.Context, requestID string, reviewer model.Actor) (*model.DeletionRequest, error) {
	if !roles.CanApprove(reviewer.Role) {
		return nil, apperrors.Forbidden("Your role cannot review deletion requests")
	}
	request, err := s.deletionRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, approvalerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Deletion request", requestID)
		}
		return nil, apperrors.Internal("Failed to load deletion request", err)
	}
	if request.Status.Terminal() {
		return nil, apperrors.Conflict("Deletion request has already been reviewed")
	}
	return request, nil
}

func (s *workflowService) mapReviewErr(err error, requestID string) error {
	if errors.Is(err, approvalerrors.ErrAlreadyReviewed) {
		return apperrors.Conflict("Request has already been reviewed")
	}
	return apperrors.Internal("Failed to update request "+requestID, err)
}
