package service

import (
	"context"
	"testing"
	"time"

	approvalerrors "github.com/gautham-8087/Event-IQ/internal/approvals/errors"
	schedulingerrors "github.com/gautham-8087/Event-IQ/internal/scheduling/errors"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/validator"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/model"
	"github.com/gautham-8087/Event-IQ/pkg/roles"
)

type fakePendingStore struct {
	requests map[string]*model.PendingEventRequest
}

func (s *fakePendingStore) Insert(_ context.Context, request *model.PendingEventRequest) error {
	s.requests[request.ID] = request
	return nil
}

func (s *fakePendingStore) FindByID(_ context.Context, id string) (*model.PendingEventRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, approvalerrors.ErrNotFound
	}
	return req, nil
}

func (s *fakePendingStore) FindPending(_ context.Context) ([]*model.PendingEventRequest, error) {
	var out []*model.PendingEventRequest
	for _, req := range s.requests {
		if req.Status == model.RequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *fakePendingStore) FindByRequester(_ context.Context, requesterID string) ([]*model.PendingEventRequest, error) {
	var out []*model.PendingEventRequest
	for _, req := range s.requests {
		if req.RequestedBy == requesterID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *fakePendingStore) MarkReviewed(_ context.Context, id string, status model.RequestStatus, reviewerID, reason string) error {
	req, ok := s.requests[id]
	if !ok || req.Status != model.RequestPending {
		return approvalerrors.ErrAlreadyReviewed
	}
	now := time.Now().UTC()
	req.Status = status
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	if reason != "" {
		req.RejectionReason = reason
	}
	return nil
}

type fakeDeletionStore struct {
	requests map[string]*model.DeletionRequest
}

func (s *fakeDeletionStore) Insert(_ context.Context, request *model.DeletionRequest) error {
	s.requests[request.ID] = request
	return nil
}

func (s *fakeDeletionStore) FindByID(_ context.Context, id string) (*model.DeletionRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, approvalerrors.ErrNotFound
	}
	return req, nil
}

func (s *fakeDeletionStore) FindPending(_ context.Context) ([]*model.DeletionRequest, error) {
	var out []*model.DeletionRequest
	for _, req := range s.requests {
		if req.Status == model.RequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *fakeDeletionStore) FindPendingByEventID(_ context.Context, eventID string) (*model.DeletionRequest, error) {
	for _, req := range s.requests {
		if req.EventID == eventID && req.Status == model.RequestPending {
			return req, nil
		}
	}
	return nil, approvalerrors.ErrNotFound
}

func (s *fakeDeletionStore) MarkReviewed(_ context.Context, id string, status model.RequestStatus, reviewerID string) error {
	req, ok := s.requests[id]
	if !ok || req.Status != model.RequestPending {
		return approvalerrors.ErrAlreadyReviewed
	}
	now := time.Now().UTC()
	req.Status = status
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	return nil
}

type fakeCoordinator struct {
	scheduleFunc func(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.Event, error)
	removed      []string
	removeErr    error
}

func (c *fakeCoordinator) Schedule(ctx context.Context, draft *model.EventDraft, resourceIDs []string) (*model.Event, error) {
	if c.scheduleFunc != nil {
		return c.scheduleFunc(ctx, draft, resourceIDs)
	}
	return &model.Event{ID: "EVT-new", Creator: draft.Creator, State: model.StateActive}, nil
}

func (c *fakeCoordinator) Delete(ctx context.Context, eventID string, actor model.Actor) error {
	return nil
}

func (c *fakeCoordinator) Remove(ctx context.Context, eventID, actorID string) error {
	if c.removeErr != nil {
		return c.removeErr
	}
	c.removed = append(c.removed, eventID)
	return nil
}

func (c *fakeCoordinator) GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error) {
	return nil, apperrors.NotFoundWithID("Event", eventID)
}

func (c *fakeCoordinator) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	return nil, 0, nil
}

type fakeEventStore struct {
	events map[string]*model.Event
}

func (s *fakeEventStore) FindByID(_ context.Context, id string) (*model.Event, error) {
	ev, ok := s.events[id]
	if !ok {
		return nil, schedulingerrors.ErrNotFound
	}
	return ev, nil
}

func (s *fakeEventStore) UpdateState(_ context.Context, id string, state model.EventState) error {
	ev, ok := s.events[id]
	if !ok {
		return schedulingerrors.ErrNotFound
	}
	ev.State = state
	return nil
}

type workflowFixture struct {
	svc         WorkflowService
	pending     *fakePendingStore
	deletions   *fakeDeletionStore
	events      *fakeEventStore
	coordinator *fakeCoordinator
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
	f := &workflowFixture{
		pending:     &fakePendingStore{requests: make(map[string]*model.PendingEventRequest)},
		deletions:   &fakeDeletionStore{requests: make(map[string]*model.DeletionRequest)},
		events:      &fakeEventStore{events: make(map[string]*model.Event)},
		coordinator: &fakeCoordinator{},
	}
	f.svc = NewWorkflowService(
		cfg,
		f.pending,
		f.deletions,
		f.events,
		f.coordinator,
		validator.NewEventValidator(cfg.Log),
	)
	return f
}

var (
	admin   = model.Actor{ID: "admin-1", Role: roles.Admin}
	student = model.Actor{ID: "student-1", Role: roles.Student}
)

func studentDraft() *model.EventDraft {
	return &model.EventDraft{
		Title:     "Study Group",
		Type:      "meeting",
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
		Creator:   "student-1",
	}
}

func TestSubmit_CreatesPendingWithoutAvailabilityCheck(t *testing.T) {
	f := newWorkflowFixture(t)
	f.coordinator.scheduleFunc = func(context.Context, *model.EventDraft, []string) (*model.Event, error) {
		t.Fatal("submission must not touch the booking pipeline")
		return nil, nil
	}

	request, err := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != model.RequestPending {
		t.Errorf("expected pending status, got %s", request.Status)
	}
	if len(f.pending.requests) != 1 {
		t.Errorf("expected 1 stored request, got %d", len(f.pending.requests))
	}
}

func TestSubmit_RejectsInvalidDraft(t *testing.T) {
	f := newWorkflowFixture(t)

	bad := studentDraft()
	bad.EndTime = bad.StartTime
	_, err := f.svc.Submit(context.Background(), bad, []string{"R1"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(f.pending.requests) != 0 {
		t.Error("invalid request must not be stored")
	}
}

func TestApprove_SchedulesAndMarksApproved(t *testing.T) {
	f := newWorkflowFixture(t)
	request, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})

	event, err := f.svc.Approve(context.Background(), request.ID, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil || event.ID != "EVT-new" {
		t.Fatalf("unexpected event: %+v", event)
	}
	stored := f.pending.requests[request.ID]
	if stored.Status != model.RequestApproved || stored.ReviewedBy != "admin-1" {
		t.Errorf("request not marked approved: %+v", stored)
	}
}

func TestApprove_ConflictKeepsRequestPending(t *testing.T) {
	f := newWorkflowFixture(t)
	request, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})
	f.coordinator.scheduleFunc = func(context.Context, *model.EventDraft, []string) (*model.Event, error) {
		return nil, apperrors.ConflictWithResource("Resource R1 is already booked during the requested time", "R1")
	}

	_, err := f.svc.Approve(context.Background(), request.ID, admin)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if f.pending.requests[request.ID].Status != model.RequestPending {
		t.Error("request must stay pending after a conflicting approval")
	}
}

func TestApprove_RequiresReviewerRole(t *testing.T) {
	f := newWorkflowFixture(t)
	request, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})

	_, err := f.svc.Approve(context.Background(), request.ID, student)
	if !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestApprove_ReviewedRequestConflicts(t *testing.T) {
	f := newWorkflowFixture(t)
	request, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})
	if err := f.svc.Reject(context.Background(), request.ID, admin, "double booked"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := f.svc.Approve(context.Background(), request.ID, admin)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT for re-review, got %v", err)
	}
	if f.pending.requests[request.ID].Status != model.RequestRejected {
		t.Error("terminal status must be immutable")
	}
}

func TestReject_DefaultsReason(t *testing.T) {
	f := newWorkflowFixture(t)
	request, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})

	if err := f.svc.Reject(context.Background(), request.ID, admin, "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := f.pending.requests[request.ID]
	if stored.RejectionReason != DefaultRejectionReason {
		t.Errorf("expected default reason, got %q", stored.RejectionReason)
	}
}

func TestRequestDeletion_IsIdempotent(t *testing.T) {
	f := newWorkflowFixture(t)
	f.events.events["EVT-1"] = &model.Event{ID: "EVT-1", Creator: "teacher-2", State: model.StateActive}

	actor := model.Actor{ID: "teacher-1", Role: roles.Teacher}
	first, err := f.svc.RequestDeletion(context.Background(), "EVT-1", actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.svc.RequestDeletion(context.Background(), "EVT-1", actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("repeat request must coalesce: %s vs %s", first.ID, second.ID)
	}
	if len(f.deletions.requests) != 1 {
		t.Errorf("expected 1 deletion request, got %d", len(f.deletions.requests))
	}
	if f.events.events["EVT-1"].State != model.StateDeletionRequested {
		t.Errorf("event must be flagged, got %s", f.events.events["EVT-1"].State)
	}
}

func TestRequestDeletion_UnknownEvent(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.RequestDeletion(context.Background(), "EVT-missing", admin)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestApproveDeletion_RemovesEvent(t *testing.T) {
	f := newWorkflowFixture(t)
	f.events.events["EVT-1"] = &model.Event{ID: "EVT-1", Creator: "teacher-2", State: model.StateActive}
	request, _ := f.svc.RequestDeletion(context.Background(), "EVT-1", admin)

	if err := f.svc.ApproveDeletion(context.Background(), request.ID, admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.coordinator.removed) != 1 || f.coordinator.removed[0] != "EVT-1" {
		t.Errorf("expected EVT-1 removed, got %v", f.coordinator.removed)
	}
	if f.deletions.requests[request.ID].Status != model.RequestApproved {
		t.Error("deletion request not marked approved")
	}
}

func TestApproveDeletion_ToleratesAlreadyDeletedEvent(t *testing.T) {
	f := newWorkflowFixture(t)
	f.events.events["EVT-1"] = &model.Event{ID: "EVT-1", State: model.StateActive}
	request, _ := f.svc.RequestDeletion(context.Background(), "EVT-1", admin)
	f.coordinator.removeErr = apperrors.NotFoundWithID("Event", "EVT-1")

	if err := f.svc.ApproveDeletion(context.Background(), request.ID, admin); err != nil {
		t.Fatalf("expected success when event is already gone, got %v", err)
	}
	if f.deletions.requests[request.ID].Status != model.RequestApproved {
		t.Error("deletion request not marked approved")
	}
}

func TestRejectDeletion_RestoresEventState(t *testing.T) {
	f := newWorkflowFixture(t)
	f.events.events["EVT-1"] = &model.Event{ID: "EVT-1", State: model.StateActive}
	request, _ := f.svc.RequestDeletion(context.Background(), "EVT-1", admin)

	if err := f.svc.RejectDeletion(context.Background(), request.ID, admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.events.events["EVT-1"].State != model.StateActive {
		t.Errorf("event must return to active, got %s", f.events.events["EVT-1"].State)
	}
	if f.deletions.requests[request.ID].Status != model.RequestRejected {
		t.Error("deletion request not marked rejected")
	}

	// The rejected request no longer coalesces new ones.
	again, err := f.svc.RequestDeletion(context.Background(), "EVT-1", admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID == request.ID {
		t.Error("a fresh request must be opened after rejection")
	}
}

func TestListPending_FiltersByRole(t *testing.T) {
	f := newWorkflowFixture(t)
	mine, _ := f.svc.Submit(context.Background(), studentDraft(), []string{"R1"})
	other := studentDraft()
	other.Creator = "student-2"
	f.svc.Submit(context.Background(), other, []string{"R2"})

	all, err := f.svc.ListPending(context.Background(), admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("reviewer should see 2 requests, got %d", len(all))
	}

	own, err := f.svc.ListPending(context.Background(), student)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 1 || own[0].ID != mine.ID {
		t.Errorf("student should see only their own request, got %+v", own)
	}
}
