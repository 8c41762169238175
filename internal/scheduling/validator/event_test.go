package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/model"
)

func newTestValidator() *EventValidator {
	return NewEventValidator(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func validDraft() *model.EventDraft {
	return &model.EventDraft{
		Title:     "Physics Seminar",
		Type:      "Seminar",
		StartTime: time.Date(2025, 12, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC),
		Creator:   "u-teacher-1",
	}
}

func TestValidate_AcceptsValidDraft(t *testing.T) {
	if err := newTestValidator().Validate(validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsInvertedWindow(t *testing.T) {
	draft := validDraft()
	draft.StartTime, draft.EndTime = draft.EndTime, draft.StartTime

	err := newTestValidator().Validate(draft)
	if err == nil {
		t.Fatal("expected validation error for inverted window")
	}
	if !strings.Contains(err.Error(), "EndTime") {
		t.Errorf("expected EndTime in error, got: %v", err)
	}
}

func TestValidate_RejectsZeroLengthWindow(t *testing.T) {
	draft := validDraft()
	draft.EndTime = draft.StartTime

	if err := newTestValidator().Validate(draft); err == nil {
		t.Fatal("expected validation error for zero-length window")
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.EventDraft)
		field  string
	}{
		{"missing title", func(d *model.EventDraft) { d.Title = "" }, "Title"},
		{"missing type", func(d *model.EventDraft) { d.Type = "" }, "Type"},
		{"missing creator", func(d *model.EventDraft) { d.Creator = "" }, "Creator"},
		{"title too short", func(d *model.EventDraft) { d.Title = "x" }, "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			err := newTestValidator().Validate(draft)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected %s in error, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidateRequest_RequiresResources(t *testing.T) {
	req := &model.PendingEventRequest{
		Title:       "Robotics Workshop",
		Type:        "Workshop",
		StartTime:   time.Date(2025, 12, 11, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 12, 11, 11, 0, 0, 0, time.UTC),
		RequestedBy: "u-student-1",
	}

	err := newTestValidator().ValidateRequest(req)
	if err == nil {
		t.Fatal("expected validation error for missing resource ids")
	}
	if !strings.Contains(err.Error(), "RequestedResourceIDs") {
		t.Errorf("expected RequestedResourceIDs in error, got: %v", err)
	}

	req.RequestedResourceIDs = []string{"R1"}
	if err := newTestValidator().ValidateRequest(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
