package service

import (
	"context"
	"testing"

	"github.com/gautham-8087/Event-IQ/pkg/model"
)

func blockingEvent(id string, start, end int) *model.Event {
	return &model.Event{
		ID:        id,
		Title:     "Lecture",
		StartTime: at(start, 0),
		EndTime:   at(end, 0),
		State:     model.StateActive,
	}
}

func availabilityFixture(allocations map[string][]*model.Allocation, events []*model.Event) AvailabilityService {
	byID := make(map[string]*model.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	eventRepo := &mockEventRepository{
		findByIDsFunc: func(ctx context.Context, ids []string) ([]*model.Event, error) {
			found := make([]*model.Event, 0, len(ids))
			for _, id := range ids {
				if ev, ok := byID[id]; ok {
					found = append(found, ev)
				}
			}
			return found, nil
		},
	}
	allocRepo := &mockAllocationRepository{
		findByResourceIDFunc: func(ctx context.Context, resourceID string) ([]*model.Allocation, error) {
			return allocations[resourceID], nil
		},
	}
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, resourceType model.ResourceType, filter model.ResourceFilter) ([]model.Resource, error) {
			switch resourceType {
			case model.ResourceRoom:
				return []model.Resource{
					{ID: "R1", Type: model.ResourceRoom, Name: "Auditorium"},
					{ID: "R2", Type: model.ResourceRoom, Name: "Lab A"},
				}, nil
			case model.ResourceInstructor:
				return []model.Resource{
					{ID: "I1", Type: model.ResourceInstructor, Name: "Dr. Chen"},
				}, nil
			default:
				return []model.Resource{}, nil
			}
		},
	}
	return NewAvailabilityService(catalog, eventRepo, allocRepo, testConfig())
}

func TestIsAvailable_NoAllocations(t *testing.T) {
	svc := availabilityFixture(nil, nil)

	free, err := svc.IsAvailable(context.Background(), "R1", at(10, 0), at(11, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free {
		t.Error("expected unallocated resource to be available")
	}
}

func TestIsAvailable_OverlapBlocks(t *testing.T) {
	svc := availabilityFixture(
		map[string][]*model.Allocation{
			"R1": {{ID: "A1", EventID: "EVT-1", ResourceID: "R1"}},
		},
		[]*model.Event{blockingEvent("EVT-1", 10, 12)},
	)

	cases := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"full containment", 10, 12, false},
		{"starts inside", 11, 13, false},
		{"ends inside", 9, 11, false},
		{"surrounds", 9, 13, false},
		{"ends at start", 8, 10, true},
		{"starts at end", 12, 14, true},
		{"disjoint before", 7, 8, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			free, err := svc.IsAvailable(context.Background(), "R1", at(tc.start, 0), at(tc.end, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if free != tc.want {
				t.Errorf("window %02d:00-%02d:00: got available=%v, want %v", tc.start, tc.end, free, tc.want)
			}
		})
	}
}

func TestIsAvailable_NonBlockingStatesIgnored(t *testing.T) {
	states := map[model.EventState]bool{
		model.StateActive:            false,
		model.StateDeletionRequested: false,
		model.StatePendingApproval:   true,
		model.StateRejected:          true,
		model.StateArchived:          true,
	}
	for state, wantFree := range states {
		ev := blockingEvent("EVT-1", 10, 12)
		ev.State = state
		svc := availabilityFixture(
			map[string][]*model.Allocation{
				"R1": {{ID: "A1", EventID: "EVT-1", ResourceID: "R1"}},
			},
			[]*model.Event{ev},
		)

		free, err := svc.IsAvailable(context.Background(), "R1", at(10, 30), at(11, 30))
		if err != nil {
			t.Fatalf("state %s: unexpected error: %v", state, err)
		}
		if free != wantFree {
			t.Errorf("state %s: got available=%v, want %v", state, free, wantFree)
		}
	}
}

func TestIsAvailable_DanglingAllocationIgnored(t *testing.T) {
	svc := availabilityFixture(
		map[string][]*model.Allocation{
			"R1": {{ID: "A1", EventID: "EVT-gone", ResourceID: "R1"}},
		},
		nil,
	)

	free, err := svc.IsAvailable(context.Background(), "R1", at(10, 0), at(11, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free {
		t.Error("allocation pointing at a deleted event should not block")
	}
}

func TestIsAvailable_RejectsInvertedWindow(t *testing.T) {
	svc := availabilityFixture(nil, nil)

	if _, err := svc.IsAvailable(context.Background(), "R1", at(11, 0), at(10, 0)); err == nil {
		t.Fatal("expected error for end before start")
	}
	if _, err := svc.IsAvailable(context.Background(), "R1", at(10, 0), at(10, 0)); err == nil {
		t.Fatal("expected error for zero-length window")
	}
}

func TestFindAvailable_ExcludesBookedResources(t *testing.T) {
	svc := availabilityFixture(
		map[string][]*model.Allocation{
			"R1": {{ID: "A1", EventID: "EVT-1", ResourceID: "R1"}},
		},
		[]*model.Event{blockingEvent("EVT-1", 10, 12)},
	)

	got, err := svc.FindAvailable(context.Background(), model.ResourceRoom, at(11, 0), at(12, 0), model.ResourceFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "R2" {
		t.Fatalf("expected only R2 available, got %+v", got)
	}
}

func TestCheckAvailability_SurveysAllTypes(t *testing.T) {
	svc := availabilityFixture(nil, nil)

	result, err := svc.CheckAvailability(context.Background(), at(10, 0), at(11, 0), 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rooms) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if len(result.Instructors) != 1 {
		t.Errorf("expected 1 instructor, got %d", len(result.Instructors))
	}
	if len(result.Equipment) != 0 {
		t.Errorf("expected no equipment, got %d", len(result.Equipment))
	}
}

func TestCheckAvailability_AppliesResultLimit(t *testing.T) {
	svc := availabilityFixture(nil, nil).(*availabilityService)
	svc.cfg.AvailabilityLimit = 1

	result, err := svc.CheckAvailability(context.Background(), at(10, 0), at(11, 0), 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rooms) != 1 {
		t.Errorf("expected room list capped at 1, got %d", len(result.Rooms))
	}
}
