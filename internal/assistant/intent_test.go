package assistant

import (
	"testing"

	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
)

func TestDecodeIntent_CheckResources(t *testing.T) {
	payload := []byte(`{
		"action": "check_resources",
		"start_time": "2026-09-14T10:00:00Z",
		"end_time": "2026-09-14T11:00:00Z",
		"min_capacity": 30
	}`)

	decoded, err := DecodeIntent(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intent, ok := decoded.(*CheckResourcesIntent)
	if !ok {
		t.Fatalf("expected CheckResourcesIntent, got %T", decoded)
	}
	if intent.MinCapacity != 30 {
		t.Errorf("expected min_capacity 30, got %d", intent.MinCapacity)
	}
}

func TestDecodeIntent_BookEvent(t *testing.T) {
	payload := []byte(`{
		"action": "book_event",
		"event_type": "lecture",
		"purpose": "Linear Algebra",
		"start_time": "2026-09-14T10:00",
		"end_time": "2026-09-14T12:00",
		"resource_ids": ["R1", "I2"]
	}`)

	decoded, err := DecodeIntent(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intent, ok := decoded.(*BookEventIntent)
	if !ok {
		t.Fatalf("expected BookEventIntent, got %T", decoded)
	}
	if len(intent.ResourceIDs) != 2 {
		t.Errorf("expected 2 resource ids, got %v", intent.ResourceIDs)
	}
}

func TestDecodeIntent_UnknownAction(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"action": "cancel_everything"}`))
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeIntent_MissingAction(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"start_time": "2026-09-14T10:00:00Z"}`))
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeIntent_RejectsUnknownFields(t *testing.T) {
	payload := []byte(`{
		"action": "check_resources",
		"start_time": "2026-09-14T10:00:00Z",
		"end_time": "2026-09-14T11:00:00Z",
		"capasity": 30
	}`)

	_, err := DecodeIntent(payload)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for unknown field, got %v", err)
	}
}

func TestDecodeIntent_MalformedJSON(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"action": `))
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
