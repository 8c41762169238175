package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Event", "EVT-42")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Details["id"] != "EVT-42" {
		t.Errorf("expected id detail EVT-42, got %v", err.Details["id"])
	}
}

func TestConflictWithResource(t *testing.T) {
	err := ConflictWithResource("resource is already booked", "R1")

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.Details["resource_id"] != "R1" {
		t.Errorf("expected resource_id detail R1, got %v", err.Details["resource_id"])
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("storage failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Conflict("busy"), CodeConflict) {
		t.Error("expected IsCode to match conflict error")
	}
	if IsCode(Conflict("busy"), CodeNotFound) {
		t.Error("expected IsCode to reject mismatched code")
	}
	if IsCode(errors.New("plain"), CodeConflict) {
		t.Error("expected IsCode to reject non-AppError")
	}
}

func TestAsAppError(t *testing.T) {
	plain := errors.New("boom")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected plain error to map to %s, got %s", CodeInternal, appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("expected wrapped cause to be preserved")
	}

	original := Forbidden("nope")
	if AsAppError(original) != original {
		t.Error("expected AppError to pass through unchanged")
	}
}
