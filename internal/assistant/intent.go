// Package assistant exposes a single structured-intent entrypoint meant for
// machine callers such as a chat frontend. Payloads are a closed union
// keyed by an action field and are decoded strictly.
package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/gautham-8087/Event-IQ/pkg/errors"
)

const (
	ActionCheckResources = "check_resources"
	ActionBookEvent      = "book_event"
)

// CheckResourcesIntent asks which resources are free in a window.
type CheckResourcesIntent struct {
	Action         string `json:"action"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MinCapacity    int    `json:"min_capacity,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// BookEventIntent books a set of resources for a window. The event title is
// derived from the event type and purpose.
type BookEventIntent struct {
	Action      string   `json:"action"`
	EventType   string   `json:"event_type"`
	Purpose     string   `json:"purpose"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	ResourceIDs []string `json:"resource_ids"`
	Description string   `json:"description,omitempty"`
}

type envelope struct {
	Action string `json:"action"`
}

// DecodeIntent parses a raw intent payload into one of the known intent
// types. Unknown actions and unknown fields are rejected rather than
// ignored, so a caller typo cannot silently turn into a no-op.
func DecodeIntent(payload []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, apperrors.InvalidInput("intent payload is not valid JSON")
	}

	switch env.Action {
	case ActionCheckResources:
		var intent CheckResourcesIntent
		if err := decodeStrict(payload, &intent); err != nil {
			return nil, err
		}
		return &intent, nil
	case ActionBookEvent:
		var intent BookEventIntent
		if err := decodeStrict(payload, &intent); err != nil {
			return nil, err
		}
		return &intent, nil
	case "":
		return nil, apperrors.Validation("Intent action is required", nil)
	default:
		return nil, apperrors.Validation(fmt.Sprintf("Unknown intent action: %s", env.Action), map[string]any{
			"supported": []string{ActionCheckResources, ActionBookEvent},
		})
	}
}

func decodeStrict(payload []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return apperrors.Validation("Intent payload does not match its action", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}
