package model

import "time"

type EventState string

const (
	StateActive            EventState = "active"
	StatePendingApproval   EventState = "pending_approval"
	StateRejected          EventState = "rejected"
	StateDeletionRequested EventState = "deletion_requested"
	StateArchived          EventState = "archived"
)

// Blocks reports whether an event in this state occupies its allocated
// resources. A deletion-requested event still blocks until the request is
// approved, since rejection returns it to active.
func (s EventState) Blocks() bool {
	return s == StateActive || s == StateDeletionRequested
}

type Event struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Type        string     `json:"type" bson:"type"`
	StartTime   time.Time  `json:"start_time" bson:"start_time"`
	EndTime     time.Time  `json:"end_time" bson:"end_time"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Creator     string     `json:"creator" bson:"creator"`
	State       EventState `json:"state" bson:"state"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// EventDraft is the validated input shape for a booking. StartTime must be
// strictly before EndTime; violating drafts are rejected, never corrected.
type EventDraft struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Type        string    `json:"type" validate:"required,min=2,max=50"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	Creator     string    `json:"creator" validate:"required"`
}

// EventDetails is an event joined with its allocated resources.
type EventDetails struct {
	Event     *Event     `json:"event"`
	Resources []Resource `json:"resources"`
}
