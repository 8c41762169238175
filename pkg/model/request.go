package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// PendingEventRequest is a booking proposal awaiting review. Availability
// is deliberately not checked at submission; it is re-verified at approval
// time. Once the status leaves pending the record is immutable.
type PendingEventRequest struct {
	ID                   string        `json:"id" bson:"_id"`
	Title                string        `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Type                 string        `json:"type" bson:"type" validate:"required,min=2,max=50"`
	StartTime            time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime              time.Time     `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Description          string        `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	RequestedBy          string        `json:"requested_by" bson:"requested_by" validate:"required"`
	RequestedResourceIDs []string      `json:"requested_resource_ids" bson:"requested_resource_ids" validate:"required,min=1,dive,required"`
	Status               RequestStatus `json:"status" bson:"status"`
	ReviewedBy           string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	RejectionReason      string        `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt            time.Time     `json:"created_at" bson:"created_at"`
	ReviewedAt           *time.Time    `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}

// Draft rebuilds the event draft captured at submission time.
func (r *PendingEventRequest) Draft() *EventDraft {
	return &EventDraft{
		Title:       r.Title,
		Type:        r.Type,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
		Creator:     r.RequestedBy,
	}
}

// DeletionRequest asks a reviewer to remove an event the requester does not
// unilaterally control. At most one pending request exists per event;
// duplicates are coalesced onto the existing one.
type DeletionRequest struct {
	ID          string        `json:"id" bson:"_id"`
	EventID     string        `json:"event_id" bson:"event_id"`
	RequestedBy string        `json:"requested_by" bson:"requested_by"`
	Status      RequestStatus `json:"status" bson:"status"`
	ReviewedBy  string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}
