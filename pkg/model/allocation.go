package model

// Allocation binds one resource to one event for the event's time window.
// The window is never duplicated here; it is always read through the owning
// event. Allocations are created only inside a successful booking
// transaction and removed only by event deletion.
type Allocation struct {
	ID         string `json:"id" bson:"_id"`
	EventID    string `json:"event_id" bson:"event_id"`
	ResourceID string `json:"resource_id" bson:"resource_id"`
}
