package model

// AvailabilityResult lists catalog resources free for a requested window,
// grouped by type the way callers present them. The core returns data
// only; rendering is the front-end's job.
type AvailabilityResult struct {
	Rooms       []Resource `json:"rooms"`
	Instructors []Resource `json:"instructors"`
	Equipment   []Resource `json:"equipment"`
}

// BookingResult reports the outcome of a booking intent. Direct bookings
// carry the committed event id; bookings routed through approval carry the
// pending request id instead.
type BookingResult struct {
	EventID   string `json:"event_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Status    string `json:"status"`
}

const (
	BookingConfirmed       = "confirmed"
	BookingPendingApproval = "pending_approval"
)
