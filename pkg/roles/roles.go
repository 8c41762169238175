// Package roles defines the role-gating policy as pure predicates over
// role and ownership, independent of storage or transport.
package roles

const (
	Admin   = "admin"
	Teacher = "teacher"
	Student = "student"
)

func Known(role string) bool {
	switch role {
	case Admin, Teacher, Student:
		return true
	}
	return false
}

// CanScheduleDirectly reports whether the role may book without approval.
// Student bookings always go through the approval workflow.
func CanScheduleDirectly(role string) bool {
	return role == Admin || role == Teacher
}

// CanApprove reports whether the role may approve or reject pending event
// and deletion requests.
func CanApprove(role string) bool {
	return role == Admin || role == Teacher
}

// CanDelete reports whether the actor may delete an event outright. Admins
// delete anything; teachers delete only their own events and must file a
// deletion request for the rest. Students never delete.
func CanDelete(role, eventOwner, actorID string) bool {
	if role == Admin {
		return true
	}
	if role == Teacher && eventOwner == actorID {
		return true
	}
	return false
}

// CanRequestDeletion reports whether the actor may file a deletion request
// for an event they cannot delete directly.
func CanRequestDeletion(role string) bool {
	return role == Admin || role == Teacher
}

// RequiresApproval reports whether the role's bookings must be reviewed.
// Unknown roles are treated as requiring approval.
func RequiresApproval(role string) bool {
	return !CanScheduleDirectly(role)
}
