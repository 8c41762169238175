package roles

import "testing"

func TestCanScheduleDirectly(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{Admin, true},
		{Teacher, true},
		{Student, false},
		{"", false},
		{"janitor", false},
	}

	for _, tt := range tests {
		if got := CanScheduleDirectly(tt.role); got != tt.want {
			t.Errorf("CanScheduleDirectly(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCanApprove(t *testing.T) {
	if !CanApprove(Admin) || !CanApprove(Teacher) {
		t.Error("expected admin and teacher to approve")
	}
	if CanApprove(Student) {
		t.Error("expected student not to approve")
	}
	if CanApprove("unknown") {
		t.Error("expected unknown role not to approve")
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		owner   string
		actor   string
		want    bool
	}{
		{"admin deletes anything", Admin, "u1", "u2", true},
		{"teacher deletes own event", Teacher, "u1", "u1", true},
		{"teacher cannot delete others' event", Teacher, "u1", "u2", false},
		{"student cannot delete own event", Student, "u1", "u1", false},
		{"unknown role cannot delete", "guest", "u1", "u1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDelete(tt.role, tt.owner, tt.actor); got != tt.want {
				t.Errorf("CanDelete(%q, %q, %q) = %v, want %v", tt.role, tt.owner, tt.actor, got, tt.want)
			}
		})
	}
}

func TestRequiresApproval(t *testing.T) {
	if RequiresApproval(Admin) || RequiresApproval(Teacher) {
		t.Error("expected privileged roles to book directly")
	}
	if !RequiresApproval(Student) {
		t.Error("expected student bookings to require approval")
	}
	if !RequiresApproval("unknown") {
		t.Error("expected unknown roles to require approval")
	}
}
