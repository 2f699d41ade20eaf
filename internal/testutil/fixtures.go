package testutil

import (
	"github.com/google/uuid"
)

// UserFixture returns a current-user payload.
func UserFixture(first, last string) map[string]any {
	return map[string]any{
		"uuid":  uuid.NewString(),
		"fname": first,
		"lname": last,
		"email": first + "@example.com",
	}
}

// ProjectFixture returns a project payload with generated identifiers.
func ProjectFixture(name string) map[string]any {
	return map[string]any{
		"uuid":        uuid.NewString(),
		"name":        name,
		"description": "About " + name,
		"color":       "blue",
		"priority":    "medium",
		"start_date":  "2025-01-01",
		"end_date":    "2025-12-31",
	}
}

// TaskFixture returns a task payload in projectName with the given status.
func TaskFixture(id int, title, projectName, status string) map[string]any {
	return map[string]any{
		"id":           id,
		"uuid":         uuid.NewString(),
		"title":        title,
		"project_name": projectName,
		"priority":     "medium",
		"status":       status,
		"due_date":     "2025-03-14",
	}
}

// MemberFixture returns a team member payload.
func MemberFixture(first, last, role string) map[string]any {
	return map[string]any{
		"uuid":   uuid.NewString(),
		"fname":  first,
		"lname":  last,
		"email":  first + "@example.com",
		"role":   role,
		"status": "active",
	}
}
