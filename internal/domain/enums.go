package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts a priority case-insensitively. Empty input yields
// PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
	}
}

// TaskStatus is the single closed set of task states used by every view.
// The backend and older screens spell some of these differently; see
// ParseTaskStatus.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
	TaskOnHold     TaskStatus = "on_hold"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every status in board order.
var TaskStatuses = []TaskStatus{
	TaskTodo, TaskInProgress, TaskReview, TaskDone, TaskBlocked, TaskOnHold, TaskCancelled,
}

var taskStatusAliases = map[string]TaskStatus{
	"todo":        TaskTodo,
	"to-do":       TaskTodo,
	"to_do":       TaskTodo,
	"pending":     TaskTodo,
	"in_progress": TaskInProgress,
	"in-progress": TaskInProgress,
	"inprogress":  TaskInProgress,
	"review":      TaskReview,
	"in-review":   TaskReview,
	"in review":   TaskReview,
	"done":        TaskDone,
	"completed":   TaskDone,
	"complete":    TaskDone,
	"blocked":     TaskBlocked,
	"on_hold":     TaskOnHold,
	"on-hold":     TaskOnHold,
	"cancelled":   TaskCancelled,
	"canceled":    TaskCancelled,
}

// ParseTaskStatus maps any known spelling onto the canonical status.
// Empty input yields TaskTodo.
func ParseTaskStatus(s string) (TaskStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return TaskTodo, nil
	}
	if st, ok := taskStatusAliases[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Label returns the display label for the status.
func (s TaskStatus) Label() string {
	switch s {
	case TaskTodo:
		return "To Do"
	case TaskInProgress:
		return "In Progress"
	case TaskReview:
		return "In Review"
	case TaskDone:
		return "Done"
	case TaskBlocked:
		return "Blocked"
	case TaskOnHold:
		return "On Hold"
	case TaskCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Known reports whether s is one of the canonical statuses.
func (s TaskStatus) Known() bool {
	for _, st := range TaskStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsClosed reports whether no further work is expected on the task.
func (s TaskStatus) IsClosed() bool {
	return s == TaskDone || s == TaskCancelled
}

func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("task status: %w", err)
	}
	st, err := ParseTaskStatus(raw)
	if err != nil {
		// Keep statuses this client does not know so the row still renders.
		*s = TaskStatus(strings.TrimSpace(raw))
		return nil
	}
	*s = st
	return nil
}

// ProjectStatus is the numeric project state reported on task detail.
type ProjectStatus int

const (
	ProjectPending   ProjectStatus = 0
	ProjectActive    ProjectStatus = 1
	ProjectCompleted ProjectStatus = 2
)

func (s ProjectStatus) String() string {
	switch s {
	case ProjectPending:
		return "Pending"
	case ProjectActive:
		return "Active"
	case ProjectCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
