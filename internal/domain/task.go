package domain

import (
	"sort"
	"strings"
)

type Task struct {
	ID                ID         `json:"id"`
	UUID              ID         `json:"uuid,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ProjectID         ID         `json:"project_id,omitempty"`
	ProjectUUID       ID         `json:"project_uuid,omitempty"`
	ProjectName       string     `json:"project_name,omitempty"`
	ProjectColor      string     `json:"project_color,omitempty"`
	Priority          Priority   `json:"priority"`
	Status            TaskStatus `json:"status"`
	DueDate           Date       `json:"due_date"`
	Assignee          ID         `json:"assignee,omitempty"`
	AssigneeName      string     `json:"assignee_name,omitempty"`
	AssigneeFirstName string     `json:"assignee_fname,omitempty"`
	AssigneeLastName  string     `json:"assignee_lname,omitempty"`
	Tags              []string   `json:"tags"`
	CreatedAt         string     `json:"created_at,omitempty"`
}

// AssigneeDisplay returns the best available assignee label.
func (t Task) AssigneeDisplay() string {
	if n := joinName(t.AssigneeFirstName, t.AssigneeLastName); n != "" {
		return n
	}
	if t.AssigneeName != "" {
		return t.AssigneeName
	}
	return "Unassigned"
}

// TaskDetail is a task together with a summary of its project, as returned
// by the single-task endpoint.
type TaskDetail struct {
	Task
	ProjectDescription string        `json:"project_description,omitempty"`
	ProjectPriority    Priority      `json:"project_priority,omitempty"`
	ProjectStatus      ProjectStatus `json:"project_status"`
	ProjectStartDate   Date          `json:"project_start_date"`
	ProjectEndDate     Date          `json:"project_end_date"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Project     ID         `json:"project"`
	ProjectID   ID         `json:"projectId"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	Assignee    ID         `json:"assignee"`
	Tags        []string   `json:"tags"`
}

// ApplyDefaults fills the form defaults and mirrors Project into ProjectID,
// which is the field the backend reads.
func (d *TaskDraft) ApplyDefaults() {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Status == "" {
		d.Status = TaskTodo
	}
	d.ProjectID = d.Project
	d.Tags = NormalizeTags(d.Tags)
}

// NormalizeTags trims tags and drops blanks and duplicates, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TaskCounts groups tasks by status.
func TaskCounts(tasks []Task) map[TaskStatus]int {
	counts := make(map[TaskStatus]int, len(TaskStatuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// CalendarMonth is one month of tasks as served by the calendar endpoint.
type CalendarMonth struct {
	Tasks         []Task            `json:"data"`
	GroupedByDate map[string][]Task `json:"grouped_by_date"`
}

// Days returns the dates that have tasks, sorted ascending.
func (c CalendarMonth) Days() []string {
	days := make([]string, 0, len(c.GroupedByDate))
	for d := range c.GroupedByDate {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// ProjectNames returns the distinct project names in first-seen order.
func (c CalendarMonth) ProjectNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range c.Tasks {
		if t.ProjectName == "" || seen[t.ProjectName] {
			continue
		}
		seen[t.ProjectName] = true
		names = append(names, t.ProjectName)
	}
	return names
}
