package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TasksPerPage is the page size of the task list.
const TasksPerPage = 10

// TaskTab narrows the task list by due date.
type TaskTab string

const (
	TabAll      TaskTab = "all"
	TabToday    TaskTab = "today"
	TabUpcoming TaskTab = "upcoming"
	TabOverdue  TaskTab = "overdue"
)

// TaskTabs lists the tabs in display order.
var TaskTabs = []TaskTab{TabAll, TabToday, TabUpcoming, TabOverdue}

func ParseTaskTab(s string) (TaskTab, error) {
	switch TaskTab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabAll:
		return TabAll, nil
	case TabToday:
		return TabToday, nil
	case TabUpcoming:
		return TabUpcoming, nil
	case TabOverdue:
		return TabOverdue, nil
	default:
		return "", fmt.Errorf("unknown tab %q (want all, today, upcoming or overdue)", s)
	}
}

func (t TaskTab) Label() string {
	switch t {
	case TabToday:
		return "Today"
	case TabUpcoming:
		return "Upcoming"
	case TabOverdue:
		return "Overdue"
	default:
		return "All"
	}
}

// dayOf truncates t to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dueDay returns the task's due day in now's location. Plain dates keep
// their calendar day regardless of zone.
func dueDay(t Task, now time.Time) (time.Time, bool) {
	if t.DueDate.IsZero() {
		return time.Time{}, false
	}
	y, m, d := t.DueDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
}

// DueToday reports whether t is due on now's calendar day.
func (t Task) DueToday(now time.Time) bool {
	due, ok := dueDay(t, now)
	return ok && due.Equal(dayOf(now, now.Location()))
}

// Upcoming reports whether t is due after today.
func (t Task) Upcoming(now time.Time) bool {
	due, ok := dueDay(t, now)
	return ok && due.After(dayOf(now, now.Location()))
}

// Overdue reports whether t is still open past its due day.
func (t Task) Overdue(now time.Time) bool {
	due, ok := dueDay(t, now)
	return ok && !t.Status.IsClosed() && due.Before(dayOf(now, now.Location()))
}

// InTab reports whether t belongs on tab.
func (t Task) InTab(tab TaskTab, now time.Time) bool {
	switch tab {
	case TabToday:
		return t.DueToday(now)
	case TabUpcoming:
		return t.Upcoming(now)
	case TabOverdue:
		return t.Overdue(now)
	default:
		return true
	}
}

// TaskFilter selects tasks for the task list. Zero fields match everything.
type TaskFilter struct {
	Tab      TaskTab
	Project  string // project name, case-insensitive
	Priority Priority
	Status   TaskStatus
	Search   string // substring of the title, case-insensitive
}

func (f TaskFilter) Match(t Task, now time.Time) bool {
	if f.Project != "" && !strings.EqualFold(t.ProjectName, f.Project) {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(strings.TrimSpace(f.Search))) {
		return false
	}
	return t.InTab(f.Tab, now)
}

// FilterTasks returns the tasks matching f, keeping order.
func FilterTasks(tasks []Task, f TaskFilter, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// TabCounts counts the unfiltered tasks on each tab.
func TabCounts(tasks []Task, now time.Time) map[TaskTab]int {
	counts := make(map[TaskTab]int, len(TaskTabs))
	for _, tab := range TaskTabs {
		for _, t := range tasks {
			if t.InTab(tab, now) {
				counts[tab]++
			}
		}
	}
	return counts
}

// Page returns the 1-based page of items and the page count. Pages past the
// end are empty; page < 1 is treated as 1.
func Page[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = TasksPerPage
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, pages
	}
	end := min(start+perPage, len(items))
	return items[start:end], pages
}

// DueSummary is the dashboard's due-date breakdown of the task list.
type DueSummary struct {
	Active    int // open and due today or later
	Completed int
	Overdue   int
	DueToday  int
}

func SummarizeDue(tasks []Task, now time.Time) DueSummary {
	var s DueSummary
	for _, t := range tasks {
		if t.Status == TaskDone {
			s.Completed++
		}
		if t.DueToday(now) {
			s.DueToday++
		}
		switch {
		case t.Overdue(now):
			s.Overdue++
		case !t.Status.IsClosed() && (t.DueToday(now) || t.Upcoming(now)):
			s.Active++
		}
	}
	return s
}

// ProjectSort orders the project list.
type ProjectSort string

const (
	SortByName     ProjectSort = "name"
	SortByDeadline ProjectSort = "deadline"
)

func ParseProjectSort(s string) (ProjectSort, error) {
	switch ProjectSort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByName:
		return SortByName, nil
	case SortByDeadline:
		return SortByDeadline, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want name or deadline)", s)
	}
}

// ProjectFilter selects projects by name substring and status. Zero fields
// match everything.
type ProjectFilter struct {
	Search string
	Status string
}

func (f ProjectFilter) Match(p Project) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(f.Search))) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(f.Status, "all") && !strings.EqualFold(p.Status, f.Status) {
		return false
	}
	return true
}

// FilterProjects returns the projects matching f, keeping order.
func FilterProjects(projects []Project, f ProjectFilter) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// SortProjects returns a sorted copy of projects. Deadline order puts
// projects without an end date last.
func SortProjects(projects []Project, by ProjectSort) []Project {
	out := append([]Project(nil), projects...)
	switch by {
	case SortByDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].EndDate, out[j].EndDate
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.Before(b.Time)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}
