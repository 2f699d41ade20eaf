package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func due(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func taskSet() []Task {
	return []Task{
		{ID: "1", Title: "Write docs", ProjectName: "Apollo", Priority: PriorityHigh, Status: TaskTodo, DueDate: due("2025-03-10")},
		{ID: "2", Title: "Ship release", ProjectName: "Apollo", Priority: PriorityMedium, Status: TaskInProgress, DueDate: due("2025-03-14")},
		{ID: "3", Title: "Fix login", ProjectName: "Gemini", Priority: PriorityHigh, Status: TaskTodo, DueDate: due("2025-03-01")},
		{ID: "4", Title: "Old cleanup", ProjectName: "Gemini", Priority: PriorityLow, Status: TaskDone, DueDate: due("2025-02-01")},
		{ID: "5", Title: "Someday docs", ProjectName: "Apollo", Priority: PriorityLow, Status: TaskTodo},
	}
}

func ids(tasks []Task) []ID {
	out := make([]ID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasks(t *testing.T) {
	cases := []struct {
		name   string
		filter TaskFilter
		want   []ID
	}{
		{"zero filter keeps all", TaskFilter{}, []ID{"1", "2", "3", "4", "5"}},
		{"today", TaskFilter{Tab: TabToday}, []ID{"1"}},
		{"upcoming", TaskFilter{Tab: TabUpcoming}, []ID{"2"}},
		{"overdue skips done", TaskFilter{Tab: TabOverdue}, []ID{"3"}},
		{"project is case-insensitive", TaskFilter{Project: "gemini"}, []ID{"3", "4"}},
		{"priority", TaskFilter{Priority: PriorityHigh}, []ID{"1", "3"}},
		{"status", TaskFilter{Status: TaskInProgress}, []ID{"2"}},
		{"search title", TaskFilter{Search: "DOCS"}, []ID{"1", "5"}},
		{"combined", TaskFilter{Tab: TabToday, Project: "Apollo", Search: "write"}, []ID{"1"}},
		{"no match", TaskFilter{Project: "Mercury"}, []ID{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterTasks(taskSet(), tc.filter, filterNow)))
		})
	}
}

func TestTaskDueChecks_IgnoreTimeOfDay(t *testing.T) {
	late := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	task := Task{Status: TaskTodo, DueDate: due("2025-03-10")}
	assert.True(t, task.DueToday(late))
	assert.False(t, task.Overdue(late))
	assert.False(t, task.Upcoming(late))

	cancelled := Task{Status: TaskCancelled, DueDate: due("2025-03-01")}
	assert.False(t, cancelled.Overdue(filterNow))
}

func TestTabCounts(t *testing.T) {
	counts := TabCounts(taskSet(), filterNow)
	assert.Equal(t, map[TaskTab]int{TabAll: 5, TabToday: 1, TabUpcoming: 1, TabOverdue: 1}, counts)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, pages := Page(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, page)
	assert.Equal(t, 3, pages)

	page, _ = Page(items, 3, 3)
	assert.Equal(t, []int{7}, page)

	page, _ = Page(items, 9, 3)
	assert.Empty(t, page)

	page, _ = Page(items, 0, 3)
	assert.Equal(t, []int{1, 2, 3}, page)

	page, pages = Page([]int{}, 1, 0)
	assert.Empty(t, page)
	assert.Zero(t, pages)
}

func TestSummarizeDue(t *testing.T) {
	s := SummarizeDue(taskSet(), filterNow)
	assert.Equal(t, DueSummary{Active: 2, Completed: 1, Overdue: 1, DueToday: 1}, s)
}

func TestParseTaskTab(t *testing.T) {
	tab, err := ParseTaskTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, tab)

	tab, err = ParseTaskTab("Overdue")
	require.NoError(t, err)
	assert.Equal(t, TabOverdue, tab)

	_, err = ParseTaskTab("later")
	assert.Error(t, err)
}

func TestFilterAndSortProjects(t *testing.T) {
	projects := []Project{
		{Name: "gemini", Status: "active", EndDate: due("2025-06-01")},
		{Name: "Apollo", Status: "completed", EndDate: due("2025-04-01")},
		{Name: "Mercury", Status: "active"},
		{Name: "Artemis", Status: "active", EndDate: due("2025-05-01")},
	}
	names := func(ps []Project) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Apollo", "Artemis", "gemini", "Mercury"}, names(SortProjects(projects, SortByName)))
	assert.Equal(t, []string{"Apollo", "Artemis", "gemini", "Mercury"}, names(SortProjects(projects, SortByDeadline)))
	assert.Equal(t, "gemini", projects[0].Name, "sorting copies")

	active := FilterProjects(projects, ProjectFilter{Status: "Active"})
	assert.Equal(t, []string{"gemini", "Mercury", "Artemis"}, names(active))
	assert.Len(t, FilterProjects(projects, ProjectFilter{Status: "all"}), 4)
	assert.Equal(t, []string{"Mercury"}, names(FilterProjects(projects, ProjectFilter{Search: "MER"})))

	_, err := ParseProjectSort("budget")
	assert.Error(t, err)
}
