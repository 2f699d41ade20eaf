package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/notice"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDueDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, DueDate(domain.Date{}, domain.TaskTodo, now), "--")
	assert.Contains(t, DueDate(date(t, "2026-02-08"), domain.TaskTodo, now), "Tomorrow")
	assert.Contains(t, DueDate(date(t, "2026-02-01"), domain.TaskDone, now), "6d ago")
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestampFrom("2026-02-07T11:59:30Z", now))
	assert.Equal(t, "5m ago", HumanTimestampFrom("2026-02-07T11:55:00Z", now))
	assert.Equal(t, "3h ago", HumanTimestampFrom("2026-02-07T09:00:00Z", now))
	assert.Equal(t, "Jan 30, 2026", HumanTimestampFrom("2026-01-30T09:00:00Z", now))
	assert.Equal(t, "yesterday-ish", HumanTimestampFrom("yesterday-ish", now))
}

func TestTable_AlignsStyledCells(t *testing.T) {
	out := Table{
		Headers: []string{"A", "B"},
		Rows: [][]string{
			{StyleRed.Render("long value"), "x"},
			{"s", "y"},
		},
	}.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
}

func TestTable_EmptyText(t *testing.T) {
	out := Table{Headers: []string{"ID"}, Empty: "Nothing here"}.Render()
	assert.Contains(t, out, "Nothing here")
	assert.Equal(t, "", Table{}.Render())
}

func TestRenderCompletion(t *testing.T) {
	assert.Contains(t, RenderCompletion(3, 8, 8), "3/8")
	assert.Contains(t, RenderCompletion(0, 0, 8), "0/0")
	assert.Contains(t, RenderCompletion(9, 4, 4), strings.Repeat(filledBlock, 4))
}

func TestNoticeLine(t *testing.T) {
	assert.Contains(t, NoticeLine(notice.Notice{Message: "Project Created", Severity: notice.Success}), "✔ Project Created")
	assert.Contains(t, NoticeLine(notice.Notice{Message: "boom", Severity: notice.Error}), "✖ boom")
	assert.Contains(t, NoticeLine(notice.Notice{Message: "hi", Severity: notice.Info}), "ℹ hi")
}

func TestFormatProjectList(t *testing.T) {
	out := FormatProjectList([]domain.Project{{
		UUID:      "abcdef12-3456-7890-abcd-ef1234567890",
		Name:      "Website Redesign",
		Priority:  domain.PriorityHigh,
		StartDate: date(t, "2026-01-05"),
		EndDate:   date(t, "2026-03-01"),
	}})

	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
	assert.Contains(t, out, "Website Redesign")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Jan 5 – Mar 1, 2026")

	assert.Contains(t, FormatProjectList(nil), "No projects yet")
}

func TestFormatTaskList_UsesCanonicalStatusLabels(t *testing.T) {
	now := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	out := FormatTaskList([]domain.Task{
		{ID: "1", Title: "Write copy", Status: domain.TaskInProgress, ProjectName: "Site"},
		{ID: "2", Title: "Ship", Status: domain.TaskReview, AssigneeFirstName: "Ada"},
	}, now)

	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "In Review")
	assert.Contains(t, out, "Unassigned")
	assert.Contains(t, out, "Ada")
}

func TestFormatTaskCounts(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := FormatTaskCounts(3, []domain.Task{
		{Status: domain.TaskDone},
		{Status: domain.TaskTodo, DueDate: date(t, "2025-03-10")},
		{Status: domain.TaskTodo, DueDate: date(t, "2025-03-01")},
	}, now)
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "To Do")
	assert.NotContains(t, out, "Blocked")
	assert.Contains(t, out, "DUE TODAY")
	assert.Contains(t, out, "OVERDUE")

	assert.NotContains(t, FormatTaskCounts(0, nil, now), "COMPLETED")
}

func TestFormatTaskTabsAndFooter(t *testing.T) {
	out := FormatTaskTabs(map[domain.TaskTab]int{domain.TabAll: 12, domain.TabOverdue: 2}, domain.TabOverdue)
	assert.Contains(t, out, "All 12")
	assert.Contains(t, out, "[Overdue 2]")
	assert.Contains(t, out, "Today 0")

	assert.Equal(t, "", FormatPageFooter(1, 1, 4))
	assert.Contains(t, FormatPageFooter(2, 3, 25), "Page 2 of 3 (25 tasks)")
}

func TestFormatInvite(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	out := FormatInvite(&domain.Invite{
		Inviter:       "Grace Hopper",
		TeammateCount: 4,
		ExpiresAt:     "2026-02-07T14:05:00Z",
	}, now)

	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "2 hours 5 mins")
	assert.Contains(t, FormatInvite(nil, now), "not found")
}

func TestFormatCalendar(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	task := domain.Task{Title: "Launch", Status: domain.TaskTodo, ProjectName: "Site"}
	cal := &domain.CalendarMonth{
		Tasks:         []domain.Task{task},
		GroupedByDate: map[string][]domain.Task{"2026-02-07": {task}},
	}

	out := FormatCalendar(cal, time.February, 2026, now)
	assert.Contains(t, out, "February 2026")
	assert.Contains(t, out, "(today)")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Projects: Site")

	assert.Contains(t, FormatCalendar(nil, time.March, 2026, now), "No tasks due")
}

func TestFormatUser(t *testing.T) {
	out := FormatUser(&domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	assert.Contains(t, out, "[AL]")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, FormatUser(nil), "Not signed in")
}

func TestMarkdown(t *testing.T) {
	assert.Contains(t, Markdown(""), "No description.")
	assert.Contains(t, Markdown("# Goals\n\nShip the **beta**."), "beta")
}
