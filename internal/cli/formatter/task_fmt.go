package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// FormatTaskList renders the tasks page.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			Swatch(t.ProjectColor) + " " + OrDash(t.ProjectName),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			DueDate(t.DueDate, t.Status, now),
			t.AssigneeDisplay(),
		})
	}
	table := Table{
		Headers: []string{"ID", "TITLE", "PROJECT", "STATUS", "PRIORITY", "DUE", "ASSIGNEE"},
		Rows:    rows,
		Empty:   "No tasks yet. Create one with: taskflow task add",
	}
	return RenderBox("Tasks", table.Render())
}

// FormatTaskDetail renders one task with its project summary.
func FormatTaskDetail(t *domain.TaskDetail, now time.Time) string {
	if t == nil {
		return Dim("Task not loaded.")
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title) + "\n\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("STATUS  "), TaskStatusPill(t.Status))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("PRIORITY"), PriorityBadge(t.Priority))
	fmt.Fprintf(&b, "%s  %s %s\n", StyleDim.Render("DUE     "), OrDash(t.DueDate.String()), DueDate(t.DueDate, t.Status, now))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ASSIGNEE"), t.AssigneeDisplay())
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("TAGS    "), StylePurple.Render(strings.Join(t.Tags, ", ")))
	}
	b.WriteString("\n" + Markdown(t.Description) + "\n\n")

	b.WriteString(Header("Project") + "\n")
	fmt.Fprintf(&b, "%s %s  %s\n", Swatch(t.ProjectColor), Bold(OrDash(t.ProjectName)), ProjectStatusPill(t.ProjectStatus))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("PRIORITY"), PriorityBadge(t.ProjectPriority))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("DATES   "), DateRange(t.ProjectStartDate, t.ProjectEndDate))
	if t.ProjectDescription != "" {
		b.WriteString(Dim(t.ProjectDescription) + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatTaskCounts renders the dashboard summary: the backend's task total
// and, when the task list is loaded, due-date and per-status breakdowns.
func FormatTaskCounts(total int, tasks []domain.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("TOTAL TASKS"), Bold(fmt.Sprintf("%d", total)))
	if len(tasks) == 0 {
		return b.String()
	}
	counts := domain.TaskCounts(tasks)
	done := counts[domain.TaskDone]
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("COMPLETED  "), RenderCompletion(done, len(tasks), 20))
	due := domain.SummarizeDue(tasks, now)
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		StyleDim.Render("ACTIVE"), StyleGreen.Render(fmt.Sprintf("%d", due.Active)),
		StyleDim.Render("DUE TODAY"), StyleYellow.Render(fmt.Sprintf("%d", due.DueToday)),
		StyleDim.Render("OVERDUE"), StyleRed.Render(fmt.Sprintf("%d", due.Overdue)))
	for _, s := range domain.TaskStatuses {
		if counts[s] == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %d\n", TaskStatusPill(s), counts[s])
	}
	return b.String()
}

// FormatTaskTabs renders the tab strip with per-tab counts, highlighting
// active.
func FormatTaskTabs(counts map[domain.TaskTab]int, active domain.TaskTab) string {
	parts := make([]string, 0, len(domain.TaskTabs))
	for _, tab := range domain.TaskTabs {
		label := fmt.Sprintf("%s %d", tab.Label(), counts[tab])
		if tab == active {
			parts = append(parts, StyleHeader.Render("["+label+"]"))
			continue
		}
		parts = append(parts, Dim(label))
	}
	return strings.Join(parts, "  ")
}

// FormatPageFooter renders "Page n of m (k tasks)", or "" for a single page.
func FormatPageFooter(page, pages, total int) string {
	if pages <= 1 {
		return ""
	}
	return Dim(fmt.Sprintf("Page %d of %d (%d tasks)", page, pages, total))
}
