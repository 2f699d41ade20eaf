package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// FormatCalendar renders one month of tasks grouped by due date.
func FormatCalendar(cal *domain.CalendarMonth, month time.Month, year int, now time.Time) string {
	title := fmt.Sprintf("%s %d", month, year)
	if cal == nil || len(cal.GroupedByDate) == 0 {
		return RenderBox(title, Dim("No tasks due this month."))
	}

	var b strings.Builder
	for _, day := range cal.Days() {
		label := day
		if d, err := domain.ParseDate(day); err == nil {
			label = d.Format("Mon Jan 2")
			if d.Format("2006-01-02") == now.Format("2006-01-02") {
				label = StyleHeader.Render(label + " (today)")
			}
		}
		b.WriteString(Bold(label) + "\n")
		for _, t := range cal.GroupedByDate[day] {
			fmt.Fprintf(&b, "  %s %s %s\n", Swatch(t.ProjectColor), t.Title, TaskStatusPill(t.Status))
		}
	}
	if names := cal.ProjectNames(); len(names) > 0 {
		b.WriteString("\n" + Dim("Projects: "+strings.Join(names, ", ")))
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
