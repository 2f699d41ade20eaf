package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly distance between t and now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := daysBetween(now, t)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueDate renders a task due date with urgency coloring. Closed tasks are
// never urgent.
func DueDate(d domain.Date, status domain.TaskStatus, now time.Time) string {
	if d.IsZero() {
		return Dim("--")
	}
	text := RelativeDateFrom(d.Time, now)
	if status.IsClosed() {
		return StyleDim.Render(text)
	}
	days := daysBetween(now, d.Time)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateRange renders "Jan 2 – Mar 4, 2026" style spans for project dates.
func DateRange(start, end domain.Date) string {
	switch {
	case start.IsZero() && end.IsZero():
		return Dim("--")
	case start.IsZero():
		return "until " + end.Format("Jan 2, 2006")
	case end.IsZero():
		return "from " + start.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
}

// HumanTimestampFrom renders a backend timestamp relative to now. Unparseable
// input is returned unchanged.
func HumanTimestampFrom(raw string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id domain.ID) string {
	s := string(id)
	if len(s) > 8 {
		s = s[:8]
	}
	return StyleDim.Render(s)
}

// OrDash returns s, or a dimmed "--" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
