package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/notice"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the style notices of the given severity render in.
func SeverityStyle(sev notice.Severity) lipgloss.Style {
	switch sev {
	case notice.Success:
		return StyleGreen
	case notice.Error:
		return StyleRed
	case notice.Warning:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// NoticeLine renders a notice as a single status line, e.g. "✔ Project Created".
func NoticeLine(n notice.Notice) string {
	icon := "ℹ"
	switch n.Severity {
	case notice.Success:
		icon = "✔"
	case notice.Error:
		icon = "✖"
	case notice.Warning:
		icon = "▲"
	}
	return SeverityStyle(n.Severity).Render(fmt.Sprintf("%s %s", icon, n.Message))
}

// PriorityBadge renders a task or project priority.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ High")
	case domain.PriorityMedium:
		return StyleYellow.Render("■ Medium")
	case domain.PriorityLow:
		return StyleGreen.Render("▼ Low")
	case "":
		return StyleDim.Render("--")
	default:
		return StyleDim.Render(string(p))
	}
}

// TaskStatusPill returns a colored status indicator for a task.
func TaskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskTodo:
		return StyleBlue.Render("○ " + s.Label())
	case domain.TaskInProgress:
		return StyleGreen.Render("● " + s.Label())
	case domain.TaskReview:
		return StylePurple.Render("◐ " + s.Label())
	case domain.TaskDone:
		return StyleDim.Render("✔ " + s.Label())
	case domain.TaskBlocked:
		return StyleRed.Render("✖ " + s.Label())
	case domain.TaskOnHold:
		return StyleYellow.Render("‖ " + s.Label())
	case domain.TaskCancelled:
		return StyleDim.Render("⊘ " + s.Label())
	default:
		return StyleDim.Render(string(s))
	}
}

// ProjectStatusPill renders the numeric project state carried on task detail.
func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectActive:
		return StyleGreen.Render("● " + s.String())
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ " + s.String())
	case domain.ProjectPending:
		return StyleYellow.Render("○ " + s.String())
	default:
		return StyleDim.Render(s.String())
	}
}

// Swatch renders a color block for a project color name or hex value.
func Swatch(color string) string {
	hex := color
	if v, ok := domain.ProjectColors[strings.ToLower(color)]; ok {
		hex = v
	}
	if !strings.HasPrefix(hex, "#") {
		return StyleDim.Render("■")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
