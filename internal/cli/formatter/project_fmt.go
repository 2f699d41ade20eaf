package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders the projects page.
func FormatProjectList(projects []domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.Key()),
			Swatch(p.Color) + " " + Bold(p.Name),
			PriorityBadge(p.Priority),
			DateRange(p.StartDate, p.EndDate),
			fmt.Sprintf("%d", len(p.Teammates)),
		})
	}
	table := Table{
		Headers: []string{"ID", "NAME", "PRIORITY", "DATES", "TEAM"},
		Rows:    rows,
		Empty:   "No projects yet. Create one with: taskflow project add",
	}
	return RenderBox("Projects", table.Render())
}

// FormatProjectDetail renders a project card with its team beside the
// metadata and the description underneath.
func FormatProjectDetail(p *domain.Project, team []domain.TeamMember) string {
	if p == nil {
		return Dim("Project not loaded.")
	}

	var meta strings.Builder
	meta.WriteString(Swatch(p.Color) + " " + StyleBold.Render(p.Name) + "\n\n")
	fmt.Fprintf(&meta, "%s  %s\n", StyleDim.Render("PRIORITY"), PriorityBadge(p.Priority))
	fmt.Fprintf(&meta, "%s  %s\n", StyleDim.Render("DATES   "), DateRange(p.StartDate, p.EndDate))
	if p.Status != "" {
		fmt.Fprintf(&meta, "%s  %s\n", StyleDim.Render("STATUS  "), p.Status)
	}
	fmt.Fprintf(&meta, "%s  %s\n", StyleDim.Render("ID      "), Dim(string(p.Key())))

	members := team
	if len(members) == 0 {
		members = p.Teammates
	}
	var side strings.Builder
	side.WriteString(StyleHeader.Render("TEAM") + "\n")
	if len(members) == 0 {
		side.WriteString(Dim("No teammates on this project."))
	}
	for _, m := range members {
		role := m.ProjectRole
		if role == "" {
			role = m.Role
		}
		fmt.Fprintf(&side, "%s %s\n", StyleFg.Render(m.FullName()), Dim(OrDash(role)))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, meta.String(), "    ", side.String())
	return RenderBox("", top+"\n"+Markdown(p.Description))
}

// FormatComments renders a project's comment thread, oldest first.
func FormatComments(comments []domain.Comment, now time.Time) string {
	if len(comments) == 0 {
		return Dim("No comments yet.")
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Comments (%d)", len(comments))) + "\n")
	for _, c := range comments {
		author := c.Author()
		if author == "" {
			author = "Unknown"
		}
		fmt.Fprintf(&b, "%s %s\n", StyleBold.Render(author), Dim(HumanTimestampFrom(c.CreatedAt, now)))
		fmt.Fprintf(&b, "  %s\n", c.Body)
	}
	return b.String()
}
