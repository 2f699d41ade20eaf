package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// FormatTeam renders the team page.
func FormatTeam(members []domain.TeamMember) string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		status := StyleGreen.Render("● Active")
		if !m.Active() {
			status = StyleYellow.Render("○ " + OrDash(titleCase(m.Status)))
		}
		rows = append(rows, []string{
			TruncID(m.UUID),
			Bold(OrDash(m.FullName())),
			OrDash(m.Alias),
			m.Email,
			OrDash(m.Role),
			status,
		})
	}
	table := Table{
		Headers: []string{"ID", "NAME", "ALIAS", "EMAIL", "ROLE", "STATUS"},
		Rows:    rows,
		Empty:   "No teammates yet. Invite one with: taskflow team invite <email>",
	}
	return RenderBox("Team", table.Render())
}

// FormatInvite renders a pending invitation.
func FormatInvite(inv *domain.Invite, now time.Time) string {
	if inv == nil {
		return Dim("Invitation not found.")
	}
	var b strings.Builder
	team := inv.TeamName
	if team == "" {
		team = "their team"
	}
	fmt.Fprintf(&b, "%s invited you to join %s.\n\n", Bold(OrDash(inv.Inviter)), Bold(team))
	fmt.Fprintf(&b, "%s  %d\n", StyleDim.Render("TEAMMATES"), inv.TeammateCount)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("EXPIRES  "), inv.ExpiresIn(now))
	return RenderBox("Team invitation", strings.TrimRight(b.String(), "\n"))
}

// FormatUser renders the signed-in user.
func FormatUser(u *domain.User) string {
	if u == nil {
		return Dim("Not signed in.")
	}
	return fmt.Sprintf("%s %s %s",
		StylePurple.Render("["+u.Initials()+"]"),
		Bold(OrDash(u.FullName())),
		Dim("<"+u.Email+">"))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
