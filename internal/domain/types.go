package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is a backend identifier. The API returns some ids as numbers and
// others as uuid strings; both decode into the same string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a calendar date that tolerates the mix of plain dates and RFC3339
// timestamps the backend emits. The zero value means "not set".
type Date struct {
	time.Time
}

// ParseDate parses YYYY-MM-DD, "YYYY-MM-DD hh:mm:ss" or an RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{dateLayout, dateTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	// An unreadable date decodes as unset rather than failing the whole payload.
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

// String renders the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

type User struct {
	UUID      ID     `json:"uuid"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// Initials returns up to two initials, falling back to "TF".
func (u *User) Initials() string {
	if u == nil {
		return "TF"
	}
	var out []rune
	for _, s := range []string{u.FirstName, u.LastName} {
		for _, r := range s {
			out = append(out, r)
			break
		}
	}
	if len(out) == 0 {
		return "TF"
	}
	return string(out)
}

type TeamMember struct {
	UUID        ID     `json:"uuid"`
	FirstName   string `json:"fname"`
	LastName    string `json:"lname"`
	Alias       string `json:"alias"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	TeamRole    string `json:"team_role,omitempty"`
	ProjectRole string `json:"project_role,omitempty"`
	Status      string `json:"status,omitempty"`
	JoinedAt    Date   `json:"joined_at"`
}

func (m TeamMember) FullName() string {
	return joinName(m.FirstName, m.LastName)
}

// Active reports whether the member has accepted their invitation.
func (m TeamMember) Active() bool {
	return m.Status == "active"
}

type Comment struct {
	ID        ID     `json:"id"`
	Body      string `json:"comment"`
	UserUUID  ID     `json:"user_uuid"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	CreatedAt string `json:"created_at"`
}

func (c Comment) Author() string {
	return joinName(c.FirstName, c.LastName)
}

// Invite describes a pending team invitation looked up by token.
type Invite struct {
	Inviter       string `json:"inviter"`
	TeamName      string `json:"team_name,omitempty"`
	TeammateCount int    `json:"teammate_count"`
	ExpiresAt     string `json:"expires_at"`
}

// ExpiresIn renders the remaining validity, e.g. "2 hours 5 mins".
func (i Invite) ExpiresIn(now time.Time) string {
	if i.ExpiresAt == "" {
		return "Unknown"
	}
	exp, err := time.Parse(time.RFC3339, i.ExpiresAt)
	if err != nil {
		return "Unknown"
	}
	left := exp.Sub(now)
	if left <= 0 {
		return "Expired"
	}
	hours := int(left.Hours())
	mins := int(left.Minutes()) % 60
	if hours > 0 {
		s := fmt.Sprintf("%d hour%s", hours, plural(hours))
		if mins > 0 {
			s += fmt.Sprintf(" %d min%s", mins, plural(mins))
		}
		return s
	}
	return fmt.Sprintf("%d minute%s", mins, plural(mins))
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
