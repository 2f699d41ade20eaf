package domain

import (
	"fmt"
	"strings"
)

// ValidationError carries a user-facing message for a rejected draft.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

type Project struct {
	UUID        ID           `json:"uuid"`
	ID          ID           `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
	Priority    Priority     `json:"priority"`
	Status      string       `json:"status,omitempty"`
	StartDate   Date         `json:"start_date"`
	EndDate     Date         `json:"end_date"`
	Members     []ID         `json:"members,omitempty"`
	CreatorID   ID           `json:"creator_id,omitempty"`
	Teammates   []TeamMember `json:"teammates,omitempty"`
}

// Key returns the identifier used in project URLs: the uuid when present,
// otherwise the numeric id.
func (p Project) Key() ID {
	if p.UUID != "" {
		return p.UUID
	}
	return p.ID
}

// TeammateIDs returns the uuids of members already on the project.
func (p Project) TeammateIDs() []ID {
	ids := make([]ID, 0, len(p.Teammates))
	for _, m := range p.Teammates {
		ids = append(ids, m.UUID)
	}
	return ids
}

// AvailableTeammates returns the members of members not yet on p.
func AvailableTeammates(members []TeamMember, p *Project) []TeamMember {
	taken := make(map[ID]bool)
	if p != nil {
		for _, id := range p.TeammateIDs() {
			taken[id] = true
		}
	}
	out := make([]TeamMember, 0, len(members))
	for _, m := range members {
		if !taken[m.UUID] {
			out = append(out, m)
		}
	}
	return out
}

// ProjectColors is the palette offered when creating a project.
var ProjectColors = map[string]string{
	"blue":   "#3B82F6",
	"green":  "#10B981",
	"orange": "#F97316",
	"purple": "#8B5CF6",
	"red":    "#EF4444",
	"cyan":   "#06B6D4",
}

// ProjectDraft is the payload for creating a project.
type ProjectDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Color       string   `json:"color"`
	Priority    Priority `json:"priority"`
	Members     []ID     `json:"members"`
}

// Validate checks the draft in the order the create form reports problems.
// The returned error message is suitable for showing to the user.
func (d *ProjectDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("Project name is required.")
	}
	var start, end Date
	if d.Start != "" {
		s, err := ParseDate(d.Start)
		if err != nil {
			return invalid(fmt.Sprintf("Start date %q is not a valid date.", d.Start))
		}
		start = s
	}
	if d.End != "" {
		e, err := ParseDate(d.End)
		if err != nil {
			return invalid(fmt.Sprintf("End date %q is not a valid date.", d.End))
		}
		end = e
	}
	if !start.IsZero() && !end.IsZero() && start.After(end.Time) {
		return invalid("End date must be after start date.")
	}
	if d.Start == "" {
		return invalid("Start date is required.")
	}
	if d.End == "" {
		return invalid("End date is required.")
	}
	return nil
}

// ApplyDefaults fills color and priority the way the create form does.
func (d *ProjectDraft) ApplyDefaults() {
	if d.Color == "" {
		d.Color = "blue"
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Members == nil {
		d.Members = []ID{}
	}
}
