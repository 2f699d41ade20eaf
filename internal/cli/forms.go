package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// taskflowHuhTheme returns a huh theme matching the formatter palette.
func taskflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(taskflowHuhTheme())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := domain.ParseDate(s)
	return err
}

func loginForm(creds *api.Credentials) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&creds.Email).Validate(required("Email")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password).Validate(required("Password")),
	))
}

func registerForm(reg *api.Registration) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("First name").Value(&reg.FirstName).Validate(required("First name")),
		huh.NewInput().Title("Last name").Value(&reg.LastName).Validate(required("Last name")),
		huh.NewInput().Title("Email").Value(&reg.Email).Validate(required("Email")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&reg.Password).Validate(required("Password")),
		huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&reg.ConfirmPassword),
	))
}

func priorityOptions() []huh.Option[domain.Priority] {
	return []huh.Option[domain.Priority]{
		huh.NewOption("Low", domain.PriorityLow),
		huh.NewOption("Medium", domain.PriorityMedium),
		huh.NewOption("High", domain.PriorityHigh),
	}
}

// projectForm collects a project draft. members offers the team as
// selectable teammates.
func projectForm(d *domain.ProjectDraft, members []domain.TeamMember) *huh.Form {
	colors := make([]huh.Option[string], 0, len(domain.ProjectColors))
	for _, name := range []string{"blue", "green", "orange", "purple", "red", "cyan"} {
		colors = append(colors, huh.NewOption(formatter.Swatch(name)+" "+name, name))
	}
	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&d.Name).Validate(required("Project name")),
		huh.NewText().Title("Description").Value(&d.Description),
		huh.NewInput().Title("Start date").Placeholder("2026-01-31").Value(&d.Start).Validate(validateOptionalDate),
		huh.NewInput().Title("End date").Placeholder("2026-03-31").Value(&d.End).Validate(validateOptionalDate),
		huh.NewSelect[string]().Title("Color").Options(colors...).Value(&d.Color),
		huh.NewSelect[domain.Priority]().Title("Priority").Options(priorityOptions()...).Value(&d.Priority),
	}
	if len(members) > 0 {
		opts := make([]huh.Option[domain.ID], 0, len(members))
		for _, m := range members {
			opts = append(opts, huh.NewOption(m.FullName(), m.UUID))
		}
		fields = append(fields, huh.NewMultiSelect[domain.ID]().Title("Teammates").Options(opts...).Value(&d.Members))
	}
	return newForm(huh.NewGroup(fields...))
}

// taskForm collects a task draft; the project is picked from projects.
func taskForm(d *domain.TaskDraft, projects []domain.Project, tags *string) *huh.Form {
	projectOpts := make([]huh.Option[domain.ID], 0, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.Key()))
	}
	statusOpts := make([]huh.Option[domain.TaskStatus], 0, len(domain.TaskStatuses))
	for _, s := range domain.TaskStatuses {
		statusOpts = append(statusOpts, huh.NewOption(s.Label(), s))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[domain.ID]().Title("Project").Options(projectOpts...).Value(&d.Project),
			huh.NewInput().Title("Title").Value(&d.Title).Validate(required("Title")),
			huh.NewText().Title("Description").Value(&d.Description),
		),
		huh.NewGroup(
			huh.NewSelect[domain.Priority]().Title("Priority").Options(priorityOptions()...).Value(&d.Priority),
			huh.NewSelect[domain.TaskStatus]().Title("Status").Options(statusOpts...).Value(&d.Status),
			huh.NewInput().Title("Due date").Placeholder("2026-02-14").Value(&d.DueDate).Validate(validateOptionalDate),
			huh.NewInput().Title("Tags").Description("Comma separated").Value(tags),
		),
	)
}

// teammatePickerForm picks one member to add to a project.
func teammatePickerForm(id *domain.ID, members []domain.TeamMember) *huh.Form {
	opts := make([]huh.Option[domain.ID], 0, len(members))
	for _, m := range members {
		opts = append(opts, huh.NewOption(m.FullName()+" <"+m.Email+">", m.UUID))
	}
	return newForm(huh.NewGroup(
		huh.NewSelect[domain.ID]().Title("Teammate").Options(opts...).Value(id),
	))
}

func confirmForm(title string, ok *bool) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(ok),
	))
}
