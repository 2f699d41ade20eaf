package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/store"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// ── messages ─────────────────────────────────────────────────────────────────

// fetchedMsg signals that a store trigger settled.
type fetchedMsg struct {
	resource store.ResourceName
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Refresh, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Refresh, k.Quit}}
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next pane")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev pane")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ── model ────────────────────────────────────────────────────────────────────

type pane int

const (
	paneProjects pane = iota
	paneTasks
	paneTeam
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneProjects:
		return "Projects"
	case paneTasks:
		return "Tasks"
	case paneTeam:
		return "Team"
	}
	return ""
}

// dashboardResources are the reads the dashboard loads on start and on
// refresh.
var dashboardResources = []store.ResourceName{
	store.CurrentUser,
	store.TaskCounts,
	store.Projects,
	store.Tasks,
	store.TeamMembers,
}

// dashboardModel renders live store snapshots: every resource shows a
// spinner while its loading flag is set, and the current notice sits in the
// footer.
type dashboardModel struct {
	app     *App
	ctx     context.Context
	keys    dashboardKeys
	help    help.Model
	spinner spinner.Model

	pane     pane
	width    int
	height   int
	quitting bool
}

func newDashboardModel(ctx context.Context, app *App) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StylePurple
	return dashboardModel{
		app:     app,
		ctx:     ctx,
		keys:    newDashboardKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (m dashboardModel) fetch(name store.ResourceName) tea.Cmd {
	return func() tea.Msg {
		_ = m.app.Store.Refresh(m.ctx, name, "")
		return fetchedMsg{resource: name}
	}
}

func (m dashboardModel) fetchAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(dashboardResources))
	for _, name := range dashboardResources {
		cmds = append(cmds, m.fetch(name))
	}
	return tea.Batch(cmds...)
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchAll())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.pane = (m.pane + 1) % paneCount
		case key.Matches(msg, m.keys.Prev):
			m.pane = (m.pane + paneCount - 1) % paneCount
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetchAll()
		}
		return m, nil

	case fetchedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	user, _ := m.app.Store.CurrentUser()
	b.WriteString(formatter.StyleHeader.Render("TASKFLOW") + "  " + formatter.FormatUser(user) + "\n")
	b.WriteString(m.loadingLine() + "\n\n")

	total, _ := m.app.Store.TaskCount()
	tasks, _ := m.app.Store.Tasks()
	b.WriteString(formatter.FormatTaskCounts(total, tasks, m.app.now()) + "\n")

	b.WriteString(m.tabs() + "\n")
	switch m.pane {
	case paneProjects:
		projects, _ := m.app.Store.Projects()
		b.WriteString(formatter.FormatProjectList(projects))
	case paneTasks:
		b.WriteString(formatter.FormatTaskList(tasks, m.app.now()))
	case paneTeam:
		members, _ := m.app.Store.TeamMembers()
		b.WriteString(formatter.FormatTeam(members))
	}
	b.WriteString("\n")

	if n, ok := m.app.Notices.Current(); ok {
		b.WriteString(formatter.NoticeLine(n) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m dashboardModel) loadingLine() string {
	parts := make([]string, 0, len(dashboardResources))
	for _, name := range dashboardResources {
		mark := formatter.StyleGreen.Render("✔")
		if m.app.Store.Loading(name) {
			mark = m.spinner.View()
		}
		parts = append(parts, mark+" "+formatter.Dim(string(name)))
	}
	return strings.Join(parts, "  ")
}

func (m dashboardModel) tabs() string {
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	tabs := make([]string, 0, paneCount)
	for p := pane(0); p < paneCount; p++ {
		label := fmt.Sprintf(" %s ", p)
		if p == m.pane {
			tabs = append(tabs, active.Render(label))
			continue
		}
		tabs = append(tabs, formatter.Dim(label))
	}
	return strings.Join(tabs, "│")
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/dashboard"); err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("the live dashboard needs a terminal; use: taskflow dashboard")
			}
			p := tea.NewProgram(newDashboardModel(cmd.Context(), app), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}
