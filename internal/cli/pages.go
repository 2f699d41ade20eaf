package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/spf13/cobra"
)

// openPage guards target and renders the page it resolves to.
func openPage(cmd *cobra.Command, app *App, target string) error {
	d, err := navigate(app, target)
	if err != nil {
		return err
	}
	if d.Redirect != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Already signed in. Continue at %s\n", d.Redirect)
		return nil
	}
	return renderPage(cmd, app, d.Match)
}

func renderPage(cmd *cobra.Command, app *App, m route.Match) error {
	out := cmd.OutOrStdout()
	now := app.now()

	switch m.Page {
	case route.Landing:
		fmt.Fprintln(out, formatter.Header("TaskFlow"))
		fmt.Fprintln(out, "Plan projects, track tasks and work with your team.")
		fmt.Fprintln(out, formatter.Dim("Sign in with: taskflow login    New here? taskflow register"))
		return nil

	case route.Login, route.Register:
		fmt.Fprintln(out, formatter.Dim("Sign in with: taskflow login    New here? taskflow register"))
		return nil

	case route.Dashboard:
		return withNotices(cmd, app, "Loading dashboard", func(ctx context.Context) error {
			parallel(ctx,
				app.Auth.FetchCurrentUser,
				app.Store.FetchTaskCounts,
				app.Store.FetchProjects,
				app.Store.FetchTasks,
			)
			total, _ := app.Store.TaskCount()
			projects, _ := app.Store.Projects()
			tasks, _ := app.Store.Tasks()
			fmt.Fprintln(out, formatter.FormatUser(app.Auth.CurrentUser()))
			fmt.Fprintln(out, formatter.FormatTaskCounts(total, tasks, now))
			fmt.Fprintln(out, formatter.FormatProjectList(projects))
			fmt.Fprintln(out, formatter.FormatTaskList(tasks, now))
			return nil
		})

	case route.Teams:
		return withNotices(cmd, app, "Loading team", func(ctx context.Context) error {
			app.Store.FetchTeamMembers(ctx)
			members, _ := app.Store.TeamMembers()
			fmt.Fprintln(out, formatter.FormatTeam(members))
			return nil
		})

	case route.Calendar:
		return showCalendar(cmd, app, now.Month(), now.Year())

	case route.Settings:
		return withNotices(cmd, app, "Loading profile", func(ctx context.Context) error {
			app.Store.FetchCurrentUser(ctx)
			user, _ := app.Store.CurrentUser()
			fmt.Fprintln(out, formatter.FormatUser(user))
			data, err := app.Config.YAML()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Header("Settings"))
			fmt.Fprint(out, string(data))
			return nil
		})

	case route.Projects:
		return showProjects(cmd, app, domain.ProjectFilter{}, domain.SortByName)

	case route.AddProject:
		fmt.Fprintln(out, formatter.Dim("Create a project with: taskflow project add --name <name> --start <date> --end <date>"))
		return nil

	case route.ProjectDetail:
		id := domain.ID(m.Params["projectId"])
		return withNotices(cmd, app, "Loading project", func(ctx context.Context) error {
			parallel(ctx,
				func(ctx context.Context) { app.Store.FetchProjectDetail(ctx, id) },
				func(ctx context.Context) { app.Store.FetchProjectTeam(ctx, id) },
			)
			project, _ := app.Store.ProjectDetail()
			team, _ := app.Store.ProjectTeam()
			fmt.Fprintln(out, formatter.FormatProjectDetail(project, team))
			return nil
		})

	case route.Tasks:
		return showTasks(cmd, app, domain.TaskFilter{}, 1)

	case route.AddTask:
		fmt.Fprintln(out, formatter.Dim("Create a task with: taskflow task add --project <id> --title <title>"))
		return nil

	case route.TaskDetail:
		id := domain.ID(m.Params["taskId"])
		return withNotices(cmd, app, "Loading task", func(ctx context.Context) error {
			app.Store.FetchTaskDetail(ctx, id)
			task, _ := app.Store.TaskDetail()
			fmt.Fprintln(out, formatter.FormatTaskDetail(task, now))
			return nil
		})

	case route.TeamInvite:
		token := m.Params["token"]
		return withNotices(cmd, app, "Loading invitation", func(ctx context.Context) error {
			inv, err := app.Team.GetInvite(ctx, token)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatInvite(inv, now))
			fmt.Fprintln(out, formatter.Dim("Respond with: taskflow invite accept "+token+"  or  taskflow invite decline "+token))
			return nil
		})
	}

	return fmt.Errorf("page not found: %s", m.Pattern)
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a page by its web path, e.g. /tasks/42",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openPage(cmd, app, args[0])
		},
	}
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task counts, projects and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return openPage(cmd, app, "/dashboard")
		},
	}
}
