package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskAddCmd(app),
		newTaskCountsCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var filter domain.TaskFilter
	var tab, priority, status string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if filter.Tab, err = domain.ParseTaskTab(tab); err != nil {
				return err
			}
			if priority != "" {
				if filter.Priority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if status != "" {
				if filter.Status, err = domain.ParseTaskStatus(status); err != nil {
					return err
				}
			}
			if _, err := navigate(app, "/tasks"); err != nil {
				return err
			}
			return showTasks(cmd, app, filter, page)
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "all", "Due-date tab: all, today, upcoming or overdue")
	cmd.Flags().StringVar(&filter.Project, "project", "", "Only tasks in this project (by name)")
	cmd.Flags().StringVar(&priority, "priority", "", "Only tasks with this priority")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Only tasks whose title contains this text")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show, 10 tasks per page")

	return cmd
}

// showTasks loads the task list and renders the page of it selected by
// filter.
func showTasks(cmd *cobra.Command, app *App, filter domain.TaskFilter, page int) error {
	out := cmd.OutOrStdout()
	now := app.now()
	return withNotices(cmd, app, "Loading tasks", func(ctx context.Context) error {
		app.Store.FetchTasks(ctx)
		tasks, _ := app.Store.Tasks()

		matched := domain.FilterTasks(tasks, filter, now)
		shown, pages := domain.Page(matched, page, domain.TasksPerPage)

		fmt.Fprintln(out, formatter.FormatTaskTabs(domain.TabCounts(tasks, now), filter.Tab))
		fmt.Fprintln(out, formatter.FormatTaskList(shown, now))
		if footer := formatter.FormatPageFooter(max(page, 1), pages, len(matched)); footer != "" {
			fmt.Fprintln(out, footer)
		}
		return nil
	})
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openPage(cmd, app, "/tasks/"+args[0])
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var draft domain.TaskDraft
	var project, priority, status, assignee, tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/tasks/add"); err != nil {
				return err
			}
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			s, err := domain.ParseTaskStatus(status)
			if err != nil {
				return err
			}
			draft.Project = domain.ID(project)
			draft.Priority = p
			draft.Status = s
			draft.Assignee = domain.ID(assignee)

			if draft.Title == "" && app.interactive() {
				app.Store.FetchProjects(cmd.Context())
				projects, _ := app.Store.Projects()
				if err := taskForm(&draft, projects, &tags).Run(); err != nil {
					return err
				}
			}
			draft.Tags = strings.Split(tags, ",")

			return withNotices(cmd, app, "Creating task", func(ctx context.Context) error {
				return app.Tasks.Create(ctx, draft)
			})
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&project, "project", "", "Project id")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringVar(&status, "status", "", "Status, e.g. todo, in_progress, review, done")
	cmd.Flags().StringVar(&draft.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee uuid")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}

func newTaskCountsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show how many tasks you have",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/dashboard"); err != nil {
				return err
			}
			return withNotices(cmd, app, "Counting tasks", func(ctx context.Context) error {
				parallel(ctx, app.Store.FetchTaskCounts, app.Store.FetchTasks)
				total, _ := app.Store.TaskCount()
				tasks, _ := app.Store.Tasks()
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskCounts(total, tasks, app.now()))
				return nil
			})
		},
	}
}

func showCalendar(cmd *cobra.Command, app *App, month time.Month, year int) error {
	return withNotices(cmd, app, "Loading calendar", func(ctx context.Context) error {
		cal, err := app.Tasks.Calendar(ctx, int(month), year)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(cal, month, year, app.now()))
		return nil
	})
}

func newCalendarCmd(app *App) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks due in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/calendar"); err != nil {
				return err
			}
			now := app.now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d (want 1-12)", month)
			}
			return showCalendar(cmd, app, time.Month(month), year)
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: this month)")
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: this year)")

	return cmd
}
