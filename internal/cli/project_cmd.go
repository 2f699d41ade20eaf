package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectCommentsCmd(app),
		newProjectCommentCmd(app),
		newProjectAddTeamCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var filter domain.ProjectFilter
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := domain.ParseProjectSort(sortBy)
			if err != nil {
				return err
			}
			if _, err := navigate(app, "/projects"); err != nil {
				return err
			}
			return showProjects(cmd, app, filter, by)
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Only projects whose name contains this text")
	cmd.Flags().StringVar(&filter.Status, "status", "all", "Only projects with this status")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "Sort by name or deadline")

	return cmd
}

func showProjects(cmd *cobra.Command, app *App, filter domain.ProjectFilter, by domain.ProjectSort) error {
	return withNotices(cmd, app, "Loading projects", func(ctx context.Context) error {
		app.Store.FetchProjects(ctx)
		projects, _ := app.Store.Projects()
		shown := domain.SortProjects(domain.FilterProjects(projects, filter), by)
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(shown))
		return nil
	})
}

func newProjectShowCmd(app *App) *cobra.Command {
	var withComments bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openPage(cmd, app, "/projects/"+args[0]); err != nil {
				return err
			}
			if !withComments {
				return nil
			}
			return showComments(cmd, app, domain.ID(args[0]))
		},
	}

	cmd.Flags().BoolVar(&withComments, "comments", false, "Also show the comment thread")

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var draft domain.ProjectDraft
	var priority string
	var members []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/projects/add"); err != nil {
				return err
			}
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			draft.Priority = p
			for _, m := range members {
				draft.Members = append(draft.Members, domain.ID(m))
			}

			if draft.Name == "" && app.interactive() {
				app.Store.FetchTeamMembers(cmd.Context())
				team, _ := app.Store.TeamMembers()
				if err := projectForm(&draft, team).Run(); err != nil {
					return err
				}
			}

			return withNotices(cmd, app, "Creating project", func(ctx context.Context) error {
				return app.Projects.Create(ctx, draft)
			})
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&draft.Start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.End, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Color, "color", "", "Color: blue, green, orange, purple, red or cyan")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringSliceVar(&members, "member", nil, "Teammate uuid (repeatable)")

	return cmd
}

func showComments(cmd *cobra.Command, app *App, projectID domain.ID) error {
	return withNotices(cmd, app, "Loading comments", func(ctx context.Context) error {
		comments, err := app.Projects.Comments(ctx, projectID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatComments(comments, app.now()))
		return nil
	})
}

func newProjectCommentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <project-id>",
		Short: "Show a project's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/projects/"+args[0]); err != nil {
				return err
			}
			return showComments(cmd, app, domain.ID(args[0]))
		},
	}
}

func newProjectCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <project-id> <text...>",
		Short: "Post a comment on a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/projects/"+args[0]); err != nil {
				return err
			}
			body := strings.Join(args[1:], " ")
			return withNotices(cmd, app, "Posting comment", func(ctx context.Context) error {
				c, err := app.Projects.PostComment(ctx, domain.ID(args[0]), body)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatComments([]domain.Comment{*c}, app.now()))
				return nil
			})
		},
	}
}

func newProjectAddTeamCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-team <project-id> <team-id>",
		Short: "Add a team to a project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/projects/"+args[0]); err != nil {
				return err
			}
			projectID := domain.ID(args[0])
			var teamID domain.ID
			if len(args) == 2 {
				teamID = domain.ID(args[1])
			} else if app.interactive() {
				parallel(cmd.Context(),
					func(ctx context.Context) { app.Store.FetchProjectDetail(ctx, projectID) },
					app.Store.FetchTeamMembers,
				)
				project, _ := app.Store.ProjectDetail()
				members, _ := app.Store.TeamMembers()
				available := domain.AvailableTeammates(members, project)
				if len(available) == 0 {
					return fmt.Errorf("everyone on your team is already on this project")
				}
				if err := teammatePickerForm(&teamID, available).Run(); err != nil {
					return err
				}
			}
			return withNotices(cmd, app, "Adding team", func(ctx context.Context) error {
				return app.Projects.AddTeam(ctx, projectID, teamID)
			})
		},
	}
}
