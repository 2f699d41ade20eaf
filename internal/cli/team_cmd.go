package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage your team",
	}

	cmd.AddCommand(
		newTeamListCmd(app),
		newTeamInviteCmd(app),
		newTeamUpdateCmd(app),
		newTeamRemoveCmd(app),
	)

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teammates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return openPage(cmd, app, "/teams")
		},
	}
}

func newTeamInviteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite someone to your team by email",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/teams"); err != nil {
				return err
			}
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return withNotices(cmd, app, "Sending invitation", func(ctx context.Context) error {
				return app.Team.Invite(ctx, email)
			})
		},
	}
}

func newTeamUpdateCmd(app *App) *cobra.Command {
	var upd api.MemberUpdate

	cmd := &cobra.Command{
		Use:   "update <member-id>",
		Short: "Change a teammate's alias or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/teams"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("alias") && !cmd.Flags().Changed("role") {
				return errors.New("nothing to update: pass --alias and/or --role")
			}
			return withNotices(cmd, app, "Updating teammate", func(ctx context.Context) error {
				return app.Team.Update(ctx, domain.ID(args[0]), upd)
			})
		},
	}

	cmd.Flags().StringVar(&upd.Alias, "alias", "", "Display alias")
	cmd.Flags().StringVar(&upd.Role, "role", "", "Team role")

	return cmd
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <member-id>",
		Short: "Remove a teammate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/teams"); err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return errors.New("refusing to remove a teammate without --yes")
				}
				if err := confirmForm(fmt.Sprintf("Remove %s from the team?", args[0]), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			return withNotices(cmd, app, "Removing teammate", func(ctx context.Context) error {
				return app.Team.Remove(ctx, domain.ID(args[0]))
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newInviteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Respond to a team invitation",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <token>",
			Short: "Show who invited you",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return openPage(cmd, app, invitePath(args[0]))
			},
		},
		&cobra.Command{
			Use:   "accept <token>",
			Short: "Join the inviting team",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var dest string
				err := withNotices(cmd, app, "Joining team", func(ctx context.Context) error {
					if _, ok := app.Session.Token(); ok {
						app.Auth.FetchCurrentUser(ctx)
					}
					var err error
					dest, err = app.Team.Accept(ctx, args[0])
					return err
				})
				if loginRequired(err) {
					return fmt.Errorf("%w (sign in with: taskflow login --redirect %q)", err, invitePath(args[0]))
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", dest)
				return nil
			},
		},
		&cobra.Command{
			Use:   "decline <token>",
			Short: "Decline the invitation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var dest string
				err := withNotices(cmd, app, "Declining", func(ctx context.Context) error {
					var err error
					dest, err = app.Team.Decline(ctx, args[0])
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", dest)
				return nil
			},
		},
	)

	return cmd
}

func invitePath(token string) string {
	return "/team/invite/" + token
}
