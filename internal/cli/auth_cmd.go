package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/alexanderramin/taskflow/internal/sentry"
	"github.com/spf13/cobra"
)

// guestOnly resolves a login or register page. It returns false when a
// session already exists, after telling the user where to continue.
func guestOnly(cmd *cobra.Command, app *App, page, redirect string) (bool, error) {
	target := page
	if redirect != "" {
		target = page + "?redirect=" + url.QueryEscape(redirect)
	}
	d, err := navigate(app, target)
	if err != nil {
		return false, err
	}
	if d.Redirect != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Already signed in. Continue at %s\n", d.Redirect)
		return false, nil
	}
	return true, nil
}

// identify tags error reports with the signed-in user. The lookup is quiet:
// a failure leaves reports untagged.
func identify(ctx context.Context, app *App) {
	app.Store.FetchCurrentUser(ctx)
	if u, _ := app.Store.CurrentUser(); u != nil {
		sentry.SetUser(string(u.UUID), u.Email)
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var creds api.Credentials
	var redirect string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to TaskFlow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := guestOnly(cmd, app, route.LoginPath, redirect)
			if err != nil || !ok {
				return err
			}
			if (creds.Email == "" || creds.Password == "") && app.interactive() {
				if err := loginForm(&creds).Run(); err != nil {
					return err
				}
			}
			if creds.Email == "" || creds.Password == "" {
				return errors.New("--email and --password are required")
			}

			var dest string
			err = withNotices(cmd, app, "Signing in", func(ctx context.Context) error {
				var err error
				dest, err = app.Accounts.Login(ctx, creds, redirect)
				if err == nil {
					identify(ctx, app)
				}
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in. Continue at %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&redirect, "redirect", "", "Page to continue at after signing in")

	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg api.Registration
	var redirect string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a TaskFlow account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := guestOnly(cmd, app, "/register", redirect)
			if err != nil || !ok {
				return err
			}
			if reg.Email == "" && app.interactive() {
				if err := registerForm(&reg).Run(); err != nil {
					return err
				}
			}
			if reg.Email == "" || reg.Password == "" {
				return errors.New("--email and --password are required")
			}

			var dest string
			err = withNotices(cmd, app, "Creating account", func(ctx context.Context) error {
				var err error
				dest, err = app.Accounts.Register(ctx, reg, redirect)
				if err == nil {
					identify(ctx, app)
				}
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Continue at %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password")
	cmd.Flags().StringVar(&reg.ConfirmPassword, "confirm-password", "", "Password again")
	cmd.Flags().StringVar(&redirect, "redirect", "", "Page to continue at after registering")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dest string
			err := withNotices(cmd, app, "Signing out", func(ctx context.Context) error {
				var err error
				dest, err = app.Accounts.Logout(ctx)
				return err
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", dest)
			return err
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := navigate(app, "/settings"); err != nil {
				return err
			}
			return withNotices(cmd, app, "", func(ctx context.Context) error {
				app.Auth.FetchCurrentUser(ctx)
				u := app.Auth.CurrentUser()
				if u == nil {
					return errors.New("could not load the signed-in user")
				}
				sentry.SetUser(string(u.UUID), u.Email)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
				return nil
			})
		},
	}
}
