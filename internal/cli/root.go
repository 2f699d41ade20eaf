package cli

import (
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/auth"
	"github.com/alexanderramin/taskflow/internal/config"
	"github.com/alexanderramin/taskflow/internal/notice"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/alexanderramin/taskflow/internal/service"
	"github.com/alexanderramin/taskflow/internal/session"
	"github.com/alexanderramin/taskflow/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds everything CLI commands need: the shared stores, the write
// services and the navigation guard.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session session.Store
	Guard   *route.Guard
	Notices *notice.Channel

	Store *store.Store
	Auth  *auth.Store

	Accounts service.AuthService
	Team     service.TeamService
	Projects service.ProjectService
	Tasks    service.TaskService

	// IsInteractive reports whether stdin is a terminal. Forms, spinners and
	// the dashboard UI are only used when it returns true.
	IsInteractive func() bool
	// Now is the clock used for relative dates; nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "taskflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Terminal client for TaskFlow projects, tasks and teams",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetGlobalNormalizationFunc(dashedFlags)

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newOpenCmd(app),
		newDashboardCmd(app),
		newUICmd(app),
		newTeamCmd(app),
		newInviteCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newCalendarCmd(app),
		newConfigCmd(app),
	)

	return root
}

// dashedFlags accepts --first_name as well as --first-name.
func dashedFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
