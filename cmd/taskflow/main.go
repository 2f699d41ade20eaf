package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/auth"
	"github.com/alexanderramin/taskflow/internal/cli"
	"github.com/alexanderramin/taskflow/internal/config"
	"github.com/alexanderramin/taskflow/internal/db"
	"github.com/alexanderramin/taskflow/internal/notice"
	"github.com/alexanderramin/taskflow/internal/repository"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/alexanderramin/taskflow/internal/sentry"
	"github.com/alexanderramin/taskflow/internal/service"
	"github.com/alexanderramin/taskflow/internal/session"
	"github.com/alexanderramin/taskflow/internal/store"
	"github.com/mattn/go-isatty"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		sentry.CaptureError(err)
		sentry.Flush()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("TASKFLOW_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)

	if err := sentry.Init(sentry.Options{
		DSN:              cfg.SentryDSN,
		Version:          version,
		Environment:      "cli",
		TelemetryEnabled: cfg.TelemetryEnabled,
	}); err != nil {
		logger.Warn("sentry init failed", "error", err)
	}
	defer sentry.Flush()
	defer sentry.RecoverPanic()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cookies := repository.NewSQLiteCookieRepo(database)
	if n, err := cookies.PurgeExpired(context.Background()); err != nil {
		logger.Warn("purging expired cookies", "error", err)
	} else if n > 0 {
		logger.Debug("purged expired cookies", "count", n)
	}

	jar, err := session.NewJar(cookies, cfg.BackendURL, time.Now)
	if err != nil {
		return err
	}

	// Wire transport, shared state and services
	client := api.New(cfg.API(), jar, api.NewLogObserver(logger, os.Stderr))
	notices := notice.NewChannel(notice.WithDefaultDuration(cfg.NoticeDuration()))
	notices.Subscribe(sentry.NoticeListener)

	st := store.New(client, notices, store.WithObserver(store.NewLogObserver(logger, os.Stderr)))
	authStore := auth.NewStore(client, notices, auth.WithLogger(logger))
	obs := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Config:   cfg,
		Logger:   logger,
		Session:  jar,
		Guard:    route.NewGuard(jar),
		Notices:  notices,
		Store:    st,
		Auth:     authStore,
		Accounts: service.NewAuthService(client, st, jar, notices, obs),
		Team:     service.NewTeamService(client, authStore, st, notices, obs),
		Projects: service.NewProjectService(client, st, notices, obs),
		Tasks:    service.NewTaskService(client, st, notices, obs),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
