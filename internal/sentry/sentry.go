// Package sentry wraps the Sentry SDK. Every function is a safe no-op until
// Init succeeds with telemetry enabled and a DSN configured.
package sentry

import (
	"runtime"
	"time"

	gosentry "github.com/getsentry/sentry-go"

	"github.com/alexanderramin/taskflow/internal/notice"
)

const flushTimeout = 2 * time.Second

// enabled tracks whether sentry was successfully initialized.
var enabled bool

// Options configures Init.
type Options struct {
	DSN              string
	Version          string
	Environment      string
	TelemetryEnabled bool
	// BeforeSend filters or scrubs events before they leave the process.
	BeforeSend func(*gosentry.Event, *gosentry.EventHint) *gosentry.Event
}

// Init initializes the Sentry SDK. When telemetry is disabled or the DSN is
// empty it does nothing.
func Init(opts Options) error {
	if !opts.TelemetryEnabled || opts.DSN == "" {
		enabled = false
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              opts.DSN,
		Release:          "taskflow@" + opts.Version,
		Environment:      opts.Environment,
		AttachStacktrace: true,
		SampleRate:       1.0,
		BeforeSend:       opts.BeforeSend,
	})
	if err != nil {
		return err
	}

	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("version", opts.Version)
	})

	enabled = true
	return nil
}

// IsEnabled returns whether sentry is active.
func IsEnabled() bool {
	return enabled
}

// Flush waits for buffered events to be sent.
func Flush() {
	if !enabled {
		return
	}
	gosentry.Flush(flushTimeout)
}

// RecoverPanic captures a panic, flushes, then re-panics.
// Usage: defer sentry.RecoverPanic()
func RecoverPanic() {
	if !enabled {
		return
	}
	if err := recover(); err != nil {
		gosentry.CurrentHub().Recover(err)
		gosentry.Flush(flushTimeout)
		panic(err)
	}
}

// CaptureError reports err as an event.
func CaptureError(err error) {
	if !enabled || err == nil {
		return
	}
	gosentry.CaptureException(err)
}

// SetUser tags subsequent events with the logged-in user.
func SetUser(id, email string) {
	if !enabled {
		return
	}
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetUser(gosentry.User{ID: id, Email: email})
	})
}

// NoticeListener forwards notices: errors become events, everything else a
// breadcrumb.
func NoticeListener(n notice.Notice, ok bool) {
	if !enabled || !ok {
		return
	}
	switch n.Severity {
	case notice.Error:
		gosentry.CaptureMessage(n.Message)
	case notice.Warning:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelWarning,
			Category: "notice",
			Message:  n.Message,
		})
	default:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelInfo,
			Category: "notice",
			Message:  n.Message,
		})
	}
}
