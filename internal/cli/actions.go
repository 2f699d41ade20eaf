package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/taskflow/internal/cli/formatter"
	"github.com/alexanderramin/taskflow/internal/notice"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/spf13/cobra"
)

// noticeError is returned when an action raised an error notice. The notice
// text is the message; the action's own error, if any, is kept for errors.Is.
type noticeError struct {
	msg string
	err error
}

func (e *noticeError) Error() string { return e.msg }
func (e *noticeError) Unwrap() error { return e.err }

// withNotices runs fn while collecting the notices it raises. Non-error
// notices are printed once fn returns; the first error notice becomes the
// command's error.
func withNotices(cmd *cobra.Command, app *App, label string, fn func(ctx context.Context) error) error {
	var (
		mu    sync.Mutex
		shown []notice.Notice
	)
	unsubscribe := app.Notices.Subscribe(func(n notice.Notice, ok bool) {
		if !ok {
			return
		}
		mu.Lock()
		shown = append(shown, n)
		mu.Unlock()
	})

	stop := func() {}
	if app.interactive() && label != "" {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), label)
	}
	err := fn(cmd.Context())
	stop()
	unsubscribe()

	mu.Lock()
	defer mu.Unlock()
	var failure *notice.Notice
	for i, n := range shown {
		if n.Severity == notice.Error {
			if failure == nil {
				failure = &shown[i]
			}
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.NoticeLine(n))
	}
	if failure != nil {
		return &noticeError{msg: failure.Message, err: err}
	}
	return err
}

// navigate applies the route guards to target. A protected page without a
// session fails with route.ErrLoginRequired. A guest-only page with a session
// returns the decision so the caller can report where to continue.
func navigate(app *App, target string) (route.Decision, error) {
	d, err := app.Guard.Resolve(target)
	if err != nil {
		return d, err
	}
	if err := d.Err(); err != nil {
		return d, fmt.Errorf("%w (sign in with: taskflow login --redirect %q)", err, target)
	}
	return d, nil
}

// loginRequired reports whether err came from a guarded page or action.
func loginRequired(err error) bool {
	return errors.Is(err, route.ErrLoginRequired)
}

// parallel runs every fn concurrently and waits for all of them.
func parallel(ctx context.Context, fns ...func(context.Context)) {
	var wg sync.WaitGroup
	for _, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}
	wg.Wait()
}
