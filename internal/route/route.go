// Package route maps client paths to pages and applies the session guards:
// protected pages need a session token, login and register bounce a
// logged-in user onward.
package route

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrLoginRequired is returned when a protected page is requested without a
// session.
var ErrLoginRequired = errors.New("login required")

// DefaultDestination is where a logged-in user lands with no redirect.
const DefaultDestination = "/dashboard"

const LoginPath = "/login"

type Access int

const (
	// Open pages render for everyone.
	Open Access = iota
	// GuestOnly pages redirect a logged-in user.
	GuestOnly
	// Protected pages redirect an anonymous user to login.
	Protected
)

type Page string

const (
	Landing       Page = "landing"
	Login         Page = "login"
	Register      Page = "register"
	TeamInvite    Page = "team_invite"
	Dashboard     Page = "dashboard"
	Teams         Page = "teams"
	Calendar      Page = "calendar"
	Settings      Page = "settings"
	Projects      Page = "projects"
	AddProject    Page = "add_project"
	ProjectDetail Page = "project_detail"
	Tasks         Page = "tasks"
	AddTask       Page = "add_task"
	TaskDetail    Page = "task_detail"
	NotFound      Page = "not_found"
)

type Route struct {
	Pattern string
	Page    Page
	Access  Access
}

// Table lists every client route.
var Table = []Route{
	{"/", Landing, Open},
	{"/login", Login, GuestOnly},
	{"/register", Register, GuestOnly},
	{"/team/invite/{token}", TeamInvite, Open},
	{"/dashboard", Dashboard, Protected},
	{"/teams", Teams, Protected},
	{"/calendar", Calendar, Protected},
	{"/settings", Settings, Protected},
	{"/projects", Projects, Protected},
	{"/projects/add", AddProject, Protected},
	{"/projects/{projectId}", ProjectDetail, Protected},
	{"/tasks", Tasks, Protected},
	{"/tasks/add", AddTask, Protected},
	{"/tasks/{taskId}", TaskDetail, Protected},
}

// Match is a resolved route with its path parameters.
type Match struct {
	Route
	Params map[string]string
}

var (
	mux       = newMux()
	byPattern = indexTable()
)

func newMux() *chi.Mux {
	m := chi.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, r := range Table {
		m.Get(r.Pattern, noop)
	}
	return m
}

func indexTable() map[string]Route {
	out := make(map[string]Route, len(Table))
	for _, r := range Table {
		out[r.Pattern] = r
	}
	return out
}

// Lookup finds the route for path. Unknown paths match NotFound, which is
// open.
func Lookup(path string) Match {
	rctx := chi.NewRouteContext()
	if !mux.Match(rctx, http.MethodGet, path) {
		return Match{Route: Route{Pattern: path, Page: NotFound, Access: Open}}
	}
	r, ok := byPattern[rctx.RoutePattern()]
	if !ok {
		return Match{Route: Route{Pattern: path, Page: NotFound, Access: Open}}
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Route: r, Params: params}
}

// TokenSource reports whether a session token is present.
type TokenSource interface {
	Token() (string, bool)
}

// Decision is the outcome of guarding a navigation. When Redirect is set the
// caller navigates there instead of rendering Match.
type Decision struct {
	Match    Match
	Redirect string
}

// Err returns ErrLoginRequired when the decision sends the user to login.
func (d Decision) Err() error {
	if d.Match.Access == Protected && d.Redirect != "" {
		return fmt.Errorf("%w: %s", ErrLoginRequired, d.Match.Pattern)
	}
	return nil
}

type Guard struct {
	tokens TokenSource
}

func NewGuard(tokens TokenSource) *Guard {
	return &Guard{tokens: tokens}
}

// Resolve applies the guards to target, a path with optional query.
func (g *Guard) Resolve(target string) (Decision, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Decision{}, fmt.Errorf("parsing target %q: %w", target, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	m := Lookup(path)
	_, loggedIn := g.tokens.Token()

	switch {
	case m.Access == Protected && !loggedIn:
		return Decision{Match: m, Redirect: LoginURL(u.RequestURI())}, nil
	case m.Access == GuestOnly && loggedIn:
		return Decision{Match: m, Redirect: RedirectTarget(u.Query().Get("redirect"))}, nil
	}
	return Decision{Match: m}, nil
}

// LoginURL builds the login location that returns to target afterwards.
func LoginURL(target string) string {
	return LoginPath + "?redirect=" + encodeComponent(target)
}

// RedirectTarget returns where to go after authenticating. Empty or
// non-local values fall back to DefaultDestination.
func RedirectTarget(redirect string) string {
	if decoded, err := url.PathUnescape(redirect); err == nil && strings.Contains(redirect, "%") {
		redirect = decoded
	}
	if redirect == "" || !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		return DefaultDestination
	}
	return redirect
}

// encodeComponent escapes s the way a browser's encodeURIComponent does.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
