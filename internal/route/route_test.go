package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token string

func (t token) Token() (string, bool) { return string(t), t != "" }

func TestLookup(t *testing.T) {
	tests := []struct {
		path   string
		page   Page
		params map[string]string
	}{
		{"/", Landing, nil},
		{"/tasks", Tasks, nil},
		{"/tasks/add", AddTask, nil},
		{"/tasks/42", TaskDetail, map[string]string{"taskId": "42"}},
		{"/projects/add", AddProject, nil},
		{"/projects/p-1", ProjectDetail, map[string]string{"projectId": "p-1"}},
		{"/team/invite/abc", TeamInvite, map[string]string{"token": "abc"}},
		{"/nowhere", NotFound, nil},
		{"/tasks/1/extra", NotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := Lookup(tt.path)
			assert.Equal(t, tt.page, m.Page)
			for k, v := range tt.params {
				assert.Equal(t, v, m.Params[k])
			}
		})
	}
}

func TestGuard_ProtectedWithoutToken(t *testing.T) {
	g := NewGuard(token(""))

	d, err := g.Resolve("/tasks")
	require.NoError(t, err)
	assert.Equal(t, "/login?redirect=%2Ftasks", d.Redirect)
	assert.ErrorIs(t, d.Err(), ErrLoginRequired)

	d, err = g.Resolve("/tasks?filter=open")
	require.NoError(t, err)
	assert.Equal(t, "/login?redirect=%2Ftasks%3Ffilter%3Dopen", d.Redirect)
	assert.Equal(t, "a%20b", encodeComponent("a b"))
}

func TestGuard_ProtectedWithToken(t *testing.T) {
	g := NewGuard(token("tok"))
	d, err := g.Resolve("/projects/7")
	require.NoError(t, err)
	assert.Empty(t, d.Redirect)
	assert.Equal(t, ProjectDetail, d.Match.Page)
	assert.NoError(t, d.Err())
}

func TestGuard_GuestOnlyWithToken(t *testing.T) {
	g := NewGuard(token("tok"))

	d, err := g.Resolve("/login")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", d.Redirect)

	d, err = g.Resolve("/login?redirect=%2Ftasks")
	require.NoError(t, err)
	assert.Equal(t, "/tasks", d.Redirect)

	d, err = g.Resolve("/register")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", d.Redirect)
}

func TestGuard_GuestOnlyWithoutToken(t *testing.T) {
	d, err := NewGuard(token("")).Resolve("/login?redirect=%2Ftasks")
	require.NoError(t, err)
	assert.Empty(t, d.Redirect)
	assert.Equal(t, Login, d.Match.Page)
}

func TestGuard_OpenPagesIgnoreSession(t *testing.T) {
	for _, tok := range []token{"", "tok"} {
		g := NewGuard(tok)
		for _, p := range []string{"/", "/team/invite/xyz", "/missing"} {
			d, err := g.Resolve(p)
			require.NoError(t, err)
			assert.Empty(t, d.Redirect, p)
		}
	}
}

func TestRedirectTarget(t *testing.T) {
	assert.Equal(t, "/dashboard", RedirectTarget(""))
	assert.Equal(t, "/tasks", RedirectTarget("/tasks"))
	assert.Equal(t, "/tasks", RedirectTarget("%2Ftasks"))
	assert.Equal(t, "/dashboard", RedirectTarget("https://evil.example"))
	assert.Equal(t, "/dashboard", RedirectTarget("//evil.example"))
}

func TestRedirectTarget_KeepsPlusSigns(t *testing.T) {
	assert.Equal(t, "/tasks?tag=c+++go", RedirectTarget("/tasks?tag=c%2B%2B+go"))
	assert.Equal(t, "/tasks?q=a+b", RedirectTarget("/tasks?q=a+b"))
}
