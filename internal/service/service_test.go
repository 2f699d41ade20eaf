package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/session"
	"github.com/alexanderramin/taskflow/internal/store"
	"github.com/alexanderramin/taskflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

type note struct {
	severity string
	message  string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) add(sev, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{sev, msg})
}

func (n *recordingNotifier) Success(msg string) { n.add("success", msg) }
func (n *recordingNotifier) Error(msg string)   { n.add("error", msg) }
func (n *recordingNotifier) Info(msg string)    { n.add("info", msg) }

func (n *recordingNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}

func (n *recordingNotifier) last(t *testing.T) note {
	t.Helper()
	all := n.all()
	require.NotEmpty(t, all, "expected a notice")
	return all[len(all)-1]
}

type fixedUser struct{ user *domain.User }

func (f fixedUser) CurrentUser() *domain.User { return f.user }

type harness struct {
	fb     *testutil.FakeBackend
	client *api.Client
	jar    *session.MemoryStore
	store  *store.Store
	notes  *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	cfg := api.DefaultConfig()
	cfg.BaseURL = fb.URL()
	jar := session.NewMemoryStore(nil)
	notes := &recordingNotifier{}
	client := api.New(cfg, jar, nil)
	return &harness{
		fb:     fb,
		client: client,
		jar:    jar,
		store:  store.New(client, notes),
		notes:  notes,
	}
}

func (h *harness) auth() AuthService {
	return NewAuthService(h.client, h.store, h.jar, h.notes)
}

func (h *harness) team(user *domain.User) TeamService {
	return NewTeamService(h.client, fixedUser{user}, h.store, h.notes)
}

func (h *harness) projects() ProjectService {
	return NewProjectService(h.client, h.store, h.notes)
}

func (h *harness) tasks() TaskService {
	return NewTaskService(h.client, h.store, h.notes)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.jar.Set(context.Background(), "tok123"))
}
