package service

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.ProjectDraft
		want  string
	}{
		{"missing name", domain.ProjectDraft{Start: "2025-01-01", End: "2025-02-01"}, "Project name is required."},
		{"end before start", domain.ProjectDraft{Name: "X", Start: "2025-03-01", End: "2025-02-01"}, "End date must be after start date."},
		{"missing start", domain.ProjectDraft{Name: "X", End: "2025-02-01"}, "Start date is required."},
		{"missing end", domain.ProjectDraft{Name: "X", Start: "2025-02-01"}, "End date is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.projects().Create(context.Background(), tt.draft)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, note{"error", tt.want}, h.notes.last(t))
			assert.Empty(t, h.fb.Calls())
		})
	}
}

func TestProjectCreate_DefaultsAndRefresh(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/projects/add", testutil.Response{Body: map[string]any{"status": 200}})
	h.fb.On(http.MethodGet, "/projects", testutil.OK([]any{testutil.ProjectFixture("Apollo")}))

	err := h.projects().Create(context.Background(), domain.ProjectDraft{Name: "Apollo", Start: "2025-01-01", End: "2025-06-30"})
	require.NoError(t, err)

	body := h.fb.Calls()[0].Body
	assert.Equal(t, "blue", body["color"])
	assert.Equal(t, "medium", body["priority"])
	assert.Equal(t, note{"success", "Project Created"}, h.notes.last(t))

	projects, _ := h.store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Apollo", projects[0].Name)
}

func TestComments(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodGet, "/projects/s/comment", testutil.OK([]any{
		map[string]any{"id": 1, "comment": "Looks good", "fname": "Grace", "lname": "Hopper"},
	}))

	comments, err := h.projects().Comments(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Grace Hopper", comments[0].Author())
	assert.Equal(t, "qid=p-1", h.fb.Calls()[0].Query)
}

func TestPostComment(t *testing.T) {
	h := newHarness(t)
	svc := h.projects()

	_, err := svc.PostComment(context.Background(), "p-1", "  ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, note{"error", "Please enter a comment"}, h.notes.last(t))

	h.fb.On(http.MethodPost, "/projects/comment", testutil.Response{Body: map[string]any{
		"status": 200, "data": map[string]any{"id": 7, "fname": "Ada", "lname": "Lovelace"},
	}})
	c, err := svc.PostComment(context.Background(), "p-1", " Ship it ")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("7"), c.ID)
	assert.Equal(t, "Ship it", c.Body)
	assert.NotEmpty(t, c.CreatedAt)
	assert.Equal(t, note{"success", "Comment posted successfully"}, h.notes.last(t))

	body := h.fb.Calls()[0].Body
	assert.Equal(t, "p-1", body["projectId"])
	assert.Equal(t, "Ship it", body["comment"])
}

func TestAddTeam(t *testing.T) {
	h := newHarness(t)
	svc := h.projects()

	err := svc.AddTeam(context.Background(), "p-1", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, note{"error", "Please select a team"}, h.notes.last(t))

	h.fb.On(http.MethodPost, "/projects/add-team", testutil.Response{Body: map[string]any{"status": 200}})
	h.fb.On(http.MethodGet, "/projects/team/{projectID}", testutil.OK([]any{}))
	h.fb.On(http.MethodGet, "/projects/{projectID}", testutil.OK(testutil.ProjectFixture("Apollo")))

	require.NoError(t, svc.AddTeam(context.Background(), "p-1", "t-9"))
	var paths []string
	for _, c := range h.fb.Calls()[1:] {
		paths = append(paths, c.Path)
	}
	sort.Strings(paths)
	assert.Equal(t, []string{"/projects/p-1", "/projects/team/p-1"}, paths)
}

func TestTaskCreate_WithoutProjectMakesNoCall(t *testing.T) {
	h := newHarness(t)

	err := h.tasks().Create(context.Background(), domain.TaskDraft{Title: "Write docs"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, note{"error", "Please select a project first"}, h.notes.last(t))
	assert.Empty(t, h.fb.Calls())
}

func TestTaskCreate_UsesCodeAndRefreshes(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/tasks/add", testutil.Response{Body: map[string]any{"code": 200, "message": "Task created"}})
	h.fb.On(http.MethodGet, "/tasks", testutil.OK([]any{testutil.TaskFixture(1, "Write docs", "Apollo", "todo")}))
	h.fb.On(http.MethodGet, "/tasks/counts", testutil.OK(1))

	err := h.tasks().Create(context.Background(), domain.TaskDraft{Title: "Write docs", Project: "p-1", Tags: []string{"docs", " docs "}})
	require.NoError(t, err)
	assert.Equal(t, note{"success", "Task created"}, h.notes.last(t))

	body := h.fb.Calls()[0].Body
	assert.Equal(t, "p-1", body["projectId"])
	assert.Equal(t, "p-1", body["project"])
	assert.Equal(t, "todo", body["status"])
	assert.Equal(t, "medium", body["priority"])

	tasks, _ := h.store.Tasks()
	assert.Len(t, tasks, 1)
	count, _ := h.store.TaskCount()
	assert.Equal(t, 1, count)
}

func TestTaskCreate_Failure(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/tasks/add", testutil.Response{Body: map[string]any{"code": 422}})

	err := h.tasks().Create(context.Background(), domain.TaskDraft{Title: "x", Project: "p-1"})
	require.Error(t, err)
	assert.Equal(t, note{"error", "Unable to create task"}, h.notes.last(t))
	assert.Zero(t, h.fb.CallCount(http.MethodGet, "/tasks"))
}

func TestCalendar(t *testing.T) {
	h := newHarness(t)
	task := testutil.TaskFixture(3, "Launch", "Apollo", "todo")
	h.fb.On(http.MethodGet, "/tasks/t/calendar", testutil.OK(map[string]any{
		"data":            []any{task},
		"grouped_by_date": map[string]any{"2025-03-14": []any{task}},
	}))

	cal, err := h.tasks().Calendar(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-14"}, cal.Days())
	assert.Equal(t, []string{"Apollo"}, cal.ProjectNames())

	_, err = h.tasks().Calendar(context.Background(), 13, 2025)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalendar_TransportFailure(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodGet, "/tasks/t/calendar", testutil.Response{HTTPStatus: http.StatusServiceUnavailable, Body: "busy"})

	_, err := h.tasks().Calendar(context.Background(), 3, 2025)
	require.Error(t, err)
	assert.Equal(t, note{"error", "Error fetching calendar tasks"}, h.notes.last(t))
}

func TestCalendar_HTTPErrorShowsFixedMessage(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodGet, "/tasks/t/calendar", testutil.HTTPFail(http.StatusInternalServerError, "calendar service down"))

	_, err := h.tasks().Calendar(context.Background(), 3, 2025)
	require.Error(t, err)
	assert.Equal(t, note{"error", "Error fetching calendar tasks"}, h.notes.last(t))
}

type captureUseCases struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (c *captureUseCases) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func TestUseCaseObserverSeesResult(t *testing.T) {
	h := newHarness(t)
	obs := &captureUseCases{}
	svc := NewTaskService(h.client, nil, h.notes, obs)

	_ = svc.Create(context.Background(), domain.TaskDraft{Title: "x"})

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.Equal(t, "task-create", e.Name)
	assert.False(t, e.Success)
	assert.ErrorIs(t, e.Err, ErrValidation)
	assert.Less(t, e.Duration, time.Second)
}
