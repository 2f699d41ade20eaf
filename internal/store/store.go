// Package store is the client's shared cache of backend reads. Each of the
// eight resources is fetched imperatively through its trigger, owns its own
// data and loading flag, and is independent of every other resource.
package store

import (
	"context"
	"fmt"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
)

// ResourceName identifies a resource in telemetry and invalidation.
type ResourceName string

const (
	TeamMembers   ResourceName = "team_members"
	Projects      ResourceName = "projects"
	ProjectDetail ResourceName = "project_detail"
	ProjectTeam   ResourceName = "project_team"
	Tasks         ResourceName = "tasks"
	TaskDetail    ResourceName = "task_detail"
	TaskCounts    ResourceName = "task_counts"
	CurrentUser   ResourceName = "current_user"
)

// Backend is the set of reads the store issues, plus sign-out.
type Backend interface {
	ListTeam(ctx context.Context) (*api.Envelope, error)
	ListProjects(ctx context.Context) (*api.Envelope, error)
	GetProject(ctx context.Context, id domain.ID) (*api.Envelope, error)
	ProjectTeam(ctx context.Context, projectID domain.ID) (*api.Envelope, error)
	ListTasks(ctx context.Context) (*api.Envelope, error)
	GetTask(ctx context.Context, id domain.ID) (*api.Envelope, error)
	TaskCounts(ctx context.Context) (*api.Envelope, error)
	CurrentUser(ctx context.Context) (*api.Envelope, error)
	Logout(ctx context.Context) (*api.Envelope, error)
}

type Store struct {
	backend Backend

	teamMembers   *Resource[[]domain.TeamMember]
	projects      *Resource[[]domain.Project]
	projectDetail *Resource[*domain.Project]
	projectTeam   *Resource[[]domain.TeamMember]
	tasks         *Resource[[]domain.Task]
	taskDetail    *Resource[*domain.TaskDetail]
	taskCounts    *Resource[int]
	currentUser   *Resource[*domain.User]
}

type options struct {
	observer Observer
}

type Option func(*options)

// WithObserver attaches trigger telemetry.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

func policy(name ResourceName, noun string) Policy {
	return Policy{
		Name:              name,
		AppFallback:       "Unable to fetch " + noun + ".",
		TransportFallback: "Failed to load " + noun + ".",
	}
}

func New(backend Backend, notifier Notifier, opts ...Option) *Store {
	o := options{observer: NoopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	counts := policy(TaskCounts, "task counts")
	counts.ResetOnFailure = true
	counts.Quiet = true

	user := policy(CurrentUser, "current user")
	user.ResetOnFailure = true
	user.Quiet = true

	return &Store{
		backend:       backend,
		teamMembers:   NewResource(policy(TeamMembers, "team members"), []domain.TeamMember{}, notifier, o.observer),
		projects:      NewResource(policy(Projects, "projects"), []domain.Project{}, notifier, o.observer),
		projectDetail: NewResource[*domain.Project](policy(ProjectDetail, "project details"), nil, notifier, o.observer),
		projectTeam:   NewResource(policy(ProjectTeam, "project team"), []domain.TeamMember{}, notifier, o.observer),
		tasks:         NewResource(policy(Tasks, "tasks"), []domain.Task{}, notifier, o.observer),
		taskDetail:    NewResource[*domain.TaskDetail](policy(TaskDetail, "task details"), nil, notifier, o.observer),
		taskCounts:    NewResource(counts, 0, notifier, o.observer),
		currentUser:   NewResource[*domain.User](user, nil, notifier, o.observer),
	}
}

// ── triggers ─────────────────────────────────────────────────────────────────

func (s *Store) FetchTeamMembers(ctx context.Context) {
	s.teamMembers.Fetch(ctx, s.backend.ListTeam)
}

func (s *Store) FetchProjects(ctx context.Context) {
	s.projects.Fetch(ctx, s.backend.ListProjects)
}

func (s *Store) FetchProjectDetail(ctx context.Context, id domain.ID) {
	s.projectDetail.Fetch(ctx, func(ctx context.Context) (*api.Envelope, error) {
		return s.backend.GetProject(ctx, id)
	})
}

func (s *Store) FetchProjectTeam(ctx context.Context, projectID domain.ID) {
	s.projectTeam.Fetch(ctx, func(ctx context.Context) (*api.Envelope, error) {
		return s.backend.ProjectTeam(ctx, projectID)
	})
}

func (s *Store) FetchTasks(ctx context.Context) {
	s.tasks.Fetch(ctx, s.backend.ListTasks)
}

func (s *Store) FetchTaskDetail(ctx context.Context, id domain.ID) {
	s.taskDetail.Fetch(ctx, func(ctx context.Context) (*api.Envelope, error) {
		return s.backend.GetTask(ctx, id)
	})
}

func (s *Store) FetchTaskCounts(ctx context.Context) {
	s.taskCounts.Fetch(ctx, s.backend.TaskCounts)
}

func (s *Store) FetchCurrentUser(ctx context.Context) {
	s.currentUser.Fetch(ctx, s.backend.CurrentUser)
}

// Refresh runs the trigger for name. id is used by the per-id resources.
func (s *Store) Refresh(ctx context.Context, name ResourceName, id domain.ID) error {
	switch name {
	case TeamMembers:
		s.FetchTeamMembers(ctx)
	case Projects:
		s.FetchProjects(ctx)
	case ProjectDetail:
		s.FetchProjectDetail(ctx, id)
	case ProjectTeam:
		s.FetchProjectTeam(ctx, id)
	case Tasks:
		s.FetchTasks(ctx)
	case TaskDetail:
		s.FetchTaskDetail(ctx, id)
	case TaskCounts:
		s.FetchTaskCounts(ctx)
	case CurrentUser:
		s.FetchCurrentUser(ctx)
	default:
		return fmt.Errorf("unknown resource %q", name)
	}
	return nil
}

// Logout asks the backend to end the session and returns its raw result.
// The local session token is left for the caller to clear.
func (s *Store) Logout(ctx context.Context) (*api.Envelope, error) {
	return s.backend.Logout(ctx)
}

// ── snapshots ────────────────────────────────────────────────────────────────

func (s *Store) TeamMembers() ([]domain.TeamMember, bool) { return s.teamMembers.Snapshot() }
func (s *Store) Projects() ([]domain.Project, bool)       { return s.projects.Snapshot() }
func (s *Store) ProjectDetail() (*domain.Project, bool)   { return s.projectDetail.Snapshot() }
func (s *Store) ProjectTeam() ([]domain.TeamMember, bool) { return s.projectTeam.Snapshot() }
func (s *Store) Tasks() ([]domain.Task, bool)             { return s.tasks.Snapshot() }
func (s *Store) TaskDetail() (*domain.TaskDetail, bool)   { return s.taskDetail.Snapshot() }
func (s *Store) TaskCount() (int, bool)                   { return s.taskCounts.Snapshot() }
func (s *Store) CurrentUser() (*domain.User, bool)        { return s.currentUser.Snapshot() }

// Loading reports the loading flag of one resource.
func (s *Store) Loading(name ResourceName) bool {
	switch name {
	case TeamMembers:
		return s.teamMembers.Loading()
	case Projects:
		return s.projects.Loading()
	case ProjectDetail:
		return s.projectDetail.Loading()
	case ProjectTeam:
		return s.projectTeam.Loading()
	case Tasks:
		return s.tasks.Loading()
	case TaskDetail:
		return s.taskDetail.Loading()
	case TaskCounts:
		return s.taskCounts.Loading()
	case CurrentUser:
		return s.currentUser.Loading()
	}
	return false
}

// Resources lists every resource in display order.
func Resources() []ResourceName {
	return []ResourceName{TeamMembers, Projects, ProjectDetail, ProjectTeam, Tasks, TaskDetail, TaskCounts, CurrentUser}
}
