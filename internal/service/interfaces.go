package service

import (
	"context"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/store"
)

type AuthService interface {
	// Login authenticates and stores the session token. It returns the
	// destination to navigate to.
	Login(ctx context.Context, creds api.Credentials, redirect string) (string, error)
	Register(ctx context.Context, reg api.Registration, redirect string) (string, error)
	// Logout always returns the login destination, even when the backend
	// call failed.
	Logout(ctx context.Context) (string, error)
}

type TeamService interface {
	Invite(ctx context.Context, email string) error
	Update(ctx context.Context, memberID domain.ID, upd api.MemberUpdate) error
	Remove(ctx context.Context, memberID domain.ID) error
	GetInvite(ctx context.Context, token string) (*domain.Invite, error)
	Accept(ctx context.Context, token string) (string, error)
	Decline(ctx context.Context, token string) (string, error)
}

type ProjectService interface {
	Create(ctx context.Context, draft domain.ProjectDraft) error
	Comments(ctx context.Context, projectID domain.ID) ([]domain.Comment, error)
	PostComment(ctx context.Context, projectID domain.ID, body string) (*domain.Comment, error)
	AddTeam(ctx context.Context, projectID, teamID domain.ID) error
}

type TaskService interface {
	Create(ctx context.Context, draft domain.TaskDraft) error
	Calendar(ctx context.Context, month, year int) (*domain.CalendarMonth, error)
}

// Notifier is the notice channel as seen by the services.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// SessionWriter persists the session token.
type SessionWriter interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Invalidator refreshes the reads affected by a write.
type Invalidator interface {
	Invalidate(ctx context.Context, m store.Mutation, id domain.ID)
}

// SignOut ends the backend session.
type SignOut interface {
	Logout(ctx context.Context) (*api.Envelope, error)
}

// UserSource reports the logged-in user, if known.
type UserSource interface {
	CurrentUser() *domain.User
}

type AuthBackend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.Envelope, error)
	Register(ctx context.Context, reg api.Registration) (*api.Envelope, error)
}

type TeamBackend interface {
	InviteMember(ctx context.Context, email string) (*api.Envelope, error)
	UpdateMember(ctx context.Context, memberID domain.ID, upd api.MemberUpdate) (*api.Envelope, error)
	RemoveMember(ctx context.Context, memberID domain.ID) (*api.Envelope, error)
	GetInvite(ctx context.Context, token string) (*api.Envelope, error)
	AcceptInvite(ctx context.Context, token string) (*api.Envelope, error)
	DeclineInvite(ctx context.Context, token string) (*api.Envelope, error)
}

type ProjectBackend interface {
	CreateProject(ctx context.Context, draft domain.ProjectDraft) (*api.Envelope, error)
	ListComments(ctx context.Context, projectID domain.ID) (*api.Envelope, error)
	PostComment(ctx context.Context, projectID domain.ID, body string) (*api.Envelope, error)
	AddTeamToProject(ctx context.Context, projectID, teamID domain.ID) (*api.Envelope, error)
}

type TaskBackend interface {
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*api.Envelope, error)
	Calendar(ctx context.Context, month, year int) (*api.Envelope, error)
}
