// Package auth tracks who is logged in. The current user is fetched at most
// once per Store unless WithRetryAfterFailure is set.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
)

// DefaultErrorMessage is shown when a failure carries no server message.
const DefaultErrorMessage = "Something went wrong. Please try again."

// FetchState is the lifecycle of the current-user request.
type FetchState int

const (
	NotRequested FetchState = iota
	InFlight
	Settled
)

func (s FetchState) String() string {
	switch s {
	case NotRequested:
		return "not_requested"
	case InFlight:
		return "in_flight"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Notifier receives error notices.
type Notifier interface {
	Error(message string)
}

// UserFetcher is the single backend call the store makes.
type UserFetcher interface {
	CurrentUser(ctx context.Context) (*api.Envelope, error)
}

type Store struct {
	client   UserFetcher
	notifier Notifier
	logger   *slog.Logger
	retry    bool

	mu      sync.Mutex
	state   FetchState
	failed  bool
	loading bool
	user    *domain.User
}

type Option func(*Store)

// WithRetryAfterFailure lets a failed fetch be attempted again on the next
// FetchCurrentUser call. Successful fetches stay settled.
func WithRetryAfterFailure() Option {
	return func(s *Store) { s.retry = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(client UserFetcher, notifier Notifier, opts ...Option) *Store {
	s := &Store{
		client:   client,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentUser returns the fetched user, or nil when unknown.
func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsProfileLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) State() FetchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FetchCurrentUser issues the current-user request if it has not been
// requested yet. Concurrent and later callers return immediately.
func (s *Store) FetchCurrentUser(ctx context.Context) {
	s.mu.Lock()
	if s.state == Settled && s.failed && s.retry {
		s.state = NotRequested
	}
	if s.state != NotRequested {
		s.mu.Unlock()
		return
	}
	s.state = InFlight
	s.loading = true
	s.mu.Unlock()

	var (
		user     *domain.User
		message  string
		canceled bool
	)
	defer func() {
		s.mu.Lock()
		s.user = user
		s.failed = user == nil
		s.state = Settled
		if canceled {
			// Nothing was learned; the next caller fetches again.
			s.state = NotRequested
			s.failed = false
		}
		s.loading = false
		s.mu.Unlock()

		if message != "" && s.notifier != nil {
			s.notifier.Error(message)
		}
	}()

	env, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("current user fetch failed", "error", err)
		if api.IsCanceled(err) {
			canceled = true
			return
		}
		message = api.Message(err, DefaultErrorMessage)
		return
	}
	if !env.OK() {
		message = api.Message(env.Err(), DefaultErrorMessage)
		return
	}
	u, err := api.Decode[domain.User](env)
	if err != nil {
		s.logger.Warn("current user payload invalid", "error", err)
		message = DefaultErrorMessage
		return
	}
	user = &u
}
