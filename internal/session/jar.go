// Package session holds the client's session credential: an opaque bearer
// token kept as a cookie named CookieName with path "/" and a fixed lifetime
// from issuance. Presence of an unexpired cookie is the sole signal that the
// user is logged in.
package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/alexanderramin/taskflow/internal/repository"
)

const (
	CookieName = "session_meta"
	CookiePath = "/"
	TTL        = 24 * time.Hour
)

// Store is what the rest of the client needs from session persistence.
type Store interface {
	Token() (string, bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Jar persists the session cookie for one backend host through a
// CookieRepo. Reads are served from memory after the first load.
type Jar struct {
	repo repository.CookieRepo
	host string
	now  func() time.Time

	mu     sync.Mutex
	loaded bool
	cookie *http.Cookie
}

// NewJar creates a Jar scoped to the host of backendURL.
func NewJar(repo repository.CookieRepo, backendURL string, now func() time.Time) (*Jar, error) {
	u, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Jar{repo: repo, host: u.Host, now: now}, nil
}

// Token returns the session token when an unexpired cookie exists. Storage
// errors read as "no session".
func (j *Jar) Token() (string, bool) {
	c, err := j.Cookie(context.Background())
	if err != nil || c == nil {
		return "", false
	}
	return c.Value, true
}

// Cookie returns the current unexpired cookie, or nil.
func (j *Jar) Cookie(ctx context.Context) (*http.Cookie, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.loaded {
		c, err := j.repo.Get(ctx, j.host, CookieName)
		if err != nil {
			return nil, err
		}
		j.cookie = c
		j.loaded = true
	}
	if j.cookie == nil {
		return nil, nil
	}
	if !j.now().Before(j.cookie.Expires) {
		return nil, nil
	}
	cp := *j.cookie
	return &cp, nil
}

// Set stores token with a fresh TTL.
func (j *Jar) Set(ctx context.Context, token string) error {
	c := &http.Cookie{
		Name:    CookieName,
		Value:   token,
		Path:    CookiePath,
		Expires: j.now().Add(TTL),
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.repo.Put(ctx, j.host, c); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	j.cookie = c
	j.loaded = true
	return nil
}

// Clear removes the session cookie.
func (j *Jar) Clear(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.repo.Delete(ctx, j.host, CookieName); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	j.cookie = nil
	j.loaded = true
	return nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	now     func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" || !m.now().Before(m.expires) {
		return "", false
	}
	return m.token, true
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.expires = m.now().Add(TTL)
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

var (
	_ Store = (*Jar)(nil)
	_ Store = (*MemoryStore)(nil)
)
