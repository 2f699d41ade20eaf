package repository

import (
	"context"
	"net/http"
)

// CookieRepo persists session cookies per backend host.
type CookieRepo interface {
	Put(ctx context.Context, host string, c *http.Cookie) error
	// Get returns nil, nil when no cookie is stored.
	Get(ctx context.Context, host, name string) (*http.Cookie, error)
	Delete(ctx context.Context, host, name string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
