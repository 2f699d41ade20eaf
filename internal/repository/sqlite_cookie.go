package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/taskflow/internal/db"
)

// SQLiteCookieRepo implements CookieRepo using a SQLite database.
type SQLiteCookieRepo struct {
	db db.DBTX
}

// NewSQLiteCookieRepo creates a new SQLiteCookieRepo.
func NewSQLiteCookieRepo(conn db.DBTX) *SQLiteCookieRepo {
	return &SQLiteCookieRepo{db: conn}
}

func (r *SQLiteCookieRepo) Put(ctx context.Context, host string, c *http.Cookie) error {
	path := c.Path
	if path == "" {
		path = "/"
	}
	query := `INSERT INTO session_cookies (host, name, value, path, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(host, name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query,
		host,
		c.Name,
		c.Value,
		path,
		formatTime(c.Expires),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("storing cookie %s: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteCookieRepo) Get(ctx context.Context, host, name string) (*http.Cookie, error) {
	query := `SELECT name, value, path, expires_at FROM session_cookies WHERE host = ? AND name = ?`
	var c http.Cookie
	var expiresStr string
	err := r.db.QueryRowContext(ctx, query, host, name).Scan(&c.Name, &c.Value, &c.Path, &expiresStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cookie %s: %w", name, err)
	}
	expires, err := parseTime(expiresStr)
	if err != nil {
		return nil, fmt.Errorf("parsing expiry of cookie %s: %w", name, err)
	}
	c.Expires = expires
	return &c, nil
}

func (r *SQLiteCookieRepo) Delete(ctx context.Context, host, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_cookies WHERE host = ? AND name = ?`, host, name)
	if err != nil {
		return fmt.Errorf("deleting cookie %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteCookieRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_cookies WHERE expires_at <= ?`, formatTime(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("purging expired cookies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged cookies: %w", err)
	}
	return n, nil
}
