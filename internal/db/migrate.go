package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies all schema statements. Each is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_cookies (
		host       TEXT NOT NULL,
		name       TEXT NOT NULL,
		value      TEXT NOT NULL,
		path       TEXT NOT NULL DEFAULT '/',
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (host, name)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_cookies_expires ON session_cookies(expires_at)`,
}
