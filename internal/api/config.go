package api

import "time"

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL     string
	Timeout     time.Duration // 0 leaves requests bounded only by the caller's context
	DialTimeout time.Duration
	UserAgent   string
}

// DefaultConfig returns a Config pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8080",
		DialTimeout: 5 * time.Second,
		UserAgent:   "taskflow-cli",
	}
}
