package api

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single backend request.
type CallEvent struct {
	Method     string
	Path       string
	RequestID  string
	HTTPStatus int
	AppStatus  int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger. A nil
// logger falls back to a text handler on w.
func NewLogObserver(logger *slog.Logger, w io.Writer) *LogObserver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(w, nil))
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"request_id", event.RequestID,
		"http_status", event.HTTPStatus,
		"app_status", event.AppStatus,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("api_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Debug("api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
