package store

import (
	"io"
	"log/slog"
	"os"
)

// Outcome classifies how a fetch settled.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeAppError       Outcome = "app_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeCanceled       Outcome = "canceled"
	// OutcomeStale means a newer request was issued before this one
	// returned; its result was discarded.
	OutcomeStale Outcome = "stale"
)

// TriggerEvent captures one settled fetch.
type TriggerEvent struct {
	Resource  ResourceName
	Seq       uint64
	Outcome   Outcome
	LatencyMs int64
	Err       error
	Message   string
}

// Observer receives trigger telemetry.
type Observer interface {
	OnTrigger(TriggerEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnTrigger(TriggerEvent) {}

// LogObserver writes trigger events through slog.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an observer that logs to w, or stderr when w is nil.
func NewLogObserver(logger *slog.Logger, w io.Writer) *LogObserver {
	if logger == nil {
		if w == nil {
			w = os.Stderr
		}
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnTrigger(e TriggerEvent) {
	attrs := []any{
		"resource", string(e.Resource),
		"seq", e.Seq,
		"outcome", string(e.Outcome),
		"latency_ms", e.LatencyMs,
	}
	switch e.Outcome {
	case OutcomeAppError, OutcomeTransportError:
		if e.Err != nil {
			attrs = append(attrs, "error", e.Err.Error())
		}
		if e.Message != "" {
			attrs = append(attrs, "message", e.Message)
		}
		o.logger.Warn("store.fetch", attrs...)
	default:
		o.logger.Debug("store.fetch", attrs...)
	}
}
