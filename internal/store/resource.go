package store

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
)

// Notifier receives the error notices raised by failed fetches.
type Notifier interface {
	Error(message string)
}

// Call issues the single backend request behind a fetch.
type Call func(ctx context.Context) (*api.Envelope, error)

// Policy configures how a resource reacts to failure.
type Policy struct {
	Name ResourceName

	// AppFallback is shown when the envelope reports failure without a
	// message; TransportFallback when no usable response arrived.
	AppFallback       string
	TransportFallback string

	// ResetOnFailure puts the data back to its initial value on failure
	// instead of keeping the previous value.
	ResetOnFailure bool

	// Quiet suppresses failure notices.
	Quiet bool
}

// Resource is one independently fetched piece of state: its data and a
// loading flag. Every Fetch takes a sequence number; only the response to
// the most recently issued request may write the data.
type Resource[T any] struct {
	policy   Policy
	initial  T
	notifier Notifier
	observer Observer

	mu       sync.Mutex
	data     T
	seq      uint64
	inflight int
}

func NewResource[T any](policy Policy, initial T, notifier Notifier, observer Observer) *Resource[T] {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Resource[T]{
		policy:   policy,
		initial:  initial,
		notifier: notifier,
		observer: observer,
		data:     initial,
	}
}

// Data returns the last successfully fetched value.
func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Loading is true while any request for this resource is outstanding.
func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Snapshot returns data and the loading flag read together.
func (r *Resource[T]) Snapshot() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.inflight > 0
}

// Fetch runs call and settles the resource from its result. It blocks until
// the call returns and never returns an error: failures become notices.
func (r *Resource[T]) Fetch(ctx context.Context, call Call) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.inflight++
	r.mu.Unlock()

	start := time.Now()
	env, err := call(ctx)

	var (
		value   T
		message string
		outcome Outcome
	)
	switch {
	case err != nil && api.IsCanceled(err):
		outcome = OutcomeCanceled
	case err != nil:
		outcome = OutcomeTransportError
		message = api.Message(err, r.policy.TransportFallback)
	case !env.OK() || !env.HasData():
		outcome = OutcomeAppError
		message = env.Message
		if message == "" {
			message = r.policy.AppFallback
		}
	default:
		v, decErr := api.Decode[T](env)
		if decErr != nil {
			err = decErr
			outcome = OutcomeTransportError
			message = r.policy.AppFallback
		} else {
			value = v
			outcome = OutcomeOK
		}
	}

	r.mu.Lock()
	r.inflight--
	latest := seq == r.seq
	if !latest {
		outcome = OutcomeStale
	} else {
		switch outcome {
		case OutcomeOK:
			r.data = value
		case OutcomeAppError, OutcomeTransportError:
			if r.policy.ResetOnFailure {
				r.data = r.initial
			}
		}
	}
	r.mu.Unlock()

	r.observer.OnTrigger(TriggerEvent{
		Resource:  r.policy.Name,
		Seq:       seq,
		Outcome:   outcome,
		LatencyMs: time.Since(start).Milliseconds(),
		Err:       err,
		Message:   message,
	})

	if latest && message != "" && !r.policy.Quiet && r.notifier != nil {
		r.notifier.Error(message)
	}
}
