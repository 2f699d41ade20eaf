package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
)

// DefaultErrorMessage is shown when a failure carries no server message.
const DefaultErrorMessage = "Something went wrong. Please try again."

// ErrValidation marks input rejected before any backend call.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// messages holds the notice texts for one write action.
type messages struct {
	// failure is shown for an application failure without a server message.
	failure string
	// transport replaces DefaultErrorMessage when no usable response arrived.
	transport string
	// fixedTransport shows transport even when an HTTP error carried a
	// server message.
	fixedTransport bool
	// success is shown on success unless the server sent a message.
	success string
	// fixedSuccess ignores the server message on success.
	fixedSuccess bool
	// prefix is prepended to server-supplied failure messages.
	prefix string
}

// base carries what every service needs: the notice channel, the read
// invalidator and use-case telemetry.
type base struct {
	notifier    Notifier
	invalidator Invalidator
	observer    UseCaseObserver
}

func newBase(notifier Notifier, invalidator Invalidator, observers []UseCaseObserver) base {
	return base{
		notifier:    notifier,
		invalidator: invalidator,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// settle turns the outcome of a write into notices and an error.
func (b *base) settle(env *api.Envelope, err error, msg messages) error {
	if err != nil {
		if api.IsCanceled(err) {
			return err
		}
		fallback := msg.transport
		if fallback == "" {
			fallback = DefaultErrorMessage
		}
		if msg.fixedTransport {
			b.notifier.Error(fallback)
			return err
		}
		b.notifier.Error(api.Message(err, fallback))
		return err
	}
	if !env.OK() {
		text := msg.failure
		if env.Message != "" {
			text = msg.prefix + env.Message
		}
		b.notifier.Error(text)
		return env.Err()
	}
	if msg.success != "" {
		text := msg.success
		if env.Message != "" && !msg.fixedSuccess {
			text = env.Message
		}
		b.notifier.Success(text)
	}
	return nil
}

// reject shows a validation notice and returns ErrValidation.
func (b *base) reject(msg string) error {
	b.notifier.Error(msg)
	return validationError(msg)
}

// observe reports a finished use case. It is deferred with a pointer to the
// named error result.
func (b *base) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	b.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
