// Package notice implements the single transient status message shown to
// the user. At most one notice is visible; showing a new one replaces the
// current one and restarts its dismissal timer.
package notice

import (
	"sync"
	"time"
)

// DefaultDuration is how long a notice stays visible when no duration is given.
const DefaultDuration = 4000 * time.Millisecond

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case Success, Error, Warning, Info:
		return true
	}
	return false
}

type Notice struct {
	Message  string
	Severity Severity
	Duration time.Duration
	ShownAt  time.Time
}

// Timer is the subset of *time.Timer the channel needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Listener is called after every transition with the visible notice, or
// ok=false when the channel went idle.
type Listener func(n Notice, ok bool)

// Channel holds the current notice. It is safe for concurrent use.
type Channel struct {
	mu         sync.Mutex
	current    *Notice
	timer      Timer
	generation uint64

	afterFunc AfterFunc
	now       func() time.Time
	fallback  time.Duration

	listeners map[int]Listener
	nextID    int
}

// Option configures a Channel.
type Option func(*Channel)

// WithAfterFunc replaces the timer factory, for deterministic tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Channel) { c.afterFunc = f }
}

// WithDefaultDuration sets the duration used when Show is given none.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.fallback = d
		}
	}
}

// WithClock replaces the clock used for ShownAt.
func WithClock(now func() time.Time) Option {
	return func(c *Channel) { c.now = now }
}

func NewChannel(opts ...Option) *Channel {
	c := &Channel{
		afterFunc: stdAfterFunc,
		now:       time.Now,
		fallback:  DefaultDuration,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show replaces any visible notice with a new one. A non-positive duration
// uses the channel default and an unknown severity is shown as Info.
func (c *Channel) Show(message string, severity Severity, duration time.Duration) {
	if duration <= 0 {
		duration = c.fallback
	}
	if !severity.Valid() {
		severity = Info
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.generation++
	gen := c.generation
	n := Notice{Message: message, Severity: severity, Duration: duration, ShownAt: c.now()}
	c.current = &n
	c.timer = c.afterFunc(duration, func() { c.expire(gen) })
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, n, true)
}

// Hide dismisses the visible notice, if any.
func (c *Channel) Hide() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, Notice{}, false)
}

// expire runs from the timer. A timer belonging to a replaced notice finds a
// newer generation and does nothing.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, Notice{}, false)
}

func (c *Channel) clearLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.current = nil
}

// Current returns the visible notice.
func (c *Channel) Current() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notice{}, false
	}
	return *c.current, true
}

// Subscribe registers l and returns a function that removes it.
func (c *Channel) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Channel) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if l, ok := c.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

func notify(listeners []Listener, n Notice, ok bool) {
	for _, l := range listeners {
		l(n, ok)
	}
}

// Success shows a success notice with the default duration.
func (c *Channel) Success(message string) { c.Show(message, Success, 0) }

// Error shows an error notice with the default duration.
func (c *Channel) Error(message string) { c.Show(message, Error, 0) }

// Warning shows a warning notice with the default duration.
func (c *Channel) Warning(message string) { c.Show(message, Warning, 0) }

// Info shows an info notice with the default duration.
func (c *Channel) Info(message string) { c.Show(message, Info, 0) }
