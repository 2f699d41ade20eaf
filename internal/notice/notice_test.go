package notice

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimers records scheduled callbacks so tests fire them by hand.
type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) Timer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

// fire runs timer i even if it was stopped, which is what a timer that had
// already been dequeued by the runtime would do.
func (ft *fakeTimers) fire(i int) {
	ft.mu.Lock()
	t := ft.timers[i]
	ft.mu.Unlock()
	t.f()
}

func newTestChannel() (*Channel, *fakeTimers) {
	ft := &fakeTimers{}
	return NewChannel(WithAfterFunc(ft.afterFunc)), ft
}

func TestChannel_ShowThenExpire(t *testing.T) {
	c, ft := newTestChannel()

	c.Show("saved", Success, 0)
	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "saved", n.Message)
	assert.Equal(t, Success, n.Severity)
	assert.Equal(t, DefaultDuration, ft.timers[0].d)

	ft.fire(0)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestChannel_ReplacementRestartsTimer(t *testing.T) {
	c, ft := newTestChannel()

	c.Show("first", Info, time.Second)
	c.Show("second", Error, 3*time.Second)

	require.Len(t, ft.timers, 2)
	assert.True(t, ft.timers[0].stopped, "old timer must be stopped")
	assert.Equal(t, 3*time.Second, ft.timers[1].d)

	// The first timer firing late must not hide the replacement.
	ft.fire(0)
	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
	assert.Equal(t, Error, n.Severity)

	ft.fire(1)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestChannel_HideCancelsTimer(t *testing.T) {
	c, ft := newTestChannel()

	c.Show("x", Warning, 0)
	c.Hide()
	_, ok := c.Current()
	assert.False(t, ok)
	assert.True(t, ft.timers[0].stopped)

	// A show after hide is not affected by the old timer.
	c.Show("y", Info, 0)
	ft.fire(0)
	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "y", n.Message)
}

func TestChannel_UnknownSeverityIsInfo(t *testing.T) {
	c, _ := newTestChannel()
	c.Show("x", Severity("fatal"), 0)
	n, _ := c.Current()
	assert.Equal(t, Info, n.Severity)
}

func TestChannel_Listeners(t *testing.T) {
	c, ft := newTestChannel()

	var events []string
	unsubscribe := c.Subscribe(func(n Notice, ok bool) {
		if ok {
			events = append(events, "show:"+n.Message)
			return
		}
		events = append(events, "idle")
	})

	c.Error("a")
	c.Success("b")
	ft.fire(1)
	c.Hide() // already idle: no event
	unsubscribe()
	c.Info("c")

	assert.Equal(t, []string{"show:a", "show:b", "idle"}, events)
}

func TestChannel_RealTimer(t *testing.T) {
	c := NewChannel()
	c.Show("short", Info, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		_, ok := c.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestChannel_WithDefaultDuration(t *testing.T) {
	ft := &fakeTimers{}
	c := NewChannel(WithAfterFunc(ft.afterFunc), WithDefaultDuration(7*time.Second))

	c.Show("a", Info, 0)
	c.Show("b", Info, time.Second)

	require.Len(t, ft.timers, 2)
	assert.Equal(t, 7*time.Second, ft.timers[0].d)
	assert.Equal(t, time.Second, ft.timers[1].d)
}
