package sentry

import (
	"errors"
	"sync"
	"testing"

	gosentry "github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskflow/internal/notice"
)

func TestInit_Disabled(t *testing.T) {
	err := Init(Options{DSN: "https://key@example.invalid/1", TelemetryEnabled: false})
	assert.NoError(t, err)
	assert.False(t, IsEnabled())
	// Everything else is a safe no-op.
	Flush()
	CaptureError(errors.New("x"))
	SetUser("u", "e")
	NoticeListener(notice.Notice{Message: "x", Severity: notice.Error}, true)
}

func TestInit_EmptyDSN(t *testing.T) {
	err := Init(Options{TelemetryEnabled: true})
	assert.NoError(t, err)
	assert.False(t, IsEnabled())
}

func TestRecoverPanic_DisabledDoesNotSwallow(t *testing.T) {
	enabled = false
	assert.Panics(t, func() {
		defer RecoverPanic()
		panic("boom")
	})
}

type captured struct {
	mu     sync.Mutex
	events []*gosentry.Event
}

func (c *captured) beforeSend(e *gosentry.Event, _ *gosentry.EventHint) *gosentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func TestNoticeListener_ErrorsBecomeEventsWithBreadcrumbs(t *testing.T) {
	c := &captured{}
	require.NoError(t, Init(Options{
		DSN:              "https://public@o0.ingest.example.invalid/1",
		Version:          "test",
		TelemetryEnabled: true,
		BeforeSend:       c.beforeSend,
	}))
	t.Cleanup(func() { enabled = false })

	NoticeListener(notice.Notice{Message: "Invitation sent.", Severity: notice.Success}, true)
	NoticeListener(notice.Notice{}, false)
	NoticeListener(notice.Notice{Message: "boom", Severity: notice.Error}, true)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.events, 1)
	assert.Equal(t, "boom", c.events[0].Message)
	require.NotEmpty(t, c.events[0].Breadcrumbs)
	last := c.events[0].Breadcrumbs[len(c.events[0].Breadcrumbs)-1]
	assert.Equal(t, "Invitation sent.", last.Message)
	assert.Equal(t, "notice", last.Category)
}

func TestCaptureError_SendsException(t *testing.T) {
	c := &captured{}
	require.NoError(t, Init(Options{
		DSN:              "https://public@o0.ingest.example.invalid/1",
		Version:          "test",
		TelemetryEnabled: true,
		BeforeSend:       c.beforeSend,
	}))
	t.Cleanup(func() { enabled = false })

	CaptureError(errors.New("opening database: disk full"))
	CaptureError(nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.events, 1)
	require.NotEmpty(t, c.events[0].Exception)
	assert.Equal(t, "opening database: disk full", c.events[0].Exception[len(c.events[0].Exception)-1].Value)
}
