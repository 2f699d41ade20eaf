package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Response is a canned reply from the fake backend.
type Response struct {
	HTTPStatus int
	Body       any
	Delay      time.Duration
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Body: map[string]any{"status": 200, "message": "OK", "data": data}}
}

// Fail is an application-level failure delivered with HTTP 200.
func Fail(status int, message string) Response {
	return Response{Body: map[string]any{"status": status, "message": message}}
}

// HTTPFail is a non-2xx reply carrying the backend's error payload.
func HTTPFail(httpStatus int, message string) Response {
	return Response{HTTPStatus: httpStatus, Body: map[string]any{"status": httpStatus, "message": message}}
}

// RecordedCall is one request seen by the fake backend.
type RecordedCall struct {
	Method  string
	Pattern string
	Path    string
	Query   string
	Auth    string
	Body    map[string]any
}

// routes are the backend paths the client talks to, as chi patterns.
var routes = []string{
	"/users/login",
	"/users/register",
	"/users/logout",
	"/users/current",
	"/teams",
	"/teams/invite",
	"/teams/accept-invite",
	"/teams/decline-invite",
	"/teams/{memberID}",
	"/projects",
	"/projects/add",
	"/projects/add-team",
	"/projects/comment",
	"/projects/s/comment",
	"/projects/team/{projectID}",
	"/projects/{projectID}",
	"/tasks",
	"/tasks/add",
	"/tasks/counts",
	"/tasks/t/calendar",
	"/tasks/{taskID}",
}

// FakeBackend is an httptest server that answers TaskFlow API routes with
// canned envelopes and records every call.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	handlers  map[string]http.HandlerFunc
	calls     []RecordedCall
}

// NewFakeBackend starts a backend that is closed when the test completes.
// Unconfigured routes reply with an application-level 404.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		responses: make(map[string]Response),
		handlers:  make(map[string]http.HandlerFunc),
	}
	r := chi.NewRouter()
	for _, pattern := range routes {
		r.HandleFunc(pattern, f.serve)
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": 404, "message": "route not found"})
	})
	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the backend base URL.
func (f *FakeBackend) URL() string { return f.Server.URL }

// On sets the reply for method and chi pattern, e.g. On("GET", "/tasks/{taskID}", ...).
func (f *FakeBackend) On(method, pattern string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+pattern] = resp
}

// OnFunc installs a custom handler for method and chi pattern.
func (f *FakeBackend) OnFunc(method, pattern string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+pattern] = h
}

// Calls returns every recorded request in arrival order.
func (f *FakeBackend) Calls() []RecordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedCall(nil), f.calls...)
}

// CallCount counts requests matching method and chi pattern.
func (f *FakeBackend) CallCount(method, pattern string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method && c.Pattern == pattern {
			n++
		}
	}
	return n
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	key := r.Method + " " + pattern

	call := RecordedCall{
		Method:  r.Method,
		Pattern: pattern,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Auth:    r.Header.Get("Authorization"),
	}
	if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, hasHandler := f.handlers[key]
	resp, hasResp := f.responses[key]
	f.mu.Unlock()

	if hasHandler {
		h(w, r)
		return
	}
	if !hasResp {
		writeJSON(w, http.StatusOK, map[string]any{"status": 404, "message": "no fixture for " + key})
		return
	}
	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}
	status := resp.HTTPStatus
	if status == 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
