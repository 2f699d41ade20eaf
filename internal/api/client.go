package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the current session token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client issues requests against the TaskFlow backend. It attaches the
// session token as a bearer credential when one is available and makes
// exactly one attempt per call.
type Client struct {
	cfg      Config
	tokens   TokenSource
	http     *http.Client
	observer Observer
}

// New creates a Client. tokens may be nil for a client that never
// authenticates.
func New(cfg Config, tokens TokenSource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: dial,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Do sends one request and returns the decoded envelope. Transport failures
// come back as *TransportError and non-2xx responses as *HTTPError. An
// application-level failure is not an error here; inspect Envelope.OK.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	env, httpStatus, err := c.do(ctx, method, path, query, body, requestID)

	event := CallEvent{
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		HTTPStatus: httpStatus,
		LatencyMs:  time.Since(start).Milliseconds(),
	}
	if env != nil {
		event.AppStatus = env.AppStatus()
	}
	switch {
	case err != nil:
		event.ErrorCode = errorCode(err)
	case !env.OK():
		event.ErrorCode = errorCode(env.Err())
	default:
		event.Success = true
	}
	c.observer.OnCallComplete(event)

	return env, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, requestID string) (*Envelope, int, error) {
	target := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Method: method, Path: path, Err: classifyTransport(ctx, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Method: method, Path: path, Err: classifyTransport(ctx, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var env Envelope
		if json.Unmarshal(raw, &env) == nil {
			httpErr.Envelope = &env
		}
		return nil, resp.StatusCode, httpErr
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &env, resp.StatusCode, nil
}

func classifyTransport(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return context.Canceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
