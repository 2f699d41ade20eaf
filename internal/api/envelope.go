package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusOK is the application-level success code carried in envelopes.
const StatusOK = 200

// Envelope is the body shape of every backend response:
// {status, message, data}. Success is signalled by status 200 in the body,
// independent of the HTTP status line.
type Envelope struct {
	Status  int             `json:"status"`
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AppStatus returns the application-level status. A few endpoints report it
// as "code" instead of "status".
func (e *Envelope) AppStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Code
}

// OK reports application-level success.
func (e *Envelope) OK() bool {
	return e.AppStatus() == StatusOK
}

// Err returns an *AppError when the envelope reports failure, nil otherwise.
func (e *Envelope) Err() error {
	if e.OK() {
		return nil
	}
	return &AppError{Status: e.AppStatus(), Message: e.Message}
}

// HasData reports whether the payload is non-empty. Absent, null, false, 0
// and "" count as empty; an empty list or object does not.
func (e *Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	if len(d) == 0 {
		return false
	}
	switch string(d) {
	case "null", "false", "0", `""`:
		return false
	}
	return true
}

// Decode unmarshals the envelope payload into T.
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || !env.HasData() {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decoding payload: %w", err)
	}
	return out, nil
}
