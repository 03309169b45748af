package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Fault is the application-level failure carried by a failed Envelope.
// It doubles as an error so resource clients can return it directly.
type Fault struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("upstream fault %s: %s", f.Code, f.Description)
}

// Envelope is the canonical response shape every resource client works with.
// Exactly one of Value or Error is authoritative, gated by IsSuccess.
type Envelope struct {
	Value     json.RawMessage `json:"value"`
	IsSuccess bool            `json:"isSuccess"`
	Error     *Fault          `json:"error,omitempty"`
}

// Failure returns the fault of a failed envelope, synthesizing one when the
// upstream omitted details.
func (e *Envelope) Failure(fallback string) *Fault {
	if e.Error != nil && e.Error.Description != "" {
		return e.Error
	}
	return &Fault{Code: "UNKNOWN", Description: fallback}
}

// envelopeProbe detects the canonical shape without committing to it:
// a present boolean isSuccess marks the body as an envelope already.
type envelopeProbe struct {
	IsSuccess *bool           `json:"isSuccess"`
	Value     json.RawMessage `json:"value"`
	Error     *Fault          `json:"error"`
}

// Normalize absorbs the upstream API's inconsistent response shapes and
// produces the one guaranteed Envelope. The probe order on success bodies:
//
//  1. body already carries a boolean isSuccess → returned as-is
//  2. bare JSON array → wrapped as the value
//  3. object with a value field → lifted
//  4. any other 2xx body → the body itself is the value
//
// Error statuses always produce a failure envelope whose description is
// probed from error.description, then message, then the first element of a
// validation title array, then the per-operation fallback. An undecodable
// success body is a loud ErrMalformedResponse rather than a silent empty
// value: conflating "no data" with "unrecognized shape" hides real failures.
func Normalize(status int, body []byte, fallback string) (*Envelope, error) {
	if status >= http.StatusBadRequest {
		return failureEnvelope(status, body, fallback), nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		// Empty 2xx bodies are common on DELETE.
		return &Envelope{IsSuccess: true}, nil
	}

	switch trimmed[0] {
	case '[':
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: invalid JSON array", ErrMalformedResponse)
		}
		return &Envelope{Value: trimmed, IsSuccess: true}, nil
	case '{':
		var probe envelopeProbe
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if probe.IsSuccess != nil {
			return &Envelope{Value: probe.Value, IsSuccess: *probe.IsSuccess, Error: probe.Error}, nil
		}
		if len(probe.Value) > 0 && !bytes.Equal(probe.Value, []byte("null")) {
			return &Envelope{Value: probe.Value, IsSuccess: true}, nil
		}
		return &Envelope{Value: trimmed, IsSuccess: true}, nil
	}

	if json.Valid(trimmed) {
		// Scalar JSON on a 2xx, e.g. a bare identifier.
		return &Envelope{Value: trimmed, IsSuccess: true}, nil
	}
	return nil, fmt.Errorf("%w: body is not JSON", ErrMalformedResponse)
}

func failureEnvelope(status int, body []byte, fallback string) *Envelope {
	code := "UNKNOWN"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	desc := probeDescription(body)
	if desc == "" {
		desc = fallback
	}
	return &Envelope{IsSuccess: false, Error: &Fault{Code: code, Description: desc}}
}

// probeDescription extracts a human-readable message from an error body.
// The title field is the ASP.NET validation shape: an array of messages.
func probeDescription(body []byte) string {
	var probe struct {
		Error   *Fault          `json:"error"`
		Message string          `json:"message"`
		Title   json.RawMessage `json:"title"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &probe); err != nil {
		return ""
	}
	if probe.Error != nil && probe.Error.Description != "" {
		return probe.Error.Description
	}
	if probe.Message != "" {
		return probe.Message
	}
	var titles []string
	if err := json.Unmarshal(probe.Title, &titles); err == nil && len(titles) > 0 {
		return titles[0]
	}
	return ""
}

// decodeValue unmarshals an envelope value into dst. A nil value is decoded
// as the zero value so empty DELETE responses stay usable.
func decodeValue(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// decodeList unmarshals a value that is either a bare array or an object
// wrapping the array under wrapperKey (e.g. {"users": [...]}).
func decodeList[T any](raw json.RawMessage, wrapperKey string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return items, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	inner, ok := wrapper[wrapperKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q field", ErrMalformedResponse, wrapperKey)
	}
	var items []T
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return items, nil
}
