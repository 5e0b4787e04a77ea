// Package apierr normalizes heterogeneous backend error payloads into a
// single error type. The server answers with a string body, {"message"},
// {"detail"}, {"error"}, {"non_field_errors": [..]} or a per-field map
// depending on the code path; parsing happens once, here, so the rest of
// the client branches on one shape.
package apierr

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/inkwell-cms/inkwell-go/internal/errs"
)

// fallbackMessage is used when no recognizable shape is found in the payload.
const fallbackMessage = "request failed"

// noResponseMessage is used for transport-level failures.
const noResponseMessage = "no response from server, check your connection"

// Error is the normalized form of any backend failure.
type Error struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int
	// Message is a human-readable summary.
	Message string
	// FieldErrors maps form field names to display strings.
	FieldErrors map[string]string

	sentinel error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unwrap exposes the taxonomy sentinel so callers can branch with errors.Is.
func (e *Error) Unwrap() error { return e.sentinel }

// Normalize parses a non-2xx response body into an Error. It never fails:
// an unrecognizable payload yields the generic fallback message.
func Normalize(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode:  statusCode,
		Message:     fallbackMessage,
		FieldErrors: map[string]string{},
		sentinel:    sentinelFor(statusCode),
	}

	if len(body) == 0 {
		return e
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		// Not a JSON object: a JSON string or a bare text body is the
		// message itself.
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			e.Message = s
		} else if t := strings.TrimSpace(string(body)); t != "" && !strings.HasPrefix(t, "<") {
			e.Message = t
		}
		return e
	}

	// Message priority: message > detail > error > non_field_errors[0].
	consumed := map[string]bool{}
	for _, key := range []string{"message", "detail", "error"} {
		if v, ok := payload[key].(string); ok {
			if e.Message == fallbackMessage {
				e.Message = v
			}
			consumed[key] = true
		}
	}
	if v, ok := payload["non_field_errors"].([]any); ok {
		if s, ok := first(v); ok && e.Message == fallbackMessage {
			e.Message = s
		}
		consumed["non_field_errors"] = true
	}

	// An explicit errors map wins; otherwise the residual top-level keys
	// are the field errors.
	if m, ok := payload["errors"].(map[string]any); ok {
		for k, v := range m {
			e.FieldErrors[k] = flatten(v)
		}
		return e
	}
	for k, v := range payload {
		if consumed[k] {
			continue
		}
		e.FieldErrors[k] = flatten(v)
	}
	return e
}

// FromTransport wraps a network-level failure (no response received).
func FromTransport(err error) *Error {
	return &Error{
		Message:     noResponseMessage,
		FieldErrors: map[string]string{},
		sentinel:    fmt.Errorf("%w: %w", errs.ErrNoResponse, err),
	}
}

func sentinelFor(statusCode int) error {
	switch {
	case statusCode == 400:
		return errs.ErrValidation
	case statusCode == 401:
		return errs.ErrUnauthorized
	case statusCode == 403:
		return errs.ErrForbidden
	case statusCode == 404:
		return errs.ErrNotFound
	case statusCode >= 500:
		return errs.ErrUnavailable
	default:
		return nil
	}
}

func first(v []any) (string, bool) {
	if len(v) == 0 {
		return "", false
	}
	s, ok := v[0].(string)
	return s, ok
}

// flatten renders a payload value as a display string: arrays joined with
// ", ", nested objects flattened recursively to "key: value" pairs.
func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, flatten(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, flatten(t[k])))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
