// Package transport assembles the outbound HTTP pipeline as a chain of
// http.RoundTrippers: bearer-token attach, request IDs, rate limiting and
// structured logging. Each layer clones the request before touching it;
// none of them persist or mutate session state.
package transport

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource yields the current access token; empty means unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// RequestIDHeader carries the client-generated correlation id.
const RequestIDHeader = "X-Request-ID"

type bearer struct {
	next   http.RoundTripper
	tokens TokenSource
}

// Bearer attaches "Authorization: Bearer <token>" to every request when a
// token is present, and leaves the request untouched otherwise
// (unauthenticated endpoints tolerate a missing header). The token is read
// per request, so a refresh mid-flight is picked up by the next attempt.
func Bearer(next http.RoundTripper, tokens TokenSource) http.RoundTripper {
	return &bearer{next: next, tokens: tokens}
}

func (b *bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := b.tokens.AccessToken()
	if tok == "" {
		return b.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+tok)
	return b.next.RoundTrip(clone)
}

type requestID struct {
	next http.RoundTripper
}

// RequestID stamps every outbound request with a fresh X-Request-ID so
// client and server logs can be correlated.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return &requestID{next: next}
}

func (r *requestID) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return r.next.RoundTrip(req)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return r.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, id.String())
	return r.next.RoundTrip(clone)
}

type logging struct {
	next http.RoundTripper
	log  *zap.Logger
}

// Logging logs request metadata and outcome. Payloads are never logged.
func Logging(next http.RoundTripper, log *zap.Logger) http.RoundTripper {
	if log == nil {
		log = zap.NewNop()
	}
	return &logging{next: next, log: log}
}

func (l *logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.next.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("dur", time.Since(start)),
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
	}
	if err != nil {
		l.log.Warn("http transport error", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.log.Debug("http", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

type throttled struct {
	next http.RoundTripper
	lim  *rate.Limiter
}

// Throttle blocks requests until the limiter grants a slot, bounding the
// client's outbound request rate. A nil limiter disables throttling.
func Throttle(next http.RoundTripper, lim *rate.Limiter) http.RoundTripper {
	if lim == nil {
		return next
	}
	return &throttled{next: next, lim: lim}
}

func (t *throttled) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.lim.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
