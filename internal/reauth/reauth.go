// Package reauth recovers 401 responses by refreshing the access token
// and replaying the failed request once.
//
// The coordinator guarantees a single in-flight refresh: when several
// concurrent requests hit 401 at the same time, one refresh call is
// issued and every suspended request resumes with the renewed token. If
// the refresh itself fails, every suspended request fails with the
// refresh error, the session store is cleared and the forced-logout
// callbacks fire exactly once for that failure.
package reauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/inkwell-cms/inkwell-go/internal/errs"
)

// Store is the slice of session state the coordinator needs: it reads the
// refresh token and is the only steady-state writer of the access token.
type Store interface {
	RefreshToken() string
	SetAccessToken(token string) error
	Clear() error
}

// RefreshFunc exchanges a refresh token for a new access token. It must
// not route through the coordinator itself.
type RefreshFunc func(ctx context.Context, refreshToken string) (accessToken string, err error)

// Coordinator is an http.RoundTripper wrapping the rest of the outbound
// pipeline. Wire it outermost so a replayed request passes back through
// the bearer layer and picks up the renewed token.
type Coordinator struct {
	next    http.RoundTripper
	store   Store
	refresh RefreshFunc
	log     *zap.Logger
	group   singleflight.Group

	mu       sync.Mutex
	onLogout []func(error)
}

// NewCoordinator constructs a Coordinator over the given pipeline.
func NewCoordinator(next http.RoundTripper, store Store, refresh RefreshFunc, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{next: next, store: store, refresh: refresh, log: log}
}

// OnForcedLogout registers a callback invoked when reauthentication fails
// irrecoverably. The HTTP layer has no reference to the session
// controller; this registry is the one decoupling channel between them.
func (c *Coordinator) OnForcedLogout(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLogout = append(c.onLogout, fn)
}

type retriedKey struct{}

func retried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

func (c *Coordinator) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	// A request is retried at most once; a second 401 is the final answer.
	if retried(req.Context()) {
		return resp, nil
	}
	// A consumed body with no way to rebuild it cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return resp, nil
	}

	token, refreshErr := c.renew(req.Context(), refreshToken)
	if refreshErr != nil {
		drain(resp)
		return nil, refreshErr
	}

	drain(resp)
	retry := req.Clone(context.WithValue(req.Context(), retriedKey{}, true))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rebuild request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	c.log.Debug("replaying request after refresh",
		zap.String("method", retry.Method),
		zap.String("path", retry.URL.Path),
	)
	return c.next.RoundTrip(retry)
}

// Renew refreshes the access token now, joining any refresh already in
// flight. Used by the auth service for explicit refreshes; failures carry
// the same clear-and-logout semantics as a failed 401 recovery.
func (c *Coordinator) Renew(ctx context.Context) (string, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return "", errs.ErrNoRefreshToken
	}
	return c.renew(ctx, refreshToken)
}

func (c *Coordinator) renew(ctx context.Context, refreshToken string) (string, error) {
	// Concurrent 401s all join this one flight: exactly one refresh call
	// goes out, and every waiter resumes with its result. The refresh
	// must not die with whichever request happened to start it.
	ctx = context.WithoutCancel(ctx)
	v, err, shared := c.group.Do("refresh", func() (any, error) {
		token, err := c.refresh(ctx, refreshToken)
		if err != nil {
			c.log.Warn("token refresh failed", zap.Error(err))
			if cerr := c.store.Clear(); cerr != nil {
				c.log.Warn("clearing session store failed", zap.Error(cerr))
			}
			failure := fmt.Errorf("%w: %w", errs.ErrSessionExpired, err)
			c.fireLogout(failure)
			return nil, failure
		}
		if serr := c.store.SetAccessToken(token); serr != nil {
			return nil, fmt.Errorf("persist access token: %w", serr)
		}
		c.log.Info("access token refreshed")
		return token, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.log.Debug("joined in-flight token refresh")
	}
	return v.(string), nil
}

func (c *Coordinator) fireLogout(err error) {
	c.mu.Lock()
	callbacks := append([]func(error){}, c.onLogout...)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn(err)
	}
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
