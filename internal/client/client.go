// Package client exposes the typed Inkwell API surface: auth, articles,
// comments and profiles over one shared outbound pipeline with automatic
// token renewal and list caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inkwell-cms/inkwell-go/internal/apierr"
	"github.com/inkwell-cms/inkwell-go/internal/errs"
	"github.com/inkwell-cms/inkwell-go/internal/listcache"
	"github.com/inkwell-cms/inkwell-go/internal/reauth"
	"github.com/inkwell-cms/inkwell-go/internal/session"
	"github.com/inkwell-cms/inkwell-go/internal/tokenstore"
	"github.com/inkwell-cms/inkwell-go/internal/transport"
)

// maxErrorBody bounds how much of an error payload is read for normalizing.
const maxErrorBody = 1 << 20

// Options configures a Client. Zero values get sensible defaults.
type Options struct {
	// BaseURL is the API root, e.g. "https://blog.example.com/api/v1/".
	BaseURL string
	// Store holds the persistent session; defaults to an in-memory store.
	Store tokenstore.Store
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Timeout bounds each request end to end; defaults to 30s.
	Timeout time.Duration
	// CacheTTL bounds list-cache freshness; defaults to listcache.DefaultTTL.
	CacheTTL time.Duration
	// RequestsPerSecond throttles outbound traffic; 0 disables.
	RequestsPerSecond float64
}

// Client is the Inkwell API client. All feature traffic flows through one
// pipeline: bearer attach, request ids, optional throttle, logging, and
// 401 recovery outermost so replays re-enter the whole chain.
type Client struct {
	base        *url.URL
	http        *http.Client
	plain       *http.Client // no reauth; used for the refresh call itself
	store       tokenstore.Store
	cache       *listcache.Cache
	coordinator *reauth.Coordinator
	log         *zap.Logger

	Auth     *AuthService
	Articles *ArticlesService
	Comments *CommentsService
	Profiles *ProfilesService
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q: scheme and host required", opts.BaseURL)
	}

	store := opts.Store
	if store == nil {
		store = tokenstore.NewMemory()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	c := &Client{
		base:  base,
		plain: &http.Client{Timeout: timeout},
		store: store,
		cache: listcache.New(opts.CacheTTL),
		log:   log,
	}

	pipeline := transport.Bearer(http.DefaultTransport, store)
	pipeline = transport.RequestID(pipeline)
	pipeline = transport.Throttle(pipeline, limiter)
	pipeline = transport.Logging(pipeline, log)
	c.coordinator = reauth.NewCoordinator(pipeline, store, c.refreshAccessToken, log)
	c.http = &http.Client{Transport: c.coordinator, Timeout: timeout}

	c.Auth = &AuthService{c: c}
	c.Articles = &ArticlesService{c: c}
	c.Comments = &CommentsService{c: c}
	c.Profiles = &ProfilesService{c: c}
	return c, nil
}

// OnForcedLogout registers a session-controller callback fired when token
// renewal fails irrecoverably.
func (c *Client) OnForcedLogout(fn func(error)) { c.coordinator.OnForcedLogout(fn) }

// Store exposes the session store for the embedding application.
func (c *Client) Store() tokenstore.Store { return c.store }

// Session derives the current gating flags from stored state. On cold
// start a stored token plus user record reads as authenticated until the
// first request proves otherwise.
func (c *Client) Session() session.Flags {
	return session.Derive(c.store.User(), c.store.AccessToken())
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	u := *c.base
	joined, err := url.JoinPath(u.Path, path)
	if err != nil {
		return "", fmt.Errorf("join url path: %w", err)
	}
	u.Path = joined
	// the backend routes on the trailing slash
	if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
		u.Path += "/"
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// do issues one API request. in (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded 2xx body. Non-2xx responses come back as
// a normalized *apierr.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	target, err := c.endpoint(path, query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// session expiry and caller cancellation keep their identity;
		// everything else is a transport failure with no response
		if errors.Is(err, errs.ErrSessionExpired) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return apierr.FromTransport(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierr.Normalize(resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// refreshAccessToken is the RefreshFunc handed to the coordinator. It
// deliberately uses the plain client: the refresh call must never recurse
// into 401 recovery.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	raw, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	target, err := c.endpoint("auth/token/refresh", nil)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.plain.Do(req)
	if err != nil {
		return "", apierr.FromTransport(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", apierr.Normalize(resp.StatusCode, body)
	}
	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("refresh response missing access token")
	}
	return out.Access, nil
}
