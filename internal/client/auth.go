package client

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	c *Client
}

// RegisterInput is the signup payload. Password2 mirrors Password for the
// backend's confirmation check.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type authResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    *model.User `json:"user"`
}

// Register creates an account and establishes the session.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Password2 == "" {
		in.Password2 = in.Password
	}
	var out authResponse
	if err := s.c.do(ctx, http.MethodPost, "auth/register", nil, in, &out); err != nil {
		return nil, err
	}
	return s.establish(ctx, out)
}

// Login authenticates and establishes the session: both tokens and the
// user record are persisted as one atomic store update.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	creds := map[string]string{"username": username, "password": password}
	var out authResponse
	if err := s.c.do(ctx, http.MethodPost, "auth/token", nil, creds, &out); err != nil {
		return nil, err
	}
	return s.establish(ctx, out)
}

// establish persists the session triple. When the token response carries
// no user record the details are fetched with the fresh token and the
// triple is re-written so readers never see tokens without a user.
func (s *AuthService) establish(ctx context.Context, out authResponse) (*model.User, error) {
	pair := model.TokenPair{AccessToken: out.Access, RefreshToken: out.Refresh}
	if err := s.c.store.SetSession(pair, out.User); err != nil {
		return nil, err
	}
	user := out.User
	if user == nil {
		fetched, err := s.c.Profiles.Self(ctx)
		if err != nil {
			_ = s.c.store.Clear()
			return nil, err
		}
		if err := s.c.store.SetSession(pair, fetched); err != nil {
			return nil, err
		}
		user = fetched
	}
	s.c.log.Info("session established", zap.String("username", user.Username))
	return user, nil
}

// Logout clears the session triple and the list cache. Purely local; the
// backend keeps no session state beyond token validity.
func (s *AuthService) Logout() error {
	s.c.cache.Invalidate(articlesResource)
	return s.c.store.Clear()
}

// Refresh forces a token renewal outside the 401 path, joining any
// renewal already in flight.
func (s *AuthService) Refresh(ctx context.Context) (string, error) {
	return s.c.coordinator.Renew(ctx)
}

// RefreshUserDetails re-fetches and persists the current user record.
func (s *AuthService) RefreshUserDetails(ctx context.Context) (*model.User, error) {
	u, err := s.c.Profiles.Self(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.c.store.SetUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// CurrentUser returns the stored user record, or nil when logged out.
func (s *AuthService) CurrentUser() *model.User { return s.c.store.User() }

// TokenExpiry reports the stored access token's expiry claim. The token
// is decoded without signature validation; the server remains the
// authority and the client merely reacts to 401s.
func (s *AuthService) TokenExpiry() (time.Time, bool) {
	tok := s.c.store.AccessToken()
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
