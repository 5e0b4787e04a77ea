// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across transport/client layers.
var (
	// ErrNotFound indicates the requested entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks permission (403).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates the server rejected the payload (400 with field errors).
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a server-side failure (5xx).
	ErrUnavailable = errors.New("server unavailable")

	// ErrNoResponse indicates the request never reached the server.
	ErrNoResponse = errors.New("no response from server")

	// ErrNoRefreshToken indicates a 401 with no refresh token to recover with.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrSessionExpired indicates refresh itself failed; the session is gone.
	ErrSessionExpired = errors.New("session expired")
)
