// Package tokenstore persists the session triple (access token, refresh
// token, user record) plus UI preferences in a local key-value store.
//
// Write discipline: in steady state only the reauthentication coordinator
// writes the access token; login/register write the whole triple in one
// atomic SetSession and logout clears it, so readers never observe a
// half-updated session.
package tokenstore

import (
	"encoding/json"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// Storage keys. Stable: an existing data dir must keep working across
// client versions.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyPrefTheme    = "pref_theme"
)

// Store is the persistent session state shared by the transport (reads
// the access token per request), the reauthentication coordinator (writes
// it) and the auth service (writes the triple).
type Store interface {
	// AccessToken returns the stored access token, or "".
	AccessToken() string
	// RefreshToken returns the stored refresh token, or "".
	RefreshToken() string
	// User returns the cached user record, or nil.
	User() *model.User
	// SetSession atomically stores both tokens and the user record.
	SetSession(tokens model.TokenPair, u *model.User) error
	// SetAccessToken replaces only the access token (refresh path).
	SetAccessToken(token string) error
	// SetUser replaces only the cached user record (profile update).
	SetUser(u *model.User) error
	// Preference returns a UI preference value, or "".
	Preference(key string) string
	// SetPreference stores a UI preference value.
	SetPreference(key, value string) error
	// Clear wipes the session triple. Preferences survive logout.
	Clear() error
}

func marshalUser(u *model.User) ([]byte, error) {
	if u == nil {
		return nil, nil
	}
	return json.Marshal(u)
}

func unmarshalUser(b []byte) *model.User {
	if len(b) == 0 {
		return nil
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil
	}
	return &u
}
