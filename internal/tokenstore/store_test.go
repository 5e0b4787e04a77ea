package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	p, err := OpenPebble(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return map[string]Store{"pebble": p, "memory": NewMemory()}
}

func TestStore_SessionRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.Empty(t, s.AccessToken())
			require.Empty(t, s.RefreshToken())
			require.Nil(t, s.User())

			u := &model.User{ID: 1, Username: "alice", Groups: []string{"editors"}}
			require.NoError(t, s.SetSession(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, u))

			require.Equal(t, "acc", s.AccessToken())
			require.Equal(t, "ref", s.RefreshToken())
			require.Equal(t, u, s.User())
		})
	}
}

func TestStore_SetAccessTokenKeepsRefresh(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SetSession(model.TokenPair{AccessToken: "old", RefreshToken: "ref"}, &model.User{ID: 1}))
			require.NoError(t, s.SetAccessToken("new"))
			require.Equal(t, "new", s.AccessToken())
			require.Equal(t, "ref", s.RefreshToken())
			require.NotNil(t, s.User())
		})
	}
}

func TestStore_ClearKeepsPreferences(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SetSession(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, &model.User{ID: 1}))
			require.NoError(t, s.SetPreference(KeyPrefTheme, "dark"))

			require.NoError(t, s.Clear())

			require.Empty(t, s.AccessToken())
			require.Empty(t, s.RefreshToken())
			require.Nil(t, s.User())
			require.Equal(t, "dark", s.Preference(KeyPrefTheme))
		})
	}
}

func TestStore_SetUser(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SetUser(&model.User{ID: 2, Username: "bob"}))
			require.Equal(t, "bob", s.User().Username)

			require.NoError(t, s.SetUser(nil))
			require.Nil(t, s.User())
		})
	}
}

func TestPebble_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenPebble(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetSession(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, &model.User{ID: 1, Username: "alice"}))
	require.NoError(t, s.Close())

	s, err = OpenPebble(dir, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.Equal(t, "acc", s.AccessToken())
	require.Equal(t, "alice", s.User().Username)
}
