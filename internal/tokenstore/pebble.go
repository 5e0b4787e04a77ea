package tokenstore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// PebbleStore keeps the session in a Pebble database on disk, the local
// durable store of the client host.
type PebbleStore struct {
	db  *pebble.DB
	log *zap.Logger
}

var _ Store = (*PebbleStore)(nil)

// OpenPebble opens (or creates) the store at path.
func OpenPebble(path string, log *zap.Logger) (*PebbleStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	log.Debug("token store opened", zap.String("path", path))
	return &PebbleStore{db: db, log: log}, nil
}

// Close releases the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

// get swallows not-found; any other read error is logged and treated as
// absent, so a corrupt store degrades to "logged out" instead of wedging
// every request.
func (s *PebbleStore) get(key string) []byte {
	v, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			s.log.Warn("token store read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	out := append([]byte(nil), v...)
	_ = closer.Close()
	return out
}

func (s *PebbleStore) AccessToken() string  { return string(s.get(KeyAccessToken)) }
func (s *PebbleStore) RefreshToken() string { return string(s.get(KeyRefreshToken)) }

func (s *PebbleStore) User() *model.User { return unmarshalUser(s.get(KeyUser)) }

// SetSession writes the triple in one batch so a crash mid-login cannot
// leave tokens without a user record or vice versa.
func (s *PebbleStore) SetSession(tokens model.TokenPair, u *model.User) error {
	raw, err := marshalUser(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	b := s.db.NewBatch()
	defer func() { _ = b.Close() }()
	if err := b.Set([]byte(KeyAccessToken), []byte(tokens.AccessToken), nil); err != nil {
		return err
	}
	if err := b.Set([]byte(KeyRefreshToken), []byte(tokens.RefreshToken), nil); err != nil {
		return err
	}
	if err := b.Set([]byte(KeyUser), raw, nil); err != nil {
		return err
	}
	return b.Commit(pebble.Sync)
}

func (s *PebbleStore) SetAccessToken(token string) error {
	return s.db.Set([]byte(KeyAccessToken), []byte(token), pebble.Sync)
}

func (s *PebbleStore) SetUser(u *model.User) error {
	raw, err := marshalUser(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.db.Set([]byte(KeyUser), raw, pebble.Sync)
}

func (s *PebbleStore) Preference(key string) string { return string(s.get(key)) }

func (s *PebbleStore) SetPreference(key, value string) error {
	return s.db.Set([]byte(key), []byte(value), pebble.Sync)
}

// Clear wipes the session triple in one batch. Preferences are kept.
func (s *PebbleStore) Clear() error {
	b := s.db.NewBatch()
	defer func() { _ = b.Close() }()
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := b.Delete([]byte(key), nil); err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}
