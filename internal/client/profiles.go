package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// ProfilesService reads and updates user profiles.
type ProfilesService struct {
	c *Client
}

// ProfileInput is the profile update payload; empty fields are omitted.
type ProfileInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Get fetches a user's profile by id.
func (s *ProfilesService) Get(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("profiles/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Self fetches the authenticated user's own profile.
func (s *ProfilesService) Self(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := s.c.do(ctx, http.MethodGet, "profiles/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces profile fields. When the updated profile belongs to the
// current session, the stored user record is replaced wholesale so the
// derived session flags track the change.
func (s *ProfilesService) Update(ctx context.Context, id int64, in ProfileInput) (*model.User, error) {
	var out model.User
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("profiles/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	if cur := s.c.store.User(); cur != nil && cur.ID == out.ID {
		if err := s.c.store.SetUser(&out); err != nil {
			return nil, err
		}
	}
	return &out, nil
}
