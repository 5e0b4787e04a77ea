package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	staff := &model.User{ID: 1, IsStaff: true}
	manager := &model.User{ID: 2, Groups: []string{"management"}}
	editor := &model.User{ID: 3, Groups: []string{"editors"}}
	reader := &model.User{ID: 4, Groups: []string{"readers"}}

	cases := []struct {
		name  string
		user  *model.User
		token string
		want  Flags
	}{
		{"nil user", nil, "tok", Flags{}},
		{"no token", reader, "", Flags{IsAuthenticated: false}},
		{"staff", staff, "tok", Flags{IsAuthenticated: true, IsAdmin: true, IsEditor: true}},
		{"management group", manager, "tok", Flags{IsAuthenticated: true, IsAdmin: true, IsEditor: true}},
		{"editors group", editor, "tok", Flags{IsAuthenticated: true, IsAdmin: false, IsEditor: true}},
		{"plain user", reader, "tok", Flags{IsAuthenticated: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Derive(tc.user, tc.token))
		})
	}
}

func TestOwnership(t *testing.T) {
	t.Parallel()

	author := &model.User{ID: 7}
	other := &model.User{ID: 8}
	admin := &model.User{ID: 9, IsStaff: true}
	article := &model.Article{ID: 1, AuthorID: 7}

	require.True(t, IsOwner(author, article))
	require.False(t, IsOwner(other, article))
	require.False(t, IsOwner(nil, article))
	require.False(t, IsOwner(author, nil))

	require.True(t, CanEdit(author, article))
	require.True(t, CanEdit(admin, article))
	require.False(t, CanEdit(other, article))

	require.True(t, CanDelete(admin))
	require.False(t, CanDelete(author))
}

func TestOwnershipOnComments(t *testing.T) {
	t.Parallel()

	u := &model.User{ID: 3}
	c := &model.CommentNode{ID: 11, AuthorID: 3}
	require.True(t, IsOwner(u, c))
}
