// Package session derives UI-gating flags from the current user record.
// Everything here is a pure derivation recomputed on every read; there is
// no cached state to go stale.
package session

import (
	"slices"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// Group names recognized by the backend.
const (
	GroupManagement = "management"
	GroupEditors    = "editors"
)

// Resource is anything with an owning author.
type Resource interface {
	OwnedBy() int64
}

// Flags are the derived gate booleans for the current session.
type Flags struct {
	IsAuthenticated bool
	IsAdmin         bool
	IsEditor        bool
}

// Derive computes session flags from the user record and access token.
// Authentication requires both a user record and a non-empty token.
func Derive(u *model.User, accessToken string) Flags {
	f := Flags{
		IsAuthenticated: u != nil && accessToken != "",
		IsAdmin:         IsAdmin(u),
	}
	f.IsEditor = f.IsAdmin || (u != nil && slices.Contains(u.Groups, GroupEditors))
	return f
}

// IsAdmin reports whether the user is staff or in the management group.
func IsAdmin(u *model.User) bool {
	if u == nil {
		return false
	}
	return u.IsStaff || slices.Contains(u.Groups, GroupManagement)
}

// IsEditor reports whether the user is an admin or in the editors group.
func IsEditor(u *model.User) bool {
	if u == nil {
		return false
	}
	return IsAdmin(u) || slices.Contains(u.Groups, GroupEditors)
}

// IsOwner reports whether the user authored the resource.
func IsOwner(u *model.User, r Resource) bool {
	if u == nil || r == nil {
		return false
	}
	return r.OwnedBy() == u.ID
}

// CanEdit reports whether the user may edit the resource: admins, editors
// and the author itself.
func CanEdit(u *model.User, r Resource) bool {
	return IsAdmin(u) || IsEditor(u) || IsOwner(u, r)
}

// CanDelete reports whether the user may delete resources. Admins only.
func CanDelete(u *model.User) bool {
	return IsAdmin(u)
}
