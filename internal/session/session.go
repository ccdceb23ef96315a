// Package session models the authenticated identity every screen depends on.
//
// The session is read-only, created once at startup from the stored profile,
// and passed explicitly to whatever needs it (constructor parameter, never a
// global), so screens are testable with a fake session. Token issuance and
// refresh are the backend's business; this package only carries the result.
package session

import (
	"errors"
	"fmt"
)

// Role is the explicit access variant of a user. Role-dependent fields live
// on the variant (ClubID, SponsorID) instead of appearing and disappearing
// dynamically.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleClub    Role = "club"
	RoleSponsor Role = "sponsor"
)

// ParseRole validates a role string from config or the backend.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClub, RoleSponsor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("session: unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is the authenticated identity.
type User struct {
	ID    int64
	Nome  string
	Email string
	Role  Role

	// ClubID is set only when Role == RoleClub.
	ClubID int64
	// SponsorID is set only when Role == RoleSponsor.
	SponsorID int64
}

// Session bundles the user with the bearer token used on every request.
type Session struct {
	User  User
	Token string
}

// ErrNoSession means no stored login was found.
var ErrNoSession = errors.New("session: not logged in")

// RoleMismatchError means a screen was opened with a session of the wrong
// role; the caller redirects to the role's login entry point.
type RoleMismatchError struct {
	Want Role
	Got  Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("session: requires role %s, logged in as %s", e.Want, e.Got)
}

// Require checks the session exists and carries one of the accepted roles.
func Require(s *Session, roles ...Role) error {
	if s == nil || s.Token == "" {
		return ErrNoSession
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if s.User.Role == r {
			return nil
		}
	}
	return &RoleMismatchError{Want: roles[0], Got: s.User.Role}
}
