package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Role is the workspace an authenticated actor belongs to.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// ParseRole accepts only the closed set of roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Label is the short role caption shown under the user's name.
func (r Role) Label() string {
	if r == RoleAdmin {
		return "Admin User"
	}
	return "Client"
}

// Session is the identity active in one browser context. The JSON layout is
// also the persisted snapshot format.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Initial is the first letter of the display name, used for the avatar badge.
func (s *Session) Initial() string {
	for _, r := range s.Name {
		return string(r)
	}
	return ""
}

// Clone returns an independent copy; nil stays nil.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// MarshalSnapshot serialises the session for durable storage.
func (s *Session) MarshalSnapshot() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	return string(b), nil
}

// UnmarshalSnapshot parses a stored snapshot. Anything that is not a JSON
// object with a known role is reported as ErrCorruptSnapshot.
func UnmarshalSnapshot(raw string) (*Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, errors.Join(ErrCorruptSnapshot, err)
	}
	if !s.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrCorruptSnapshot, s.Role)
	}
	return &s, nil
}
