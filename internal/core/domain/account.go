package domain

import (
	"slices"
	"time"
)

// Account is a credential record consulted by the account-backed authenticator.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the account may sign in to the given workspace.
func (a *Account) HasRole(r Role) bool {
	return slices.Contains(a.Roles, r)
}
