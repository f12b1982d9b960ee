package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
)

// AccountAuthenticator checks credentials against stored accounts.
// The display name comes from the account rather than the requested role.
type AccountAuthenticator struct {
	repo ports.AccountRepository
}

func NewAccountAuthenticator(repo ports.AccountRepository) *AccountAuthenticator {
	return &AccountAuthenticator{repo: repo}
}

// Register creates an account with a bcrypt-hashed password.
func (a *AccountAuthenticator) Register(ctx context.Context, email, password, name string, roles []domain.Role) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || len(roles) == 0 {
		return nil, domain.ErrValidation
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, r)
		}
	}
	if name == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return a.repo.Create(ctx, &domain.Account{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Roles:        roles,
		Avatar:       mockAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Authenticate resolves the account, verifies the password and checks the
// account may enter the requested workspace. Every mismatch is reported as
// ErrInvalidCredentials so callers cannot probe which part was wrong.
func (a *AccountAuthenticator) Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := a.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !acct.HasRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Session{
		ID:     acct.ID,
		Name:   acct.Name,
		Email:  acct.Email,
		Role:   role,
		Avatar: acct.Avatar,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
