package service

import (
	"context"
	"fmt"
	"time"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

const (
	mockAdminName  = "Allan Smith"
	mockClientName = "Client User"
	mockAvatar     = "/avatar.png"
)

// MockAuthenticator accepts any credentials after an artificial delay that
// stands in for a network round-trip. The display name depends only on role.
type MockAuthenticator struct {
	delay time.Duration
}

func NewMockAuthenticator(delay time.Duration) *MockAuthenticator {
	if delay < 0 {
		delay = 0
	}
	return &MockAuthenticator{delay: delay}
}

func (a *MockAuthenticator) Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, ctx.Err())
		case <-timer.C:
		}
	}

	name := mockClientName
	if role == domain.RoleAdmin {
		name = mockAdminName
	}
	return &domain.Session{
		ID:     "1",
		Name:   name,
		Email:  email,
		Role:   role,
		Avatar: mockAvatar,
	}, nil
}
