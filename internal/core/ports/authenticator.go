package ports

import (
	"context"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

// Authenticator turns submitted credentials into a session. Implementations
// return domain.ErrInvalidCredentials or domain.ErrNetwork on failure.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
}
