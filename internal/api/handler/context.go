package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roseyco/agency-portal/internal/api/middleware"
	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
)

// sessionProvider is the slice of *service.SessionProvider the handlers use.
type sessionProvider interface {
	State() service.ProviderState
	WaitReady(ctx context.Context) bool
	LoginPending() bool
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
	Logout(ctx context.Context)
}

// ctxProvider extracts the provider attached by the Session middleware.
func ctxProvider(c echo.Context) (sessionProvider, error) {
	p, ok := c.Get(middleware.ProviderKey).(sessionProvider)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session provider missing")
	}
	return p, nil
}

// ctxSession extracts the session set by RequireSession.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return sess, nil
}
