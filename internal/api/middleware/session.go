package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
)

const (
	ProviderKey = "provider"
	SessionKey  = "session"
	RoleKey     = "role"
)

// ProviderSource resolves the session provider of a browser context.
type ProviderSource interface {
	Get(ctx context.Context, contextID string) *service.SessionProvider
}

// Session attaches the caller's SessionProvider. A provider created by this
// request restores in the background; the request waits up to restoreWait
// for it so that most navigations never observe the loading state. A ready
// provider is re-synced with durable storage, so changes made through other
// replicas are seen.
func Session(providers ProviderSource, restoreWait time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ContextID(c)
			if id == "" {
				return echo.NewHTTPError(http.StatusInternalServerError, "browser context missing")
			}

			ctx := c.Request().Context()
			p := providers.Get(ctx, id)
			if restoreWait > 0 && p.Loading() {
				wctx, cancel := context.WithTimeout(ctx, restoreWait)
				p.WaitReady(wctx)
				cancel()
			}
			p.Refresh(ctx)

			c.Set(ProviderKey, p)
			return next(c)
		}
	}
}

type loadingResponse struct {
	State string `json:"state"`
}

// RequireSession rejects callers without an authenticated session and
// exposes the session and its role to later handlers. While the session is
// still being restored it answers 202 so the client can retry.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h, ok := c.Get(ProviderKey).(service.SessionHandle)
			if !ok {
				return domain.ErrNotAuthenticated
			}

			st := h.State()
			if st.Loading {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, loadingResponse{State: string(service.StateLoading)})
			}
			if st.Session == nil {
				return domain.ErrNotAuthenticated
			}

			c.Set(SessionKey, st.Session)
			c.Set(RoleKey, st.Session.Role)
			return next(c)
		}
	}
}
