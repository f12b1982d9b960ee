package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
)

type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

type navigationResponse struct {
	Brand    string                     `json:"brand"`
	Role     domain.Role                `json:"role"`
	Sections []domain.NavigationSection `json:"sections"`
	Actions  []domain.NavigationAction  `json:"actions"`
}

// View evaluates a navigation without following it.
//
// @Summary      Resolve a navigation
// @Tags         view
// @Produce      json
// @Param        path  query     string  true  "Requested path"
// @Success      200   {object}  service.Decision
// @Success      202   {object}  service.Decision
// @Router       /api/view [get]
func (h *ViewHandler) View(c echo.Context) error {
	d, err := resolve(c, c.QueryParam("path"))
	if err != nil {
		return err
	}
	return c.JSON(statusFor(c, d), d)
}

// Navigate serves browser navigations: redirects are followed with a 302,
// rendered pages come back as their view model.
func (h *ViewHandler) Navigate(c echo.Context) error {
	d, err := resolve(c, c.Request().URL.Path)
	if err != nil {
		return err
	}
	if d.Outcome == service.OutcomeRedirect {
		return c.Redirect(http.StatusFound, d.Location)
	}
	return c.JSON(statusFor(c, d), d)
}

// Navigation returns the sidebar of the signed-in role with the entry for
// path marked active.
//
// @Summary      Sidebar navigation
// @Tags         view
// @Produce      json
// @Param        path  query     string  false  "Current path"
// @Success      200   {object}  navigationResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/navigation [get]
func (h *ViewHandler) Navigation(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	path := service.NormalizePath(c.QueryParam("path"))
	return c.JSON(http.StatusOK, navigationResponse{
		Brand:    service.BrandName,
		Role:     sess.Role,
		Sections: service.NavigationFor(sess.Role, path),
		Actions:  []domain.NavigationAction{service.LogoutAction},
	})
}

func resolve(c echo.Context, path string) (service.Decision, error) {
	p, err := ctxProvider(c)
	if err != nil {
		return service.Decision{}, err
	}
	return service.NewRouteGuard(p).Resolve(path), nil
}

func statusFor(c echo.Context, d service.Decision) int {
	if d.Outcome == service.OutcomeWait {
		c.Response().Header().Set("Retry-After", "1")
		return http.StatusAccepted
	}
	return http.StatusOK
}
