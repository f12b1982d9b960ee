package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/service"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=1024"`
	Role     string `json:"role"     validate:"required,oneof=admin client"`
}

type loginResponse struct {
	Session  *domain.Session `json:"session"`
	Redirect string          `json:"redirect"`
}

// sessionResponse.LoginPending lets the login screen keep its submit
// controls disabled while a login is in flight.
type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Loading       bool            `json:"loading"`
	LoginPending  bool            `json:"login_pending"`
	Session       *domain.Session `json:"session,omitempty"`
}

// Login signs the browser context in to the requested workspace.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and workspace role"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]any
// @Router       /api/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return domain.ErrValidation
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := ctxProvider(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	// A login racing the initial restore would be overwritten by it.
	p.WaitReady(ctx)

	sess, err := p.Login(ctx, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Session:  sess,
		Redirect: service.HomeFor(sess.Role),
	})
}

// Current reports the session state of the browser context.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	p, err := ctxProvider(c)
	if err != nil {
		return err
	}

	st := p.State()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: st.Authenticated(),
		Loading:       st.Loading,
		LoginPending:  p.LoginPending(),
		Session:       st.Session,
	})
}

// Logout clears the session. Logging out twice is not an error.
//
// @Summary      Logout
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	p, err := ctxProvider(c)
	if err != nil {
		return err
	}

	p.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
