package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/logging"
	"github.com/gordopods/storefront/pkg/middleware/csrf"
	"github.com/gordopods/storefront/pkg/tokens"
)

type AuthHTTP struct {
	Svc  *service.AuthService
	CSRF csrf.Config
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return failure(l, "login_failed", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.AccessToken, "/", res.AccessExp))
	csrfToken, err := csrf.Issue(c, h.CSRF)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue csrf token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue csrf token")
	}

	l.Info("login_successful", "username", req.Username)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		CSRFToken: csrfToken,
		ExpiresAt: res.AccessExp.Unix(),
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.logout")

	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}
