package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/efoodhub/backend/internal/logging"
	"github.com/efoodhub/backend/internal/service"
	"github.com/efoodhub/backend/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		status := httpStatus(err)
		l.Warn("register_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	token, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		status := httpStatus(err)
		l.Warn("login_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token})
}
