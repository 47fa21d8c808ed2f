package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/service"
	"github.com/Skotchmaster/campus_complaints/internal/transport"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.Svc.Register(ctx, service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		StudentID:       req.StudentID,
		Department:      req.Department,
	})
	if err != nil {
		return fail(l, "register_error", err)
	}

	return c.JSON(http.StatusCreated, transport.AuthResponse{
		Success: true,
		Message: "Registration successful",
		Token:   res.Token,
		User:    transport.NewUserResponse(res.User),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	return h.login(c, domain.RoleStudent, "Login successful", "Invalid credentials")
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin, "Admin login successful", "Invalid admin credentials")
}

func (h *AuthHTTP) login(c echo.Context, role domain.Role, okMsg, failMsg string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login", "role", string(role))

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, failMsg).SetInternal(err)
		}
		return fail(l, "login_failed", err)
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{
		Success: true,
		Message: okMsg,
		Token:   res.Token,
		User:    transport.NewUserResponse(res.User),
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	u, err := h.Svc.Me(ctx, claimsFrom(c))
	if err != nil {
		return fail(l, "me_failed", err)
	}
	return c.JSON(http.StatusOK, transport.MeResponse{Success: true, User: transport.NewUserResponse(u)})
}
