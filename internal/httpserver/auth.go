package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-legal-analyzer/auth-service/internal/middleware"
	"github.com/ai-legal-analyzer/auth-service/internal/service"
	"github.com/ai-legal-analyzer/auth-service/pkg/logging"
	"github.com/ai-legal-analyzer/auth-service/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, err := h.Svc.Register(ctx, service.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, echo.Map{
				"code":    "user_already_exists",
				"message": "a user with this username already exists",
				"target":  "username",
			})
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, echo.Map{
				"code":    "user_already_exists",
				"message": "a user with this email is already registered",
				"target":  "email",
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"transaction": "Successful",
		"user_id":     userID,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	accessToken, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrExpired):
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token expired")
		case errors.Is(err, service.ErrWrongTokenType):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token type")
		case errors.Is(err, service.ErrTokenRevoked):
			return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		case errors.Is(err, tokens.ErrMalformed), errors.Is(err, tokens.ErrSignatureInvalid):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

func (h *AuthHTTP) ReadCurrentUser(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate user")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": identity})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate user")
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Logout(ctx, req.RefreshToken, identity); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
		case errors.Is(err, service.ErrAlreadyRevoked):
			return echo.NewHTTPError(http.StatusConflict, "token already revoked")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "successfully logged out"})
}
