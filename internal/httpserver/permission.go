package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ai-legal-analyzer/auth-service/internal/middleware"
	"github.com/ai-legal-analyzer/auth-service/internal/service"
)

type PermissionHTTP struct {
	Svc *service.PermissionService
}

func (h *PermissionHTTP) SetAdmin(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate user")
	}

	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if err := h.Svc.GrantAdmin(c.Request().Context(), identity, targetID); err != nil {
		return permissionError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "user is now admin"})
}

func (h *PermissionHTTP) RevokeAdmin(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate user")
	}

	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if err := h.Svc.RevokeAdmin(c.Request().Context(), identity, targetID); err != nil {
		return permissionError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "user is no longer admin"})
}

func (h *PermissionHTTP) Delete(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate user")
	}

	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	alreadyDeleted, err := h.Svc.SoftDelete(c.Request().Context(), identity, targetID)
	if err != nil {
		return permissionError(err)
	}

	if alreadyDeleted {
		return c.JSON(http.StatusOK, echo.Map{"detail": "user has already been deleted"})
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "user is deleted"})
}

func targetUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func permissionError(err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "you don't have admin permission")
	case errors.Is(err, service.ErrTargetNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrAlreadyAdmin):
		return echo.NewHTTPError(http.StatusBadRequest, "user is already admin")
	case errors.Is(err, service.ErrNotAdmin):
		return echo.NewHTTPError(http.StatusBadRequest, "user is already not admin")
	case errors.Is(err, service.ErrCannotDeleteAdmin):
		return echo.NewHTTPError(http.StatusForbidden, "you can't delete admin user")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "operation failed")
	}
}
