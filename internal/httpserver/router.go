package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-legal-analyzer/auth-service/internal/middleware"
)

type Deps struct {
	AuthHandler       *AuthHTTP
	PermissionHandler *PermissionHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewBearerAuth(d.AuthHandler.Svc)

	auth := e.Group("/auth")
	auth.POST("/", d.AuthHandler.Register)
	auth.POST("/token", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.GET("/read_current_user", d.AuthHandler.ReadCurrentUser, authMw.RequireAuth)
	auth.POST("/logout", d.AuthHandler.Logout, authMw.RequireAuth)

	permission := e.Group("/permission", authMw.RequireAuth)
	permission.PATCH("/set-admin-permission", d.PermissionHandler.SetAdmin)
	permission.PATCH("/revoke-admin-permission", d.PermissionHandler.RevokeAdmin)
	permission.DELETE("/delete", d.PermissionHandler.Delete)
}
