package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ai-legal-analyzer/auth-service/internal/service"
)

const identityKey = "identity"

type BearerAuth struct {
	Auth *service.AuthService
}

func NewBearerAuth(auth *service.AuthService) *BearerAuth {
	return &BearerAuth{Auth: auth}
}

// RequireAuth resolves the caller's identity from the Authorization header
// and stores it on the echo context for the handler.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		identity, err := m.Auth.CurrentUser(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(identityKey, *identity)
		return next(c)
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func IdentityFromContext(c echo.Context) (service.Identity, bool) {
	identity, ok := c.Get(identityKey).(service.Identity)
	return identity, ok
}
