package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/service"
	"github.com/citywave/table-reservation/internal/utils"
)

// AdminContextKey is the echo context key under which the resolved
// *model.AdminAccount is stored for downstream handlers.
const AdminContextKey = "admin"

// AdminAuth returns an Echo middleware that validates a Bearer session
// token and resolves the live admin identity into the request context.
// Resolution goes through the authenticator on every request, so a
// sub-admin deleted by the main admin loses access immediately even while
// holding an unexpired token. This middleware should wrap every /v1/admin
// route; handlers read the identity via handler.CurrentAdmin.
func AdminAuth(secret string, auth *service.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			id, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			admin, err := auth.Resolve(c.Request().Context(), id)
			if err != nil {
				// Revoked account or a stale token; either way the session ends.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session no longer valid"})
			}

			c.Set(AdminContextKey, admin)
			return next(c)
		}
	}
}
