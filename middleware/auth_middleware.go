// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

// RequireRole checks if the authenticated user has one of the allowed
// roles. Runs after JWTMiddleware; the role comes from the verified token
// only, never from the request body.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.Fail("Authentication failed: role not found"))
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.Fail("Access denied for your role"))
		}
	}
}

// RequireAdmin gates a route to admin callers.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}
