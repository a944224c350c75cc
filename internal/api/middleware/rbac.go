package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enrollhub/enrollment-api/internal/api/metrics"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

// RequireRole gates a route on an exact role match. It composes after Auth:
// authentication must already have resolved an identity, otherwise the
// request fails 401 before any role comparison. Roles are flat — no
// hierarchy, no inheritance — so only the exact required role passes.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Identity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if user.Role != required {
				metrics.RoleDenialsTotal.WithLabelValues(required.String()).Inc()
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("access denied, required role: %s", required))
			}
			return next(c)
		}
	}
}
