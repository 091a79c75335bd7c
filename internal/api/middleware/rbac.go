package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// RBAC enforces a permission through the authorization gate. An absent
// principal answers 401, a principal without the permission answers 403.
func RBAC(gate ports.Authorizer, permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get("principal").(*domain.Principal)

			err := gate.Authorize(principal, permission)
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, domain.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			case errors.Is(err, domain.ErrForbidden):
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			default:
				return err
			}
		}
	}
}
