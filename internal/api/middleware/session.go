package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/api/metrics"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// Session resolves the request's session token into a principal and
// injects it into the echo context. Missing, unknown, expired, and revoked
// tokens all produce the same 401: the response never reveals which.
func Session(sessions ports.SessionManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c, cookieName)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			principal, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if principal == nil {
				metrics.SessionResolutionsTotal.WithLabelValues("miss").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			metrics.SessionResolutionsTotal.WithLabelValues("hit").Inc()

			c.Set("principal", principal)
			c.Set("session_token", token)

			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token from the cookie, falling
// back to a bearer Authorization header for non-browser clients.
func TokenFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
