package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Session middleware.
// Its presence proves the middleware ran; handlers reached without it
// answer 401 rather than guessing.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, _ := c.Get("principal").(*domain.Principal)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
