package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/core/ports"
)

// AuditHandler exposes the recent audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /v1/audit.
//
// @Summary      List recent audit events
// @Tags         audit
// @Produce      json
// @Security     CookieAuth
// @Param        limit  query     int  false  "Maximum entries (default 50, cap 500)"
// @Success      200    {array}   auditEventResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.service.ListRecent(c.Request().Context(), principal, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuditResponse(events))
}
