package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/ports"
)

const maxAuditLimit = 500

// AuditHandler exposes the operator mutation trail.
type AuditHandler struct {
	audit ports.AuditRepository
	log   zerolog.Logger
}

func NewAuditHandler(audit ports.AuditRepository, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

// Recent lists the newest audit entries.
//
// @Summary      Recent audit entries
// @Tags         audit
// @Produce      json
// @Param        limit  query  int  false  "Maximum entries, newest first"
// @Success      200  {array}  domain.AuditEntry
// @Router       /admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
