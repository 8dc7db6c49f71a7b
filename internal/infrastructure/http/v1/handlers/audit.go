package handlers

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the change history of tenant entities.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: base, audit: audit}
}

// History handles GET /audit/:entityType/:entityId.
func (h *AuditHandler) History(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.audit.GetEntityHistory(
		c.Request.Context(),
		tenantID,
		c.Param("entityType"),
		c.Param("entityId"),
		limit,
	)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entries)
}
