package handlers

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/domain/reports"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// ReportsHandler provides reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	report, err := h.service.GetDashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Sales handles GET /reports/sales.
func (h *ReportsHandler) Sales(c *gin.Context) {
	var q dto.SalesReportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	report, err := h.service.GetSalesReport(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Inventory handles GET /reports/inventory.
func (h *ReportsHandler) Inventory(c *gin.Context) {
	var q dto.InventoryReportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	report, err := h.service.GetInventoryReport(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}
