package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrin/internal/domain/orders"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// OrderHandler provides order endpoints.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /orders - places an order and decrements stock
// atomically. Returns the full order so the caller learns the assigned
// number and computed totals.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	order, err := h.service.Create(c.Request.Context(), tenantID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Get handles GET /orders/:id - returns the order with its lines.
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.OrderListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// ListByCustomer handles GET /customers/:id/orders.
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	var q dto.OrderListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	result, err := h.service.ListByCustomer(c.Request.Context(), tenantID, c.Param("id"), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), tenantID, c.Param("id"), req.Status, req.PaymentStatus)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "order status updated")
}
