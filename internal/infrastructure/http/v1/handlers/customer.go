package handlers

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// CustomerHandler provides customer CRUD endpoints.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, service: service}
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	entity := req.ToEntity(tenantID)
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity.ID)
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	entity, err := h.service.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// List handles GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.ListQuery
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

// Update handles PUT /customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	entity, err := h.service.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(entity)
	if err := h.service.Update(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Delete handles DELETE /customers/:id.
// Customers with order history are deactivated instead of removed.
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	outcome, err := h.service.Delete(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DeleteResponse{Outcome: outcome})
}
