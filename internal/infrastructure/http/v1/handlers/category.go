package handlers

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/domain/catalogs/category"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// CategoryHandler provides category CRUD endpoints.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, service: service}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
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

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
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

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
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

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
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

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
