package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrin/internal/core/tenant"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// TenantHandler provides platform-level tenant administration.
// All routes are gated to the super admin role by the router.
type TenantHandler struct {
	*BaseHandler
	service *tenant.Service
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(base *BaseHandler, service *tenant.Service) *TenantHandler {
	return &TenantHandler{BaseHandler: base, service: service}
}

// Register handles POST /tenants - registers a new storefront.
// Returns the full tenant so the caller learns the generated slug.
func (h *TenantHandler) Register(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTenant(t))
}

// Get handles GET /tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTenant(t))
}

// List handles GET /tenants.
func (h *TenantHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	tenants, err := h.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTenants(tenants))
}

// Update handles PUT /tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTenant(t))
}

// Activate handles POST /tenants/:id/activate.
func (h *TenantHandler) Activate(c *gin.Context) {
	if err := h.service.Activate(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "tenant activated")
}

// Deactivate handles POST /tenants/:id/deactivate.
// Deactivation locks out every request scoped to the tenant.
func (h *TenantHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "tenant deactivated")
}
