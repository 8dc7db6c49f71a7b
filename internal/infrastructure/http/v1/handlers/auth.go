package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/tenant"
	"vitrin/internal/domain/auth"
	"vitrin/internal/infrastructure/http/v1/dto"
)

// AuthHandler provides authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles POST /auth/login.
// Tenant resolution is optional here: platform administrators carry an
// empty tenant ID and authenticate without a storefront context.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	tenantID := tenant.IDFromContext(ctx)

	token, user, err := h.service.Login(ctx, tenantID, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: dto.FromToken(token),
		User:  user,
	})
}

// Register handles POST /users - creates a user within the resolved tenant.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	user, err := h.service.Register(c.Request.Context(), tenantID, req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me handles GET /auth/me - returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := h.UserID(c)
	if userID == "" {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, user)
}

// ListUsers handles GET /users - lists users of the resolved tenant.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, users)
}
