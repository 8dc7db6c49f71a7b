package middleware

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/core/apperror"
	appctx "vitrin/internal/core/context"
	"vitrin/internal/core/security"
)

// RequirePolicy checks the authenticated user's roles against the
// static policy table for one resource and action.
func RequirePolicy(resource security.Resource, action security.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if !security.AllowAny(user.Roles, resource, action) {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("resource", string(resource)).
					WithDetail("action", string(action)),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole checks for one of the listed roles directly. Used for the
// platform-level tenant administration endpoints.
func RequireRole(roles ...security.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		for _, required := range roles {
			for _, r := range user.Roles {
				if r == string(required) {
					c.Next()
					return
				}
			}
		}

		_ = c.Error(apperror.NewForbidden("insufficient permissions"))
		c.Abort()
	}
}
