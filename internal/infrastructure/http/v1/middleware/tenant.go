package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"vitrin/internal/core/apperror"
	appctx "vitrin/internal/core/context"
	"vitrin/internal/core/tenant"
)

// HeaderTenantID names the tenant override header. It ranks below the
// token claim and above the subdomain during resolution.
const HeaderTenantID = "X-Tenant-ID"

// ResolveTenant resolves the request's tenant from the token claim, the
// X-Tenant-ID header or the host subdomain, in that order, and stores
// it in the request context. Requests that resolve to no tenant are
// rejected.
func ResolveTenant(registry tenant.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := resolve(c, registry)
		if err != nil {
			abortTenantError(c, err)
			return
		}

		ctx := tenant.WithTenant(c.Request.Context(), t)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", t.ID)
		c.Set("tenant_slug", t.Slug)

		c.Next()
	}
}

// OptionalTenant resolves the tenant when any source names one, but
// lets requests without a tenant through. Platform administrators log
// in without one.
func OptionalTenant(registry tenant.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := resolve(c, registry)
		if err != nil {
			if errors.Is(err, tenant.ErrNoTenant) {
				c.Next()
				return
			}
			abortTenantError(c, err)
			return
		}

		ctx := tenant.WithTenant(c.Request.Context(), t)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", t.ID)
		c.Set("tenant_slug", t.Slug)

		c.Next()
	}
}

func resolve(c *gin.Context, registry tenant.Registry) (*tenant.Tenant, error) {
	ctx := c.Request.Context()
	resolver := tenant.NewResolver(
		registry,
		appctx.GetUserTenantID(ctx),
		c.GetHeader(HeaderTenantID),
		c.Request.Host,
	)
	return resolver.Resolve(ctx)
}

func abortTenantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotActive):
		_ = c.Error(apperror.NewForbidden("tenant is deactivated"))
	case errors.Is(err, tenant.ErrNoTenant):
		_ = c.Error(apperror.NewValidation("no tenant identified for request"))
	default:
		_ = c.Error(apperror.NewInternal(err))
	}
	c.Abort()
}
