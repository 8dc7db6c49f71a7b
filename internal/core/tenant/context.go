package tenant

import (
	"context"
)

type ctxKey int

const tenantKey ctxKey = iota

// WithTenant stores the resolved tenant in context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

// FromContext retrieves the resolved tenant, or nil.
func FromContext(ctx context.Context) *Tenant {
	t, _ := ctx.Value(tenantKey).(*Tenant)
	return t
}

// IDFromContext returns the resolved tenant's ID or empty string.
func IDFromContext(ctx context.Context) string {
	if t := FromContext(ctx); t != nil {
		return t.ID
	}
	return ""
}

// RequireID returns the resolved tenant's ID, or ErrNoTenant when the
// request was not scoped to a tenant. Handlers that operate on tenant
// data call this before touching any repository.
func RequireID(ctx context.Context) (string, error) {
	id := IDFromContext(ctx)
	if id == "" {
		return "", ErrNoTenant
	}
	return id, nil
}
