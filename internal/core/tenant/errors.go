package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the requested
	// ID or slug.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantNotActive is returned when the tenant exists but is deactivated.
	ErrTenantNotActive = errors.New("tenant is not active")

	// ErrNoTenant is returned when a request carries no tenant identity at all.
	ErrNoTenant = errors.New("no tenant resolved for request")
)
