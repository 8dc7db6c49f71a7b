package tenant

import (
	"context"
)

// Registry provides access to tenant records. The PostgreSQL implementation
// lives in infrastructure/storage/postgres/tenant_repo.
type Registry interface {
	SlugChecker

	// GetByID retrieves a tenant by UUID string.
	GetByID(ctx context.Context, tenantID string) (*Tenant, error)

	// GetBySlug retrieves a tenant by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// ListAll returns all tenants ordered by slug.
	ListAll(ctx context.Context) ([]*Tenant, error)

	// ListActive returns active tenants ordered by slug.
	ListActive(ctx context.Context) ([]*Tenant, error)

	// Create inserts a new tenant row and populates t.ID and timestamps.
	Create(ctx context.Context, t *Tenant) error

	// Update persists changes to an existing tenant.
	// Returns apperror.CodeConcurrentModification when t.Version is stale.
	Update(ctx context.Context, t *Tenant) error

	// SetActive flips the active flag by UUID string.
	SetActive(ctx context.Context, tenantID string, active bool) error
}
