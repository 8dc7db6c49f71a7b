package category

import (
	"context"

	"vitrin/internal/domain"
)

// Repository defines tenant-scoped persistence for categories.
// Every method takes the tenant ID explicitly; an ID that exists under a
// different tenant behaves exactly like a missing row.
type Repository interface {
	// Create inserts a new category
	Create(ctx context.Context, c *Category) error

	// GetByID retrieves a category within the tenant scope
	GetByID(ctx context.Context, tenantID, categoryID string) (*Category, error)

	// List retrieves categories with filtering and pagination
	List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Category], error)

	// Update modifies an existing category (optimistic locking)
	Update(ctx context.Context, c *Category) error

	// Delete removes a category row
	Delete(ctx context.Context, tenantID, categoryID string) error

	// SetActive flips the active flag
	SetActive(ctx context.Context, tenantID, categoryID string, active bool) error

	// CountActiveProducts returns how many active products reference the category
	CountActiveProducts(ctx context.Context, tenantID, categoryID string) (int64, error)

	// CountChildren returns how many categories have this one as parent
	CountChildren(ctx context.Context, tenantID, categoryID string) (int64, error)
}
