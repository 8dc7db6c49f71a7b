package customer

import (
	"context"

	"vitrin/internal/domain"
)

// Repository defines tenant-scoped persistence for customers.
// Every method takes the tenant ID explicitly; an ID that exists under a
// different tenant behaves exactly like a missing row.
type Repository interface {
	// Create inserts a new customer.
	// Returns apperror.CodeDuplicateEmail on a per-tenant email collision.
	Create(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer within the tenant scope
	GetByID(ctx context.Context, tenantID, customerID string) (*Customer, error)

	// FindByEmail retrieves a customer by email within the tenant scope
	FindByEmail(ctx context.Context, tenantID, email string) (*Customer, error)

	// List retrieves customers with filtering and pagination
	List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Customer], error)

	// Update modifies an existing customer (optimistic locking)
	Update(ctx context.Context, c *Customer) error

	// Delete removes a customer row
	Delete(ctx context.Context, tenantID, customerID string) error

	// SetActive flips the active flag
	SetActive(ctx context.Context, tenantID, customerID string, active bool) error

	// HasOrders reports whether any order references the customer
	HasOrders(ctx context.Context, tenantID, customerID string) (bool, error)
}
