package product

import (
	"context"

	"vitrin/internal/domain"
)

// Repository defines tenant-scoped persistence for products.
// Every method takes the tenant ID explicitly; an ID that exists under a
// different tenant behaves exactly like a missing row.
type Repository interface {
	// Create inserts a new product
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product within the tenant scope
	GetByID(ctx context.Context, tenantID, productID string) (*Product, error)

	// GetForUpdate retrieves a product with a row lock.
	// Must be called inside a transaction.
	GetForUpdate(ctx context.Context, tenantID, productID string) (*Product, error)

	// FindBySKU retrieves a product by SKU within the tenant scope
	FindBySKU(ctx context.Context, tenantID, sku string) (*Product, error)

	// List retrieves products with filtering and pagination
	List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Product], error)

	// Update modifies an existing product (optimistic locking).
	// Stock quantity is excluded; it changes only through DecrementStock.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product row
	Delete(ctx context.Context, tenantID, productID string) error

	// SetActive flips the active flag
	SetActive(ctx context.Context, tenantID, productID string, active bool) error

	// DecrementStock atomically subtracts qty from stock, guarded by a
	// stock_quantity >= qty predicate. Returns false without error when
	// the guard rejects the decrement.
	DecrementStock(ctx context.Context, tenantID, productID string, qty int) (bool, error)

	// HasOrderItems reports whether any order line references the product
	HasOrderItems(ctx context.Context, tenantID, productID string) (bool, error)
}
