package orders

import (
	"context"

	"vitrin/internal/domain"
)

// Repository defines tenant-scoped persistence for orders.
// Every method takes the tenant ID explicitly; an ID that exists under a
// different tenant behaves exactly like a missing row.
type Repository interface {
	// Create persists the order header and all its items.
	// Must be called inside the fulfillment transaction.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its items within the tenant scope
	GetByID(ctx context.Context, tenantID, orderID string) (*Order, error)

	// List retrieves order headers with filtering and pagination
	List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Order], error)

	// ListByCustomer retrieves a customer's order headers
	ListByCustomer(ctx context.Context, tenantID, customerID string, filter domain.ListFilter) (domain.PagedResult[*Order], error)

	// UpdateStatus writes the status fields of an existing order.
	// Idempotent: writing the current values again succeeds.
	UpdateStatus(ctx context.Context, tenantID, orderID string, status Status, payment PaymentStatus) error
}
