package auth

import (
	"context"
)

// UserRepository defines user storage operations. Emails are unique per
// tenant; platform administrators live under an empty tenant ID.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID string) (*User, error)

	// GetByEmail retrieves a user by email within the tenant scope.
	GetByEmail(ctx context.Context, tenantID, email string) (*User, error)

	// Update updates user data (optimistic locking).
	Update(ctx context.Context, user *User) error

	// ListByTenant retrieves a tenant's users.
	ListByTenant(ctx context.Context, tenantID string) ([]*User, error)

	// Exists checks if the email is taken within the tenant.
	Exists(ctx context.Context, tenantID, email string) (bool, error)
}
