// Package tenant provides multi-tenant resolution and registry access.
// All tenants share one database; isolation is enforced by scoping every
// query to the resolved tenant's ID.
package tenant

import (
	"fmt"
	"strings"
	"time"
)

// Tenant represents a store registered on the platform.
type Tenant struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Slug         string    `db:"slug"` // URL-safe identifier, unique across the platform
	Description  string    `db:"description"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	Address      string    `db:"address"`
	City         string    `db:"city"`
	Country      string    `db:"country"`
	PostalCode   string    `db:"postal_code"`
	CompanyName  string    `db:"company_name"`
	TaxNumber    string    `db:"tax_number"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	Version      int       `db:"version"`
}

// Active reports whether the tenant can accept requests.
func (t *Tenant) Active() bool {
	return t.IsActive
}

// CreateTenantInput contains data for registering a new tenant.
// Slug is generated from Name; it is not accepted from the caller.
type CreateTenantInput struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Address      string
	City         string
	Country      string
	PostalCode   string
	CompanyName  string
	TaxNumber    string
}

// Validate checks if input is valid.
func (i *CreateTenantInput) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(i.Name) > 200 {
		return fmt.Errorf("name must be 200 characters or less")
	}
	if i.ContactEmail == "" {
		return fmt.Errorf("contact_email is required")
	}
	return nil
}

// UpdateTenantInput contains data for updating an existing tenant.
// A changed Name regenerates the slug.
type UpdateTenantInput struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Address      string
	City         string
	Country      string
	PostalCode   string
	CompanyName  string
	TaxNumber    string
	IsActive     bool
	Version      int
}

// Validate checks if input is valid.
func (i *UpdateTenantInput) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.ContactEmail == "" {
		return fmt.Errorf("contact_email is required")
	}
	return nil
}
