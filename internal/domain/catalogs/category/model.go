// Package category provides the product category catalog.
// Categories form a single-parent hierarchy within one tenant.
package category

import (
	"context"
	"time"

	"vitrin/internal/core/apperror"
)

// Category represents a product grouping within a tenant.
type Category struct {
	ID               string    `db:"id" json:"id"`
	TenantID         string    `db:"tenant_id" json:"-"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description,omitempty"`
	ParentCategoryID *string   `db:"parent_category_id" json:"parentCategoryId,omitempty"`
	DisplayOrder     int       `db:"display_order" json:"displayOrder"`
	IsActive         bool      `db:"is_active" json:"isActive"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
	Version          int       `db:"version" json:"version"`
}

// NewCategory creates a Category with required fields.
func NewCategory(tenantID, name string) *Category {
	return &Category{
		TenantID: tenantID,
		Name:     name,
		IsActive: true,
	}
}

// Validate checks the category's own fields. Cross-row rules (parent
// exists, no cycles) live in the service.
func (c *Category) Validate(ctx context.Context) error {
	if c.TenantID == "" {
		return apperror.NewValidation("tenant is required").
			WithDetail("field", "tenantId")
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 200 {
		return apperror.NewValidation("name must be 200 characters or less").
			WithDetail("field", "name")
	}
	if c.ParentCategoryID != nil && *c.ParentCategoryID == c.ID && c.ID != "" {
		return apperror.NewValidation("category cannot be its own parent").
			WithDetail("field", "parentCategoryId")
	}
	return nil
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil || *c.ParentCategoryID == ""
}
