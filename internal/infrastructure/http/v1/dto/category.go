package dto

import (
	"vitrin/internal/domain/catalogs/category"
)

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	ParentCategoryID *string `json:"parentCategoryId"`
	DisplayOrder     int     `json:"displayOrder"`
}

// ToEntity converts DTO to a domain entity scoped to the tenant.
func (r *CreateCategoryRequest) ToEntity(tenantID string) *category.Category {
	c := category.NewCategory(tenantID, r.Name)
	c.Description = r.Description
	c.ParentCategoryID = r.ParentCategoryID
	c.DisplayOrder = r.DisplayOrder
	return c
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	ParentCategoryID *string `json:"parentCategoryId"`
	DisplayOrder     int     `json:"displayOrder"`
	IsActive         bool    `json:"isActive"`
	Version          int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Description = r.Description
	c.ParentCategoryID = r.ParentCategoryID
	c.DisplayOrder = r.DisplayOrder
	c.IsActive = r.IsActive
	c.Version = r.Version
}
