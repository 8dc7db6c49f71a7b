package dto

import (
	"time"

	"vitrin/internal/core/tenant"
)

// CreateTenantRequest is the request body for registering a tenant.
// The slug is generated server-side from the name.
type CreateTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail" binding:"required"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
	CompanyName  string `json:"companyName"`
	TaxNumber    string `json:"taxNumber"`
}

// ToInput converts DTO to the domain input.
func (r *CreateTenantRequest) ToInput() tenant.CreateTenantInput {
	return tenant.CreateTenantInput{
		Name:         r.Name,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Address:      r.Address,
		City:         r.City,
		Country:      r.Country,
		PostalCode:   r.PostalCode,
		CompanyName:  r.CompanyName,
		TaxNumber:    r.TaxNumber,
	}
}

// UpdateTenantRequest is the request body for updating a tenant.
type UpdateTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail" binding:"required"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
	CompanyName  string `json:"companyName"`
	TaxNumber    string `json:"taxNumber"`
	IsActive     bool   `json:"isActive"`
	Version      int    `json:"version" binding:"required,min=1"`
}

// ToInput converts DTO to the domain input.
func (r *UpdateTenantRequest) ToInput() tenant.UpdateTenantInput {
	return tenant.UpdateTenantInput{
		Name:         r.Name,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Address:      r.Address,
		City:         r.City,
		Country:      r.Country,
		PostalCode:   r.PostalCode,
		CompanyName:  r.CompanyName,
		TaxNumber:    r.TaxNumber,
		IsActive:     r.IsActive,
		Version:      r.Version,
	}
}

// TenantResponse is the response body for a tenant.
type TenantResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	CompanyName  string    `json:"companyName,omitempty"`
	TaxNumber    string    `json:"taxNumber,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Version      int       `json:"version"`
}

// FromTenant creates response DTO from the domain entity.
func FromTenant(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Description:  t.Description,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		Address:      t.Address,
		City:         t.City,
		Country:      t.Country,
		PostalCode:   t.PostalCode,
		CompanyName:  t.CompanyName,
		TaxNumber:    t.TaxNumber,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		Version:      t.Version,
	}
}

// FromTenants maps a tenant list to response DTOs.
func FromTenants(ts []*tenant.Tenant) []*TenantResponse {
	out := make([]*TenantResponse, len(ts))
	for i, t := range ts {
		out[i] = FromTenant(t)
	}
	return out
}
