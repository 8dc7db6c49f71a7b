package dto

import (
	"vitrin/internal/domain/catalogs/customer"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	FirstName    string        `json:"firstName" binding:"required"`
	LastName     string        `json:"lastName"`
	Email        *string       `json:"email"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	Country      string        `json:"country"`
	PostalCode   string        `json:"postalCode"`
	CustomerType customer.Type `json:"customerType"`
	CompanyName  string        `json:"companyName"`
	TaxNumber    string        `json:"taxNumber"`
}

// ToEntity converts DTO to a domain entity scoped to the tenant.
func (r *CreateCustomerRequest) ToEntity(tenantID string) *customer.Customer {
	c := customer.NewCustomer(tenantID, r.FirstName, r.LastName)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.Country = r.Country
	c.PostalCode = r.PostalCode
	if r.CustomerType != "" {
		c.CustomerType = r.CustomerType
	}
	c.CompanyName = r.CompanyName
	c.TaxNumber = r.TaxNumber
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	FirstName    string        `json:"firstName" binding:"required"`
	LastName     string        `json:"lastName"`
	Email        *string       `json:"email"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	Country      string        `json:"country"`
	PostalCode   string        `json:"postalCode"`
	CustomerType customer.Type `json:"customerType"`
	CompanyName  string        `json:"companyName"`
	TaxNumber    string        `json:"taxNumber"`
	IsActive     bool          `json:"isActive"`
	Version      int           `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.Country = r.Country
	c.PostalCode = r.PostalCode
	if r.CustomerType != "" {
		c.CustomerType = r.CustomerType
	}
	c.CompanyName = r.CompanyName
	c.TaxNumber = r.TaxNumber
	c.IsActive = r.IsActive
	c.Version = r.Version
}
