// Package customer provides the customer catalog.
package customer

import (
	"context"
	"strings"
	"time"

	"vitrin/internal/core/apperror"
)

// Type distinguishes private customers from companies.
type Type string

const (
	TypeIndividual Type = "Individual"
	TypeBusiness   Type = "Business"
)

// Customer represents a buyer owned by a tenant.
// Email, when present, is unique within the tenant.
type Customer struct {
	ID           string    `db:"id" json:"id"`
	TenantID     string    `db:"tenant_id" json:"-"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Address      string    `db:"address" json:"address,omitempty"`
	City         string    `db:"city" json:"city,omitempty"`
	Country      string    `db:"country" json:"country,omitempty"`
	PostalCode   string    `db:"postal_code" json:"postalCode,omitempty"`
	CustomerType Type      `db:"customer_type" json:"customerType"`
	CompanyName  string    `db:"company_name" json:"companyName,omitempty"`
	TaxNumber    string    `db:"tax_number" json:"taxNumber,omitempty"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
	Version      int       `db:"version" json:"version"`
}

// NewCustomer creates a Customer with required fields.
func NewCustomer(tenantID, firstName, lastName string) *Customer {
	return &Customer{
		TenantID:     tenantID,
		FirstName:    firstName,
		LastName:     lastName,
		CustomerType: TypeIndividual,
		IsActive:     true,
	}
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the customer's own fields.
func (c *Customer) Validate(ctx context.Context) error {
	if c.TenantID == "" {
		return apperror.NewValidation("tenant is required").
			WithDetail("field", "tenantId")
	}
	if c.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	if !isValidType(c.CustomerType) {
		return apperror.NewValidation("invalid customer type").
			WithDetail("field", "customerType").
			WithDetail("value", string(c.CustomerType))
	}
	if c.CustomerType == TypeBusiness && c.CompanyName == "" {
		return apperror.NewValidation("company name is required for business customers").
			WithDetail("field", "companyName")
	}
	if c.Email != nil && *c.Email != "" && !strings.Contains(*c.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email")
	}
	return nil
}

func isValidType(t Type) bool {
	return t == TypeIndividual || t == TypeBusiness
}
