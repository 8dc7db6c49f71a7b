// Package product provides the product catalog with inventory tracking.
package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/types"
)

// Product represents a sellable item owned by a tenant.
// StockQuantity is mutated only by order fulfillment; it never goes
// negative.
type Product struct {
	ID            string          `db:"id" json:"id"`
	TenantID      string          `db:"tenant_id" json:"-"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description,omitempty"`
	SKU           *string         `db:"sku" json:"sku,omitempty"`
	Barcode       *string         `db:"barcode" json:"barcode,omitempty"`
	Price         types.Money     `db:"price" json:"price"`
	DiscountPrice *types.Money    `db:"discount_price" json:"discountPrice,omitempty"`
	CostPrice     types.Money     `db:"cost_price" json:"costPrice"`
	TaxRate       types.Money     `db:"tax_rate" json:"taxRate"`
	StockQuantity int             `db:"stock_quantity" json:"stockQuantity"`
	MinStockLevel int             `db:"min_stock_level" json:"minStockLevel"`
	CategoryID    *string         `db:"category_id" json:"categoryId,omitempty"`
	Weight        decimal.Decimal `db:"weight" json:"weight"`
	Length        decimal.Decimal `db:"length" json:"length"`
	Width         decimal.Decimal `db:"width" json:"width"`
	Height        decimal.Decimal `db:"height" json:"height"`
	ImageURL      *string         `db:"image_url" json:"imageUrl,omitempty"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	IsFeatured    bool            `db:"is_featured" json:"isFeatured"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
	Version       int             `db:"version" json:"version"`
}

// NewProduct creates a Product with required fields.
func NewProduct(tenantID, name string, price types.Money) *Product {
	return &Product{
		TenantID: tenantID,
		Name:     name,
		Price:    price,
		Weight:   decimal.Zero,
		Length:   decimal.Zero,
		Width:    decimal.Zero,
		Height:   decimal.Zero,
		IsActive: true,
	}
}

// Validate checks the product's own fields.
func (p *Product) Validate(ctx context.Context) error {
	if p.TenantID == "" {
		return apperror.NewValidation("tenant is required").
			WithDetail("field", "tenantId")
	}
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if p.DiscountPrice != nil && p.DiscountPrice.GreaterThan(p.Price) {
		return apperror.NewValidation("discount price cannot exceed price").
			WithDetail("field", "discountPrice")
	}
	if p.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}
	if p.StockQuantity < 0 {
		return apperror.NewValidation("stock quantity cannot be negative").
			WithDetail("field", "stockQuantity")
	}
	if p.Weight.IsNegative() {
		return apperror.NewValidation("weight cannot be negative").
			WithDetail("field", "weight")
	}
	return nil
}

// EffectivePrice returns the discount price when one is set.
func (p *Product) EffectivePrice() types.Money {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}

// IsLowStock reports whether stock is at or below the minimum level.
func (p *Product) IsLowStock() bool {
	return p.MinStockLevel > 0 && p.StockQuantity <= p.MinStockLevel
}
