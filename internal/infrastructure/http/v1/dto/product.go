package dto

import (
	"github.com/shopspring/decimal"

	"vitrin/internal/core/types"
	"vitrin/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	SKU           *string          `json:"sku"`
	Barcode       *string          `json:"barcode"`
	Price         types.Money      `json:"price"`
	DiscountPrice *types.Money     `json:"discountPrice"`
	CostPrice     types.Money      `json:"costPrice"`
	TaxRate       types.Money      `json:"taxRate"`
	StockQuantity int              `json:"stockQuantity"`
	MinStockLevel int              `json:"minStockLevel"`
	CategoryID    *string          `json:"categoryId"`
	Weight        *decimal.Decimal `json:"weight"`
	Length        *decimal.Decimal `json:"length"`
	Width         *decimal.Decimal `json:"width"`
	Height        *decimal.Decimal `json:"height"`
	ImageURL      *string          `json:"imageUrl"`
	IsFeatured    bool             `json:"isFeatured"`
}

// ToEntity converts DTO to a domain entity scoped to the tenant.
func (r *CreateProductRequest) ToEntity(tenantID string) *product.Product {
	p := product.NewProduct(tenantID, r.Name, r.Price)
	p.Description = r.Description
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.DiscountPrice = r.DiscountPrice
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.StockQuantity = r.StockQuantity
	p.MinStockLevel = r.MinStockLevel
	p.CategoryID = r.CategoryID
	if r.Weight != nil {
		p.Weight = *r.Weight
	}
	if r.Length != nil {
		p.Length = *r.Length
	}
	if r.Width != nil {
		p.Width = *r.Width
	}
	if r.Height != nil {
		p.Height = *r.Height
	}
	p.ImageURL = r.ImageURL
	p.IsFeatured = r.IsFeatured
	return p
}

// UpdateProductRequest is the request body for updating a product.
// Stock quantity is absent on purpose: stock changes only through
// order fulfillment.
type UpdateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	SKU           *string          `json:"sku"`
	Barcode       *string          `json:"barcode"`
	Price         types.Money      `json:"price"`
	DiscountPrice *types.Money     `json:"discountPrice"`
	CostPrice     types.Money      `json:"costPrice"`
	TaxRate       types.Money      `json:"taxRate"`
	MinStockLevel int              `json:"minStockLevel"`
	CategoryID    *string          `json:"categoryId"`
	Weight        *decimal.Decimal `json:"weight"`
	Length        *decimal.Decimal `json:"length"`
	Width         *decimal.Decimal `json:"width"`
	Height        *decimal.Decimal `json:"height"`
	ImageURL      *string          `json:"imageUrl"`
	IsActive      bool             `json:"isActive"`
	IsFeatured    bool             `json:"isFeatured"`
	Version       int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.Price = r.Price
	p.DiscountPrice = r.DiscountPrice
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.MinStockLevel = r.MinStockLevel
	p.CategoryID = r.CategoryID
	if r.Weight != nil {
		p.Weight = *r.Weight
	}
	if r.Length != nil {
		p.Length = *r.Length
	}
	if r.Width != nil {
		p.Width = *r.Width
	}
	if r.Height != nil {
		p.Height = *r.Height
	}
	p.ImageURL = r.ImageURL
	p.IsActive = r.IsActive
	p.IsFeatured = r.IsFeatured
	p.Version = r.Version
}
