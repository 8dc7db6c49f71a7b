package dto

import (
	"time"

	"vitrin/internal/core/types"
	"vitrin/internal/domain"
	"vitrin/internal/domain/orders"
)

// OrderLineRequest is one requested order line.
type OrderLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	UnitPrice types.Money `json:"unitPrice"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	CustomerID      string               `json:"customerId" binding:"required"`
	OrderDate       *time.Time           `json:"orderDate"`
	PaymentMethod   orders.PaymentMethod `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
	ShippingCity    string               `json:"shippingCity"`
	ShippingCountry string               `json:"shippingCountry"`
	ShippingZip     string               `json:"shippingZip"`
	ShippingAmount  types.Money          `json:"shippingAmount"`
	DiscountAmount  types.Money          `json:"discountAmount"`
	Notes           string               `json:"notes"`
	Items           []OrderLineRequest   `json:"items" binding:"required"`
}

// ToInput converts DTO to the domain input.
func (r *CreateOrderRequest) ToInput() orders.CreateInput {
	input := orders.CreateInput{
		CustomerID:      r.CustomerID,
		PaymentMethod:   r.PaymentMethod,
		ShippingAddress: r.ShippingAddress,
		ShippingCity:    r.ShippingCity,
		ShippingCountry: r.ShippingCountry,
		ShippingZip:     r.ShippingZip,
		ShippingAmount:  r.ShippingAmount,
		DiscountAmount:  r.DiscountAmount,
		Notes:           r.Notes,
	}
	if r.OrderDate != nil {
		input.OrderDate = *r.OrderDate
	}
	for _, line := range r.Items {
		input.Items = append(input.Items, orders.LineRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return input
}

// OrderListQuery extends the common list parameters with order-specific
// filters.
type OrderListQuery struct {
	ListQuery
	Status   string     `form:"status"`
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
}

// ToFilter converts the query to a domain filter. Orders sort by
// order_date unless the caller asked otherwise, so the catalog "name"
// default does not apply.
func (q *OrderListQuery) ToFilter() domain.ListFilter {
	f := q.ListQuery.ToFilter()
	if q.OrderBy == "" {
		f.OrderBy = ""
	}
	f.Status = q.Status
	f.DateFrom = q.FromDate
	f.DateTo = q.ToDate
	return f
}

// UpdateOrderStatusRequest is the request body for updating order status.
type UpdateOrderStatusRequest struct {
	Status        orders.Status        `json:"status" binding:"required"`
	PaymentStatus orders.PaymentStatus `json:"paymentStatus" binding:"required"`
}
