// Package orders provides order creation and fulfillment.
// An order is created once with immutable monetary totals; only its
// status fields change afterwards.
package orders

import (
	"time"

	"vitrin/internal/core/types"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodOnline       PaymentMethod = "Online Payment"
)

// Order represents a customer order owned by a tenant.
type Order struct {
	ID              string        `db:"id" json:"id"`
	TenantID        string        `db:"tenant_id" json:"-"`
	OrderNumber     string        `db:"order_number" json:"orderNumber"`
	CustomerID      string        `db:"customer_id" json:"customerId"`
	OrderDate       time.Time     `db:"order_date" json:"orderDate"`
	Status          Status        `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PaymentMethod   PaymentMethod `db:"payment_method" json:"paymentMethod"`
	TotalAmount     types.Money   `db:"total_amount" json:"totalAmount"`
	TaxAmount       types.Money   `db:"tax_amount" json:"taxAmount"`
	ShippingAmount  types.Money   `db:"shipping_amount" json:"shippingAmount"`
	DiscountAmount  types.Money   `db:"discount_amount" json:"discountAmount"`
	ShippingAddress string        `db:"shipping_address" json:"shippingAddress,omitempty"`
	ShippingCity    string        `db:"shipping_city" json:"shippingCity,omitempty"`
	ShippingCountry string        `db:"shipping_country" json:"shippingCountry,omitempty"`
	ShippingZip     string        `db:"shipping_zip" json:"shippingZip,omitempty"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
	Version         int           `db:"version" json:"version"`

	// Items is loaded with the order; not a column.
	Items []*OrderItem `db:"-" json:"items"`
}

// OrderItem is one line of an order. The product name and unit price
// are snapshotted at creation so later catalog edits do not rewrite
// order history.
type OrderItem struct {
	ID             string      `db:"id" json:"id"`
	OrderID        string      `db:"order_id" json:"-"`
	ProductID      string      `db:"product_id" json:"productId"`
	ProductName    string      `db:"product_name" json:"productName"`
	Quantity       int         `db:"quantity" json:"quantity"`
	UnitPrice      types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice     types.Money `db:"total_price" json:"totalPrice"`
	TaxRate        types.Money `db:"tax_rate" json:"taxRate"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether m is a known payment method.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodBankTransfer, MethodOnline:
		return true
	}
	return false
}
