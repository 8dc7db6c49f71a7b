package orders

import (
	"context"
	"time"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/tx"
	"vitrin/internal/core/types"
	"vitrin/internal/domain"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/catalogs/product"
	"vitrin/pkg/logger"
	"vitrin/pkg/ordernum"
)

// LineRequest is one requested order line.
type LineRequest struct {
	ProductID string
	Quantity  int
	// UnitPrice overrides the catalog price when positive (negotiated
	// price). Zero means use the product's effective price.
	UnitPrice types.Money
}

// CreateInput carries everything needed to create an order.
type CreateInput struct {
	CustomerID      string
	OrderDate       time.Time
	PaymentMethod   PaymentMethod
	ShippingAddress string
	ShippingCity    string
	ShippingCountry string
	ShippingZip     string
	ShippingAmount  types.Money
	DiscountAmount  types.Money
	Notes           string
	Items           []LineRequest
}

// Service is the order fulfillment engine. Order creation validates the
// customer and every line, decrements stock, and persists the order as
// one transaction; either everything commits or nothing does.
type Service struct {
	repo      Repository
	customers customer.Repository
	products  product.Repository
	numbers   ordernum.Generator
	txm       tx.Manager
}

func NewService(
	repo Repository,
	customers customer.Repository,
	products product.Repository,
	numbers ordernum.Generator,
	txm tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		products:  products,
		numbers:   numbers,
		txm:       txm,
	}
}

// Create fulfills an order for the tenant. On any validation or stock
// failure the transaction rolls back: no items persist and no stock
// moves.
func (s *Service) Create(ctx context.Context, tenantID string, input CreateInput) (*Order, error) {
	if input.PaymentMethod == "" {
		input.PaymentMethod = MethodCash
	}
	if !IsValidPaymentMethod(input.PaymentMethod) {
		return nil, apperror.NewValidation("invalid payment method").
			WithDetail("paymentMethod", string(input.PaymentMethod))
	}
	if input.OrderDate.IsZero() {
		input.OrderDate = time.Now()
	}

	var created *Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customers.GetByID(ctx, tenantID, input.CustomerID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewInvalidCustomer(input.CustomerID)
			}
			return err
		}

		if len(input.Items) == 0 {
			return apperror.NewEmptyOrder()
		}

		number, err := s.numbers.Next(ctx, tenantID, input.OrderDate)
		if err != nil {
			return err
		}

		order := &Order{
			TenantID:        tenantID,
			OrderNumber:     number,
			CustomerID:      input.CustomerID,
			OrderDate:       input.OrderDate,
			Status:          StatusPending,
			PaymentStatus:   PaymentPending,
			PaymentMethod:   input.PaymentMethod,
			ShippingAmount:  input.ShippingAmount,
			DiscountAmount:  input.DiscountAmount,
			ShippingAddress: input.ShippingAddress,
			ShippingCity:    input.ShippingCity,
			ShippingCountry: input.ShippingCountry,
			ShippingZip:     input.ShippingZip,
			Notes:           input.Notes,
		}

		itemsTotal := types.Zero()
		taxTotal := types.Zero()
		for _, line := range input.Items {
			item, err := s.fulfillLine(ctx, tenantID, line)
			if err != nil {
				return err
			}
			itemsTotal = itemsTotal.Add(item.TotalPrice)
			taxTotal = taxTotal.Add(item.TaxAmount)
			order.Items = append(order.Items, item)
		}

		order.TaxAmount = taxTotal
		order.TotalAmount = itemsTotal.Add(taxTotal).
			Add(order.ShippingAmount).
			Sub(order.DiscountAmount)

		if err := s.repo.Create(ctx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created",
		"order_id", created.ID,
		"order_number", created.OrderNumber,
		"lines", len(created.Items),
		"total", created.TotalAmount.String(),
	)
	return created, nil
}

// fulfillLine loads and validates the product, decrements its stock and
// builds the order item with snapshotted name and price.
func (s *Service) fulfillLine(ctx context.Context, tenantID string, line LineRequest) (*OrderItem, error) {
	if line.Quantity < 1 {
		return nil, apperror.NewValidation("quantity must be at least 1").
			WithDetail("productId", line.ProductID)
	}

	p, err := s.products.GetByID(ctx, tenantID, line.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewProductNotFound(line.ProductID)
		}
		return nil, err
	}

	if p.StockQuantity < line.Quantity {
		return nil, apperror.NewInsufficientStock(p.Name, p.StockQuantity, line.Quantity)
	}

	// The guarded decrement is the real gate: two requests can both pass
	// the read check above, but only one wins the conditional update.
	ok, err := s.products.DecrementStock(ctx, tenantID, line.ProductID, line.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race. Re-read once for an accurate available count.
		fresh, rerr := s.products.GetByID(ctx, tenantID, line.ProductID)
		if rerr != nil {
			return nil, apperror.NewConflict("stock changed during order creation").
				WithDetail("productId", line.ProductID)
		}
		return nil, apperror.NewInsufficientStock(fresh.Name, fresh.StockQuantity, line.Quantity)
	}

	unitPrice := line.UnitPrice
	if !unitPrice.IsPositive() {
		unitPrice = p.EffectivePrice()
	}
	qty := types.MoneyFromInt(int64(line.Quantity))
	total := unitPrice.Mul(qty)

	return &OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    line.Quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
		TaxRate:     p.TaxRate,
		TaxAmount:   types.Percent(total, p.TaxRate),
	}, nil
}

// Get retrieves an order with its items within the tenant scope.
func (s *Service) Get(ctx context.Context, tenantID, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, tenantID, orderID)
}

// List retrieves order headers with filtering and pagination.
func (s *Service) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Order], error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// ListByCustomer retrieves a customer's order headers.
func (s *Service) ListByCustomer(ctx context.Context, tenantID, customerID string, filter domain.ListFilter) (domain.PagedResult[*Order], error) {
	filter.Normalize()
	return s.repo.ListByCustomer(ctx, tenantID, customerID, filter)
}

// UpdateStatus writes the status fields of an existing order. It is an
// idempotent field write; stock is not re-validated.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, orderID string, status Status, payment PaymentStatus) error {
	if !IsValidStatus(status) {
		return apperror.NewValidation("invalid order status").
			WithDetail("status", string(status))
	}
	if !IsValidPaymentStatus(payment) {
		return apperror.NewValidation("invalid payment status").
			WithDetail("paymentStatus", string(payment))
	}
	if err := s.repo.UpdateStatus(ctx, tenantID, orderID, status, payment); err != nil {
		return err
	}
	logger.Info(ctx, "order status updated",
		"order_id", orderID, "status", string(status), "payment_status", string(payment))
	return nil
}
