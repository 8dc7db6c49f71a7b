// Package order_repo provides the PostgreSQL order repository. Orders
// and their items are written together inside the fulfillment
// transaction; headers are immutable afterwards except for the status
// fields.
package order_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/id"
	"vitrin/internal/domain"
	"vitrin/internal/domain/orders"
	"vitrin/internal/infrastructure/storage/postgres"
	"vitrin/pkg/logger"
)

var (
	orderCols = postgres.ExtractDBColumns[orders.Order]()
	itemCols  = postgres.ExtractDBColumns[orders.OrderItem]()
)

// OrderRepo implements orders.Repository on PostgreSQL.
type OrderRepo struct {
	txm   *postgres.TxManager
	audit *postgres.AuditService
}

var _ orders.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{txm: txm}
}

// EnableAudit turns on change recording. Audit writes ride the
// fulfillment transaction.
func (r *OrderRepo) EnableAudit(audit *postgres.AuditService) {
	r.audit = audit
}

func (r *OrderRepo) recordAudit(ctx context.Context, tenantID, orderID string, action postgres.AuditAction, changes map[string]any) {
	if r.audit == nil {
		return
	}
	if err := r.audit.LogChange(ctx, tenantID, "order", orderID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed", "order_id", orderID, "error", err)
	}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create persists the order header and all its items. Must run inside
// the fulfillment transaction so the stock decrements commit with it.
func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	if r.txm.GetTx(ctx) == nil {
		return fmt.Errorf("order create requires a transaction")
	}

	if o.ID == "" {
		o.ID = id.New().String()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Version = 1

	sql, args, err := r.builder().
		Insert("orders").
		SetMap(postgres.StructToMap(o)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert order: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		if item.ID == "" {
			item.ID = id.New().String()
		}
		item.OrderID = o.ID

		sql, args, err := r.builder().
			Insert("order_items").
			SetMap(postgres.StructToMap(item)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert order item: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	r.recordAudit(ctx, o.TenantID, o.ID, postgres.AuditActionCreate, map[string]any{
		"order_number": o.OrderNumber,
		"customer_id":  o.CustomerID,
		"total_amount": o.TotalAmount,
		"items":        len(o.Items),
	})
	return nil
}

// GetByID retrieves an order with its items within the tenant scope.
func (r *OrderRepo) GetByID(ctx context.Context, tenantID, orderID string) (*orders.Order, error) {
	o := &orders.Order{}

	sql, args, err := r.builder().
		Select(orderCols...).
		From("orders").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", orderID)
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	itemsSQL, itemsArgs, err := r.builder().
		Select(itemCols...).
		From("order_items").
		Where(squirrel.Eq{"order_id": o.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &o.Items, itemsSQL, itemsArgs...); err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	return o, nil
}

// List retrieves order headers with filtering and pagination.
func (r *OrderRepo) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*orders.Order], error) {
	return r.list(ctx, tenantID, "", filter)
}

// ListByCustomer retrieves a customer's order headers.
func (r *OrderRepo) ListByCustomer(ctx context.Context, tenantID, customerID string, filter domain.ListFilter) (domain.PagedResult[*orders.Order], error) {
	return r.list(ctx, tenantID, customerID, filter)
}

func (r *OrderRepo) list(ctx context.Context, tenantID, customerID string, filter domain.ListFilter) (domain.PagedResult[*orders.Order], error) {
	filter.Normalize()

	q := r.builder().
		Select(orderCols...).
		From("orders").
		Where(squirrel.Eq{"tenant_id": tenantID})

	if customerID != "" {
		q = q.Where(squirrel.Eq{"customer_id": customerID})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"order_number": "%" + filter.Search + "%"})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"order_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"order_date": *filter.DateTo})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return domain.PagedResult[*orders.Order]{}, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.PagedResult[*orders.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	orderBy, err := parseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.PagedResult[*orders.Order]{}, err
	}

	sql, args, err := q.
		OrderBy(orderBy).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return domain.PagedResult[*orders.Order]{}, fmt.Errorf("build query: %w", err)
	}

	var items []*orders.Order
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return domain.PagedResult[*orders.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	return domain.NewPagedResult(items, total, filter.Page, filter.PageSize), nil
}

// UpdateStatus writes the status fields of an existing order.
// Idempotent: writing the current values again succeeds.
func (r *OrderRepo) UpdateStatus(ctx context.Context, tenantID, orderID string, status orders.Status, payment orders.PaymentStatus) error {
	sql, args, err := r.builder().
		Update("orders").
		Set("status", status).
		Set("payment_status", payment).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": orderID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order", orderID)
	}

	r.recordAudit(ctx, tenantID, orderID, postgres.AuditActionStatusChange, map[string]any{
		"status":         status,
		"payment_status": payment,
	})
	return nil
}

// parseOrderBy whitelists sortable order columns.
func parseOrderBy(orderBy string) (string, error) {
	allowed := map[string]struct{}{}
	for _, col := range orderCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "order_date DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if len(field) > 0 && field[0] == '-' {
		direction = "DESC"
		field = field[1:]
	} else if len(field) > 0 && field[0] == '+' {
		field = field[1:]
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	return field + " " + direction, nil
}
