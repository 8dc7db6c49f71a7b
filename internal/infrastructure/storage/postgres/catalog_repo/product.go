package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"vitrin/internal/core/apperror"
	"vitrin/internal/domain/catalogs/product"
	"vitrin/internal/infrastructure/storage/postgres"
)

// ProductRepo implements product.Repository on PostgreSQL. Stock is
// excluded from Update; it changes only through DecrementStock so the
// stock_quantity >= 0 invariant is enforced in a single statement.
type ProductRepo struct {
	*ScopedRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		ScopedRepo: NewScopedRepo(
			txm,
			"products", "product",
			[]string{"name", "sku", "barcode"},
			[]string{"stock_quantity"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindBySKU retrieves a product by SKU within the tenant scope.
func (r *ProductRepo) FindBySKU(ctx context.Context, tenantID, sku string) (*product.Product, error) {
	p := &product.Product{}

	sql, args, err := r.scopedSelect(tenantID).
		Where(squirrel.Eq{"sku": sku}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	return p, nil
}

// DecrementStock atomically subtracts qty from stock. The guard in the
// WHERE clause rejects the decrement when stock would go negative;
// callers see that as a false return, not an error.
func (r *ProductRepo) DecrementStock(ctx context.Context, tenantID, productID string, qty int) (bool, error) {
	sql, args, err := r.Builder().
		Update("products").
		Set("stock_quantity", squirrel.Expr("stock_quantity - ?", qty)).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"stock_quantity": qty}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// HasOrderItems reports whether any order line references the product.
func (r *ProductRepo) HasOrderItems(ctx context.Context, tenantID, productID string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Where(squirrel.Eq{"o.tenant_id": tenantID}).
		Where(squirrel.Eq{"oi.product_id": productID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has order items: %w", err)
	}
	return true, nil
}
