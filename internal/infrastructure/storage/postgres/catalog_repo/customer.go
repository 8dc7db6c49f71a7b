package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"vitrin/internal/core/apperror"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/infrastructure/storage/postgres"
)

// CustomerRepo implements customer.Repository on PostgreSQL. Per-tenant
// email uniqueness is enforced by a partial unique index on
// (tenant_id, lower(email)); the base repo maps the violation to
// CodeDuplicateEmail.
type CustomerRepo struct {
	*ScopedRepo[*customer.Customer]
}

var _ customer.Repository = (*CustomerRepo)(nil)

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		ScopedRepo: NewScopedRepo(
			txm,
			"customers", "customer",
			[]string{"first_name", "last_name", "email", "company_name", "phone"},
			nil,
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByEmail retrieves a customer by email within the tenant scope.
func (r *CustomerRepo) FindByEmail(ctx context.Context, tenantID, email string) (*customer.Customer, error) {
	c := &customer.Customer{}

	sql, args, err := r.scopedSelect(tenantID).
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", email)
		}
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	return c, nil
}

// HasOrders reports whether any order references the customer.
func (r *CustomerRepo) HasOrders(ctx context.Context, tenantID, customerID string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From("orders").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"customer_id": customerID}).
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
		return false, fmt.Errorf("has orders: %w", err)
	}
	return true, nil
}
