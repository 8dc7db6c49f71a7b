package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"vitrin/internal/domain/catalogs/category"
	"vitrin/internal/infrastructure/storage/postgres"
)

// CategoryRepo implements category.Repository on PostgreSQL.
type CategoryRepo struct {
	*ScopedRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		ScopedRepo: NewScopedRepo(
			txm,
			"categories", "category",
			[]string{"name", "description"},
			nil,
			func() *category.Category { return &category.Category{} },
		),
	}
}

// CountActiveProducts returns how many active products reference the category.
func (r *CategoryRepo) CountActiveProducts(ctx context.Context, tenantID, categoryID string) (int64, error) {
	sql, args, err := r.Builder().
		Select("COUNT(*)").
		From("products").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"category_id": categoryID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return count, nil
}

// CountChildren returns how many categories have this one as parent.
func (r *CategoryRepo) CountChildren(ctx context.Context, tenantID, categoryID string) (int64, error) {
	sql, args, err := r.Builder().
		Select("COUNT(*)").
		From("categories").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"parent_category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return count, nil
}
