// Package tenant_repo provides the PostgreSQL tenant registry. Tenant
// rows are platform-level; they are the one table without a tenant_id
// predicate because they define the tenants themselves.
package tenant_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/id"
	"vitrin/internal/core/tenant"
	"vitrin/internal/infrastructure/storage/postgres"
)

var tenantCols = postgres.ExtractDBColumns[tenant.Tenant]()

// Registry implements tenant.Registry on PostgreSQL.
type Registry struct {
	txm *postgres.TxManager
}

var _ tenant.Registry = (*Registry)(nil)

// NewRegistry creates a new tenant registry.
func NewRegistry(txm *postgres.TxManager) *Registry {
	return &Registry{txm: txm}
}

func (r *Registry) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Registry) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(tenantCols...).From("tenants")
}

// GetByID retrieves a tenant by UUID string.
func (r *Registry) GetByID(ctx context.Context, tenantID string) (*tenant.Tenant, error) {
	t := &tenant.Tenant{}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": tenantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by id: %w", err)
	}
	return t, nil
}

// GetBySlug retrieves a tenant by its URL slug.
func (r *Registry) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t := &tenant.Tenant{}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return t, nil
}

// SlugExists reports whether any tenant other than excludeID owns slug.
func (r *Registry) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.builder().
		Select("1").
		From("tenants").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1)
	if excludeID != "" {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return true, nil
}

// ListAll returns all tenants ordered by slug.
func (r *Registry) ListAll(ctx context.Context) ([]*tenant.Tenant, error) {
	return r.list(ctx, false)
}

// ListActive returns active tenants ordered by slug.
func (r *Registry) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	return r.list(ctx, true)
}

func (r *Registry) list(ctx context.Context, activeOnly bool) ([]*tenant.Tenant, error) {
	q := r.baseSelect().OrderBy("slug ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tenants []*tenant.Tenant
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &tenants, sql, args...); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// Create inserts a new tenant row and populates t.ID and timestamps.
// The unique index on slug backs up the service-level collision check;
// a violation surfaces as CodeDuplicateSlug so the service can retry.
func (r *Registry) Create(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == "" {
		t.ID = id.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Version = 1

	sql, args, err := r.builder().
		Insert("tenants").
		SetMap(postgres.StructToMap(t)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicateSlug(t.Slug).WithCause(err)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// Update persists changes to an existing tenant with optimistic locking.
func (r *Registry) Update(ctx context.Context, t *tenant.Tenant) error {
	data := postgres.StructToMap(t)
	delete(data, "id")
	delete(data, "version")
	delete(data, "created_at")
	data["updated_at"] = time.Now().UTC()

	sql, args, err := r.builder().
		Update("tenants").
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": t.ID}).
		Where(squirrel.Eq{"version": t.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicateSlug(t.Slug).WithCause(err)
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("tenant", t.ID)
	}
	return nil
}

// SetActive flips the active flag by UUID string.
func (r *Registry) SetActive(ctx context.Context, tenantID string, active bool) error {
	sql, args, err := r.builder().
		Update("tenants").
		Set("is_active", active).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set active: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set tenant active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}
