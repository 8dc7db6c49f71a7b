// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. All tenants share one database, so every query carries a
// mandatory tenant_id predicate; a row owned by another tenant is
// indistinguishable from a missing row.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/id"
	"vitrin/internal/domain"
	"vitrin/internal/infrastructure/storage/postgres"
	"vitrin/pkg/logger"
)

// ScopedRepo provides common CRUD operations for tenant-scoped entities.
// Embed this in specific repositories. The entity type must carry "id",
// "tenant_id" and "version" db-tagged fields.
type ScopedRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
	searchCols []string
	// immutableCols are never written by Update (beyond id/tenant_id/
	// version/created_at which are always excluded).
	immutableCols []string
	newFn         func() T
	audit         *postgres.AuditService
}

// NewScopedRepo creates a new tenant-scoped base repository.
func NewScopedRepo[T any](
	txm *postgres.TxManager,
	tableName, entityName string,
	searchCols, immutableCols []string,
	newFn func() T,
) *ScopedRepo[T] {
	return &ScopedRepo[T]{
		txm:           txm,
		tableName:     tableName,
		entityName:    entityName,
		selectCols:    postgres.ExtractDBColumns[T](),
		searchCols:    searchCols,
		immutableCols: immutableCols,
		newFn:         newFn,
	}
}

// EnableAudit turns on change recording for this repository. Audit
// writes ride the caller's transaction when one is active.
func (r *ScopedRepo[T]) EnableAudit(audit *postgres.AuditService) {
	r.audit = audit
}

// recordAudit is best-effort: a failed audit write never fails the
// operation itself.
func (r *ScopedRepo[T]) recordAudit(ctx context.Context, tenantID, entityID string, action postgres.AuditAction, changes map[string]any) {
	if r.audit == nil {
		return
	}
	if err := r.audit.LogChange(ctx, tenantID, r.entityName, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity", r.entityName,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *ScopedRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ScopedRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags. A missing ID is
// generated; timestamps and version are initialized here so callers
// never have to.
func (r *ScopedRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	if v, ok := data["id"].(string); ok && v == "" {
		data["id"] = id.New().String()
	}
	if v, ok := data["tenant_id"].(string); ok && v == "" {
		return apperror.NewValidation("tenant is required").WithDetail("entity", r.entityName)
	}
	now := time.Now().UTC()
	data["created_at"] = now
	data["updated_at"] = now
	data["version"] = 1

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if mapped := r.mapPgError(err, data); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	writeBack(entity, data["id"].(string), now, 1)
	r.recordAudit(ctx, data["tenant_id"].(string), data["id"].(string), postgres.AuditActionCreate, filteredData)
	return nil
}

// Update modifies an existing entity with optimistic locking. The row
// must match both the entity's tenant and its loaded version.
func (r *ScopedRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"].(string)
	if !ok || entityID == "" {
		return fmt.Errorf("entity has no id")
	}
	tenantID, ok := data["tenant_id"].(string)
	if !ok || tenantID == "" {
		return fmt.Errorf("entity has no tenant_id")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no version")
	}

	excluded := map[string]bool{
		"id": true, "tenant_id": true, "version": true, "created_at": true,
	}
	for _, col := range r.immutableCols {
		excluded[col] = true
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if excluded[col] {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}
	filteredData["updated_at"] = time.Now().UTC()

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if mapped := r.mapPgError(err, data); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		// Wrong version, wrong tenant, or gone. Distinguish a stale
		// version from the rest so the client can refresh.
		exists, err := r.existsAnyVersion(ctx, tenantID, entityID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConcurrentModification(r.entityName, entityID)
		}
		return apperror.NewNotFound(r.entityName, entityID)
	}
	r.recordAudit(ctx, tenantID, entityID, postgres.AuditActionUpdate, filteredData)
	return nil
}

func (r *ScopedRepo[T]) existsAnyVersion(ctx context.Context, tenantID, entityID string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
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
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// scopedSelect creates a SELECT builder with the tenant predicate applied.
func (r *ScopedRepo[T]) scopedSelect(tenantID string) squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"tenant_id": tenantID})
}

// GetByID retrieves an entity within the tenant scope.
func (r *ScopedRepo[T]) GetByID(ctx context.Context, tenantID, entityID string) (T, error) {
	entity := r.newFn()

	sql, args, err := r.scopedSelect(tenantID).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, entityID)
		}
		return entity, fmt.Errorf("get %s by id: %w", r.entityName, err)
	}
	return entity, nil
}

// GetForUpdate retrieves an entity with a row lock. Must run inside a
// transaction.
func (r *ScopedRepo[T]) GetForUpdate(ctx context.Context, tenantID, entityID string) (T, error) {
	entity := r.newFn()

	sql, args, err := r.scopedSelect(tenantID).
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.entityName, entityID)
		}
		return entity, fmt.Errorf("get %s for update: %w", r.entityName, err)
	}
	return entity, nil
}

// List retrieves one page of entities within the tenant scope.
func (r *ScopedRepo[T]) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[T], error) {
	filter.Normalize()

	q := r.scopedSelect(tenantID)

	if !filter.IncludeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		if len(or) > 0 {
			q = q.Where(or)
		}
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}

	// Count before pagination.
	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("count %s: %w", r.tableName, err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.PagedResult[T]{}, err
	}

	sql, args, err := q.
		OrderBy(orderBy).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("list %s: %w", r.tableName, err)
	}

	return domain.NewPagedResult(items, total, filter.Page, filter.PageSize), nil
}

// Delete performs physical removal within the tenant scope.
func (r *ScopedRepo[T]) Delete(ctx context.Context, tenantID, entityID string) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("record is referenced by other data").
				WithDetail("entity", r.entityName).
				WithDetail("id", entityID).
				WithCause(err)
		}
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	r.recordAudit(ctx, tenantID, entityID, postgres.AuditActionDelete, nil)
	return nil
}

// SetActive flips the active flag within the tenant scope.
func (r *ScopedRepo[T]) SetActive(ctx context.Context, tenantID, entityID string, active bool) error {
	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("is_active", active).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set active: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set active %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	action := postgres.AuditActionUpdate
	if !active {
		action = postgres.AuditActionDeactivate
	}
	r.recordAudit(ctx, tenantID, entityID, action, map[string]any{"is_active": active})
	return nil
}

// mapPgError translates constraint violations into business errors.
// Returns nil when the error is not a recognized constraint violation.
func (r *ScopedRepo[T]) mapPgError(err error, data map[string]any) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505":
		if strings.Contains(pgErr.ConstraintName, "email") {
			email, _ := extractString(data["email"])
			return apperror.NewDuplicateEmail(email).WithCause(err)
		}
		return apperror.NewConflict("duplicate value violates a unique constraint").
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case "23503":
		return apperror.NewConflict("referenced record does not exist").
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return nil
}

// writeBack pushes repo-assigned values (id, timestamps, version) onto
// the entity so callers see the persisted state.
func writeBack(entity any, entityID string, now time.Time, version int) {
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch rt.Field(i).Tag.Get("db") {
		case "id":
			if f.Kind() == reflect.String && f.String() == "" {
				f.SetString(entityID)
			}
		case "created_at", "updated_at":
			if f.Type() == reflect.TypeOf(time.Time{}) {
				f.Set(reflect.ValueOf(now))
			}
		case "version":
			if f.Kind() == reflect.Int {
				f.SetInt(int64(version))
			}
		}
	}
}

func extractString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s != nil {
			return *s, true
		}
	}
	return "", false
}

func (r *ScopedRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "name ASC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := strings.TrimSpace(orderBy)
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(field, "-")
	} else {
		field = strings.TrimPrefix(field, "+")
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}
	return field + " " + direction, nil
}
