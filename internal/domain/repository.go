// Package domain provides core business logic interfaces and types.
package domain

import "time"

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
// All list queries are tenant-scoped; the tenant ID travels as an
// explicit argument next to the filter, never inside it.
type ListFilter struct {
	// Search matches against the entity's searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []string

	// IncludeInactive includes soft-deactivated records
	IncludeInactive bool

	// CategoryID filters products by category
	CategoryID *string

	// Status filters orders by fulfillment status
	Status string

	// DateFrom/DateTo bound orders by order_date (inclusive)
	DateFrom *time.Time
	DateTo   *time.Time

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Pagination (1-based page number)
	Page     int
	PageSize int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Page:     1,
		PageSize: 50,
		OrderBy:  "name",
	}
}

// Normalize clamps pagination values into a valid range.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 200 {
		f.PageSize = 200
	}
}

// Offset converts the 1-based page number to a row offset.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// PagedResult contains one page of items plus the total count across
// all pages.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPagedResult computes TotalPages from the count and page size.
func NewPagedResult[T any](items []T, total int64, page, pageSize int) PagedResult[T] {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PagedResult[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}

// --- Delete outcome ---

// DeleteOutcome reports what a delete operation actually did. Entities
// referenced by historical data are deactivated instead of removed.
type DeleteOutcome string

const (
	// HardDeleted - the row was physically removed
	HardDeleted DeleteOutcome = "hard_deleted"

	// SoftDeactivated - the row was kept and marked inactive
	SoftDeactivated DeleteOutcome = "soft_deactivated"
)
