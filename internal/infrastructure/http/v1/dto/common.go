// Package dto provides Data Transfer Objects for API requests.
// Responses reuse the domain models' JSON shape.
package dto

import (
	"vitrin/internal/domain"
)

// --- List query ---

// ListQuery contains common list parameters bound from the query string.
type ListQuery struct {
	Search          string  `form:"search"`
	IncludeInactive bool    `form:"includeInactive"`
	CategoryID      *string `form:"categoryId"`
	OrderBy         string  `form:"orderBy"`
	Page            int     `form:"page" binding:"omitempty,min=1"`
	PageSize        int     `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

// ToFilter converts the query to a domain filter. Zero values fall back
// to the domain defaults.
func (q *ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.IncludeInactive = q.IncludeInactive
	f.CategoryID = q.CategoryID
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	return f
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Delete Response ---

// DeleteResponse reports whether the row was removed or deactivated.
type DeleteResponse struct {
	Outcome domain.DeleteOutcome `json:"outcome"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
