package dto

import (
	"time"

	"vitrin/internal/domain/reports"
)

// SalesReportQuery selects the window and bucketing of a sales report.
type SalesReportQuery struct {
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
	GroupBy  string     `form:"groupBy"`
}

// ToFilter converts the query to a domain filter. Missing values stay
// zero; the service applies its defaults.
func (q *SalesReportQuery) ToFilter() reports.SalesReportFilter {
	f := reports.SalesReportFilter{
		GroupBy: reports.SalesGrouping(q.GroupBy),
	}
	if q.FromDate != nil {
		f.FromDate = *q.FromDate
	}
	if q.ToDate != nil {
		f.ToDate = *q.ToDate
	}
	return f
}

// InventoryReportQuery filters the inventory report.
type InventoryReportQuery struct {
	LowStockOnly bool    `form:"lowStockOnly"`
	CategoryID   *string `form:"categoryId"`
	MinStock     *int    `form:"minStock"`
	MaxStock     *int    `form:"maxStock"`
}

// ToFilter converts the query to a domain filter.
func (q *InventoryReportQuery) ToFilter() reports.InventoryFilter {
	return reports.InventoryFilter{
		LowStockOnly: q.LowStockOnly,
		CategoryID:   q.CategoryID,
		MinStock:     q.MinStock,
		MaxStock:     q.MaxStock,
	}
}
