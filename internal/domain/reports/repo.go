package reports

import (
	"context"
)

// Repository defines the tenant-scoped aggregate queries. The
// PostgreSQL implementation lives in
// infrastructure/storage/postgres/report_repo.
type Repository interface {
	// GetDashboard builds the full dashboard in one call
	GetDashboard(ctx context.Context, tenantID string, topN, recentN int) (*Dashboard, error)

	// GetSalesReport buckets revenue by day, week or month
	GetSalesReport(ctx context.Context, tenantID string, filter SalesReportFilter) (*SalesReport, error)

	// GetInventoryReport values current stock
	GetInventoryReport(ctx context.Context, tenantID string, filter InventoryFilter) (*InventoryReport, error)
}
