// Package report_repo provides the PostgreSQL reporting queries. All
// aggregates are computed in SQL and scoped to the tenant; cancelled
// orders never count toward revenue.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"vitrin/internal/core/types"
	"vitrin/internal/domain/reports"
	"vitrin/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository on PostgreSQL.
type ReportRepo struct {
	txm *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// topProductsSQL ranks products by units sold, not revenue: a cheap
// item selling in volume outranks a single expensive sale.
const topProductsSQL = `
	SELECT oi.product_id,
		   oi.product_name,
		   SUM(oi.quantity) AS quantity,
		   SUM(oi.total_price) AS revenue
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.tenant_id = $1 AND o.status <> 'Cancelled'
	GROUP BY oi.product_id, oi.product_name
	ORDER BY quantity DESC
	LIMIT $2
`

// GetDashboard builds the full dashboard in one call.
func (r *ReportRepo) GetDashboard(ctx context.Context, tenantID string, topN, recentN int) (*reports.Dashboard, error) {
	d := &reports.Dashboard{}
	querier := r.txm.GetQuerier(ctx)

	// Sales windows and entity totals in one round trip.
	summarySQL := `
		SELECT
			COALESCE((SELECT SUM(total_amount) FROM orders
				WHERE tenant_id = $1 AND status <> 'Cancelled'
				  AND order_date >= date_trunc('day', now())), 0) AS today_sales,
			COALESCE((SELECT SUM(total_amount) FROM orders
				WHERE tenant_id = $1 AND status <> 'Cancelled'
				  AND order_date >= date_trunc('month', now())), 0) AS month_sales,
			COALESCE((SELECT SUM(total_amount) FROM orders
				WHERE tenant_id = $1 AND status <> 'Cancelled'
				  AND order_date >= date_trunc('month', now()) - interval '1 month'
				  AND order_date <  date_trunc('month', now())), 0) AS last_month_sales,
			(SELECT COUNT(*) FROM orders WHERE tenant_id = $1) AS total_orders,
			(SELECT COUNT(*) FROM customers WHERE tenant_id = $1 AND is_active) AS total_customers,
			(SELECT COUNT(*) FROM products WHERE tenant_id = $1 AND is_active) AS total_products
	`
	row := querier.QueryRow(ctx, summarySQL, tenantID)
	if err := row.Scan(
		&d.TodaySales, &d.MonthSales, &d.LastMonthSales,
		&d.TotalOrders, &d.TotalCustomers, &d.TotalProducts,
	); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	statusSQL := `
		SELECT status, COUNT(*) AS count
		FROM orders
		WHERE tenant_id = $1
		GROUP BY status
		ORDER BY status
	`
	if err := pgxscan.Select(ctx, querier, &d.OrdersByStatus, statusSQL, tenantID); err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &d.TopProducts, topProductsSQL, tenantID, topN); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	categorySQL := `
		SELECT c.id AS category_id,
			   c.name AS category_name,
			   SUM(oi.quantity) AS quantity,
			   SUM(oi.total_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE o.tenant_id = $1 AND o.status <> 'Cancelled'
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
	`
	if err := pgxscan.Select(ctx, querier, &d.SalesByCategory, categorySQL, tenantID); err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}

	recentSQL := `
		SELECT o.id AS order_id,
			   o.order_number,
			   trim(c.first_name || ' ' || c.last_name) AS customer_name,
			   o.order_date,
			   o.status,
			   o.total_amount
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.tenant_id = $1
		ORDER BY o.order_date DESC
		LIMIT $2
	`
	if err := pgxscan.Select(ctx, querier, &d.RecentOrders, recentSQL, tenantID, recentN); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	lowStock, err := r.inventoryRows(ctx, tenantID, reports.InventoryFilter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	d.LowStock = lowStock

	return d, nil
}

// periodExpr maps a grouping to its date_trunc expression. The grouping
// is validated by the service, but the whitelist here keeps raw input
// out of the SQL string regardless.
func periodExpr(g reports.SalesGrouping) (string, error) {
	switch g {
	case reports.GroupByDay:
		return "date_trunc('day', order_date)", nil
	case reports.GroupByWeek:
		return "date_trunc('week', order_date)", nil
	case reports.GroupByMonth:
		return "date_trunc('month', order_date)", nil
	}
	return "", fmt.Errorf("unknown sales grouping: %s", g)
}

// GetSalesReport buckets revenue by day, week or month.
func (r *ReportRepo) GetSalesReport(ctx context.Context, tenantID string, filter reports.SalesReportFilter) (*reports.SalesReport, error) {
	period, err := periodExpr(filter.GroupBy)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`
		SELECT %s AS period,
			   COUNT(*) AS order_count,
			   COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE tenant_id = $1
		  AND status <> 'Cancelled'
		  AND order_date >= $2
		  AND order_date <= $3
		GROUP BY period
		ORDER BY period
	`, period)

	report := &reports.SalesReport{
		FromDate:     filter.FromDate,
		ToDate:       filter.ToDate,
		GroupBy:      filter.GroupBy,
		TotalRevenue: types.Zero(),
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Rows, sql, tenantID, filter.FromDate, filter.ToDate); err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	for _, row := range report.Rows {
		report.TotalOrders += row.OrderCount
		report.TotalRevenue = report.TotalRevenue.Add(row.Revenue)
	}
	return report, nil
}

// GetInventoryReport values current stock at cost and sale price.
func (r *ReportRepo) GetInventoryReport(ctx context.Context, tenantID string, filter reports.InventoryFilter) (*reports.InventoryReport, error) {
	rows, err := r.inventoryRows(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	report := &reports.InventoryReport{
		Rows:           rows,
		TotalItems:     len(rows),
		TotalCostValue: types.Zero(),
		TotalSaleValue: types.Zero(),
	}
	for _, row := range rows {
		report.TotalUnits += row.StockQuantity
		report.TotalCostValue = report.TotalCostValue.Add(row.CostValue)
		report.TotalSaleValue = report.TotalSaleValue.Add(row.SaleValue)
	}
	return report, nil
}

func (r *ReportRepo) inventoryRows(ctx context.Context, tenantID string, filter reports.InventoryFilter) ([]reports.InventoryReportRow, error) {
	sql := `
		SELECT p.id AS product_id,
			   p.name AS product_name,
			   COALESCE(p.sku, '') AS sku,
			   COALESCE(c.name, '') AS category_name,
			   p.stock_quantity,
			   p.min_stock_level,
			   p.stock_quantity * p.cost_price AS cost_value,
			   p.stock_quantity * p.price AS sale_value
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.tenant_id = $1 AND p.is_active
	`
	args := []any{tenantID}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		sql += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if filter.MinStock != nil {
		args = append(args, *filter.MinStock)
		sql += fmt.Sprintf(" AND p.stock_quantity >= $%d", len(args))
	}
	if filter.MaxStock != nil {
		args = append(args, *filter.MaxStock)
		sql += fmt.Sprintf(" AND p.stock_quantity <= $%d", len(args))
	}
	if filter.LowStockOnly {
		sql += " AND p.min_stock_level > 0 AND p.stock_quantity <= p.min_stock_level"
	}
	sql += " ORDER BY p.name"

	var rows []reports.InventoryReportRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return rows, nil
}
