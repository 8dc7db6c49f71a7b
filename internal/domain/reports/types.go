// Package reports provides read-only, tenant-scoped sales and inventory
// aggregates. Everything here is derived data; no mutation.
package reports

import (
	"time"

	"vitrin/internal/core/types"
)

// Dashboard is the storefront overview: sales sums for fixed windows,
// order counts by status, top products and recent activity.
type Dashboard struct {
	TodaySales      types.Money          `json:"todaySales"`
	MonthSales      types.Money          `json:"monthSales"`
	LastMonthSales  types.Money          `json:"lastMonthSales"`
	TotalOrders     int64                `json:"totalOrders"`
	TotalCustomers  int64                `json:"totalCustomers"`
	TotalProducts   int64                `json:"totalProducts"`
	OrdersByStatus  []StatusCount        `json:"ordersByStatus"`
	TopProducts     []ProductSales       `json:"topProducts"`
	SalesByCategory []CategorySales      `json:"salesByCategory"`
	RecentOrders    []RecentOrder        `json:"recentOrders"`
	LowStock        []InventoryReportRow `json:"lowStock"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int64  `db:"count" json:"count"`
}

// ProductSales aggregates sold quantity and revenue per product.
type ProductSales struct {
	ProductID   string      `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	Revenue     types.Money `db:"revenue" json:"revenue"`
}

// CategorySales aggregates revenue per category.
type CategorySales struct {
	CategoryID   string      `db:"category_id" json:"categoryId"`
	CategoryName string      `db:"category_name" json:"categoryName"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	Revenue      types.Money `db:"revenue" json:"revenue"`
}

// RecentOrder is one row of the recent-orders widget.
type RecentOrder struct {
	OrderID      string      `db:"order_id" json:"orderId"`
	OrderNumber  string      `db:"order_number" json:"orderNumber"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	OrderDate    time.Time   `db:"order_date" json:"orderDate"`
	Status       string      `db:"status" json:"status"`
	TotalAmount  types.Money `db:"total_amount" json:"totalAmount"`
}

// SalesGrouping selects the bucket size of a sales report.
type SalesGrouping string

const (
	GroupByDay   SalesGrouping = "day"
	GroupByWeek  SalesGrouping = "week"
	GroupByMonth SalesGrouping = "month"
)

// SalesReportFilter selects the window and bucketing of a sales report.
type SalesReportFilter struct {
	FromDate time.Time
	ToDate   time.Time
	GroupBy  SalesGrouping
}

// InventoryFilter narrows the inventory report.
type InventoryFilter struct {
	// LowStockOnly keeps only rows at or below their minimum level
	LowStockOnly bool

	// CategoryID restricts the report to one category
	CategoryID *string

	// MinStock/MaxStock bound the stock quantity (inclusive)
	MinStock *int
	MaxStock *int
}

// SalesReport is revenue bucketed by period.
type SalesReport struct {
	FromDate     time.Time        `json:"fromDate"`
	ToDate       time.Time        `json:"toDate"`
	GroupBy      SalesGrouping    `json:"groupBy"`
	Rows         []SalesReportRow `json:"rows"`
	TotalOrders  int64            `json:"totalOrders"`
	TotalRevenue types.Money      `json:"totalRevenue"`
}

// SalesReportRow is one period bucket.
type SalesReportRow struct {
	Period     time.Time   `db:"period" json:"period"`
	OrderCount int64       `db:"order_count" json:"orderCount"`
	Revenue    types.Money `db:"revenue" json:"revenue"`
}

// InventoryReport values current stock at cost and sale price.
type InventoryReport struct {
	Rows           []InventoryReportRow `json:"rows"`
	TotalItems     int                  `json:"totalItems"`
	TotalUnits     int64                `json:"totalUnits"`
	TotalCostValue types.Money          `json:"totalCostValue"`
	TotalSaleValue types.Money          `json:"totalSaleValue"`
}

// InventoryReportRow is one product's stock valuation.
type InventoryReportRow struct {
	ProductID     string      `db:"product_id" json:"productId"`
	ProductName   string      `db:"product_name" json:"productName"`
	SKU           string      `db:"sku" json:"sku,omitempty"`
	CategoryName  string      `db:"category_name" json:"categoryName,omitempty"`
	StockQuantity int64       `db:"stock_quantity" json:"stockQuantity"`
	MinStockLevel int64       `db:"min_stock_level" json:"minStockLevel"`
	CostValue     types.Money `db:"cost_value" json:"costValue"`
	SaleValue     types.Money `db:"sale_value" json:"saleValue"`
}

// IsValidGrouping reports whether g is a known sales grouping.
func IsValidGrouping(g SalesGrouping) bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth:
		return true
	}
	return false
}
