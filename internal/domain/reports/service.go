package reports

import (
	"context"
	"fmt"
	"time"

	"vitrin/internal/core/apperror"
)

// Defaults for dashboard widget sizes.
const (
	defaultTopProducts  = 5
	defaultRecentOrders = 10
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboard returns the storefront overview for a tenant.
func (s *Service) GetDashboard(ctx context.Context, tenantID string) (*Dashboard, error) {
	report, err := s.repo.GetDashboard(ctx, tenantID, defaultTopProducts, defaultRecentOrders)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return report, nil
}

// GetSalesReport returns bucketed revenue for a window.
// The window defaults to the last 30 days, bucketed by day.
func (s *Service) GetSalesReport(ctx context.Context, tenantID string, filter SalesReportFilter) (*SalesReport, error) {
	if filter.ToDate.IsZero() {
		filter.ToDate = time.Now()
	}
	if filter.FromDate.IsZero() {
		filter.FromDate = filter.ToDate.AddDate(0, 0, -30)
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	if filter.GroupBy == "" {
		filter.GroupBy = GroupByDay
	}
	if !IsValidGrouping(filter.GroupBy) {
		return nil, apperror.NewValidation("invalid groupBy").
			WithDetail("groupBy", string(filter.GroupBy))
	}

	report, err := s.repo.GetSalesReport(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales report: %w", err)
	}
	return report, nil
}

// GetInventoryReport values the tenant's current stock.
func (s *Service) GetInventoryReport(ctx context.Context, tenantID string, filter InventoryFilter) (*InventoryReport, error) {
	if filter.MinStock != nil && filter.MaxStock != nil && *filter.MinStock > *filter.MaxStock {
		return nil, apperror.NewValidation("minStock must not exceed maxStock")
	}
	report, err := s.repo.GetInventoryReport(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("get inventory report: %w", err)
	}
	return report, nil
}
