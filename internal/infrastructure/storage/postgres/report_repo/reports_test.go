package report_repo

import (
	"strings"
	"testing"

	"vitrin/internal/domain/reports"
)

func TestTopProductsRankByQuantity(t *testing.T) {
	if !strings.Contains(topProductsSQL, "ORDER BY quantity DESC") {
		t.Error("top products must rank by units sold, not revenue")
	}
	if !strings.Contains(topProductsSQL, "o.status <> 'Cancelled'") {
		t.Error("cancelled orders must not count toward top products")
	}
}

func TestPeriodExpr(t *testing.T) {
	tests := []struct {
		grouping reports.SalesGrouping
		want     string
	}{
		{reports.GroupByDay, "date_trunc('day', order_date)"},
		{reports.GroupByWeek, "date_trunc('week', order_date)"},
		{reports.GroupByMonth, "date_trunc('month', order_date)"},
	}
	for _, tt := range tests {
		got, err := periodExpr(tt.grouping)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("periodExpr(%s) = %q, want %q", tt.grouping, got, tt.want)
		}
	}

	if _, err := periodExpr("year"); err == nil {
		t.Error("unknown grouping must be rejected")
	}
}
