package services

import (
	"context"
	"fmt"
	"time"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
)

const (
	revenueMonths      = 6
	topProductsLimit   = 5
	recentOrdersLimit  = 10
	lowStockPanelLimit = 10
)

// DashboardService assembles the dashboard from read-only aggregates.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	reports repositories.ReportRepository
	now     func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(reports repositories.ReportRepository) DashboardService {
	return &dashboardService{reports: reports, now: time.Now}
}

// StartOfDay is midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthWindowStart is the first day of the oldest of n months ending with t's month.
func MonthWindowStart(t time.Time, n int) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m-time.Month(n-1), 1, 0, 0, 0, 0, t.Location())
}

// FillMonths returns exactly n buckets ending with now's month, taking
// figures from rows and zero for months without delivered orders.
func FillMonths(now time.Time, n int, rows []models.MonthlyRevenue) []models.MonthlyRevenue {
	byMonth := make(map[string]models.MonthlyRevenue, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	start := MonthWindowStart(now, n)
	out := make([]models.MonthlyRevenue, 0, n)
	for i := 0; i < n; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		if r, ok := byMonth[key]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, models.MonthlyRevenue{Month: key, Revenue: models.MoneyFromInt(0)})
	}
	return out
}

// FillStatuses returns one entry per order status in lifecycle order.
func FillStatuses(counts map[models.OrderStatus]int) []models.StatusCount {
	out := make([]models.StatusCount, 0, len(models.AllOrderStatuses))
	for _, st := range models.AllOrderStatuses {
		out = append(out, models.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

// GetDashboard computes day and month windows in UTC to match the report buckets.
func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	now := s.now().UTC()
	today := StartOfDay(now)
	var (
		d   models.Dashboard
		err error
	)

	if d.Stats.TotalProducts, err = s.reports.ActiveProductCount(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if d.Stats.StockValue, d.Stats.TotalUnits, err = s.reports.StockTotals(ctx); err != nil {
		return nil, fmt.Errorf("failed to compute stock totals: %w", err)
	}
	if d.Stats.LowStockCount, err = s.reports.LowStockCount(ctx); err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}
	if d.Stats.OutOfStockCount, err = s.reports.OutOfStockCount(ctx); err != nil {
		return nil, fmt.Errorf("failed to count out of stock: %w", err)
	}
	if d.Stats.TotalRevenue, err = s.reports.DeliveredRevenue(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}
	if d.Stats.TodayRevenue, err = s.reports.DeliveredRevenue(ctx, &today); err != nil {
		return nil, fmt.Errorf("failed to compute today's revenue: %w", err)
	}
	if d.Stats.TodayOrders, err = s.reports.OrdersCreatedSince(ctx, today); err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	if d.Stats.PendingOrders, err = s.reports.OrderCountByStatus(ctx, models.OrderPending); err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	histogram, err := s.reports.OrderStatusHistogram(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}
	d.Charts.OrdersByStatus = FillStatuses(histogram)

	months, err := s.reports.DeliveredRevenueByMonth(ctx, MonthWindowStart(now, revenueMonths))
	if err != nil {
		return nil, fmt.Errorf("failed to group revenue by month: %w", err)
	}
	d.Charts.RevenueByMonth = FillMonths(now, revenueMonths, months)

	if d.Charts.TopProducts, err = s.reports.TopProducts(ctx, topProductsLimit); err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	if d.RecentOrders, err = s.reports.RecentOrders(ctx, recentOrdersLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	if d.LowStockProducts, err = s.reports.LowStockProducts(ctx, lowStockPanelLimit); err != nil {
		return nil, fmt.Errorf("failed to load low stock products: %w", err)
	}
	return &d, nil
}
