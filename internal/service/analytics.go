package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/pricing"
	"github.com/finegraphics/printstore/internal/repo"
)

const dayLayout = "2006-01-02"

// AnalyticsService reads across the orders and users stores to build the
// admin dashboards.
type AnalyticsService struct {
	Orders *repo.OrderRepo
	Users  *repo.UserRepo
	Now    func() time.Time
}

func NewAnalyticsService(orders *repo.OrderRepo, users *repo.UserRepo) *AnalyticsService {
	return &AnalyticsService{Orders: orders, Users: users, Now: time.Now}
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type StatusBreakdown struct {
	Status     string  `json:"status"`
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type Summary struct {
	TotalRevenue      float64              `json:"total_revenue"`
	TotalOrders       int64                `json:"total_orders"`
	PendingOrders     int64                `json:"pending_orders"`
	NewCustomers      int64                `json:"new_customers"`
	DailyRevenue      []DailyRevenue       `json:"daily_revenue"`
	StatusBreakdown   []StatusBreakdown    `json:"status_breakdown"`
	TopDesigns        []repo.DesignRevenue `json:"top_designs"`
	AverageOrderValue float64              `json:"average_order_value"`
}

// Summary builds the dashboard over completed revenue, order counts, the
// last seven days of revenue, the per-status breakdown and the top designs.
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	totalRevenue, err := s.Orders.RevenueByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.Orders.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	newCustomers, err := s.Users.CountCreatedSince(ctx, s.Now().AddDate(0, 0, -30).Format(dayLayout))
	if err != nil {
		return nil, err
	}

	now := s.Now()
	daily := make([]DailyRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(dayLayout)
		revenue, err := s.Orders.RevenueCompletedOn(ctx, day)
		if err != nil {
			return nil, err
		}
		daily = append(daily, DailyRevenue{Date: day, Revenue: revenue})
	}

	statuses := []string{models.StatusCompleted, models.StatusPending, models.StatusProcessing, models.StatusOrdered}
	breakdown := make([]StatusBreakdown, 0, len(statuses))
	for _, status := range statuses {
		count, err := s.Orders.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		revenue, err := s.Orders.RevenueByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, StatusBreakdown{Status: status, OrderCount: count, Revenue: revenue})
	}

	topDesigns, err := s.Orders.TopDesigns(ctx, 5)
	if err != nil {
		return nil, err
	}

	var aov float64
	if totalOrders > 0 {
		aov = pricing.Round2(totalRevenue / float64(totalOrders))
	}

	return &Summary{
		TotalRevenue:      totalRevenue,
		TotalOrders:       totalOrders,
		PendingOrders:     pendingOrders,
		NewCustomers:      newCustomers,
		DailyRevenue:      daily,
		StatusBreakdown:   breakdown,
		TopDesigns:        topDesigns,
		AverageOrderValue: aov,
	}, nil
}

type PeriodSummary struct {
	Period            string  `json:"period"`
	Revenue           float64 `json:"revenue"`
	Orders            int64   `json:"orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	EndDate           string  `json:"end_date"`
}

// Period computes revenue and order counts over a trailing window.
// Supported periods: 7d, 30d, 90d, 1y. Anything else falls back to 30d.
func (s *AnalyticsService) Period(ctx context.Context, period string) (*PeriodSummary, error) {
	now := s.Now()
	var since time.Time
	switch period {
	case "7d":
		since = now.AddDate(0, 0, -7)
	case "90d":
		since = now.AddDate(0, 0, -90)
	case "1y":
		since = now.AddDate(-1, 0, 0)
	default:
		period = "30d"
		since = now.AddDate(0, 0, -30)
	}

	revenue, err := s.Orders.RevenueCompletedSince(ctx, since.Format(dayLayout))
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.CountSince(ctx, since.Format(dayLayout))
	if err != nil {
		return nil, err
	}

	var aov float64
	if orders > 0 {
		aov = pricing.Round2(revenue / float64(orders))
	}

	return &PeriodSummary{
		Period:            period,
		Revenue:           revenue,
		Orders:            orders,
		AverageOrderValue: aov,
		EndDate:           now.Format(dayLayout),
	}, nil
}

type ExportData struct {
	ExportedAt   string  `json:"exported_at"`
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

func (s *AnalyticsService) Export(ctx context.Context) (*ExportData, error) {
	totalOrders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.Orders.RevenueByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		ExportedAt:   s.Now().Format(time.RFC3339),
		TotalOrders:  totalOrders,
		TotalRevenue: totalRevenue,
	}, nil
}

type Stats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

func (s *AnalyticsService) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("users store: %w", err)
	}
	totalOrders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders store: %w", err)
	}
	pendingOrders, err := s.Orders.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("orders store: %w", err)
	}
	totalRevenue, err := s.Orders.RevenueByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("orders store: %w", err)
	}
	return &Stats{
		TotalUsers:    totalUsers,
		TotalOrders:   totalOrders,
		PendingOrders: pendingOrders,
		TotalRevenue:  totalRevenue,
	}, nil
}
