package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/repo"
)

func newAnalyticsService(t *testing.T) (*AnalyticsService, *OrderService) {
	t.Helper()
	ordersDB := newTestDB(t, &models.OrderLine{})
	usersDB := newTestDB(t, &models.User{})

	now := func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }

	orderSvc := NewOrderService(&repo.OrderRepo{DB: ordersDB})
	orderSvc.Now = now

	svc := NewAnalyticsService(&repo.OrderRepo{DB: ordersDB}, &repo.UserRepo{DB: usersDB})
	svc.Now = now
	return svc, orderSvc
}

func seedLine(t *testing.T, svc *AnalyticsService, status, date string, price float64, qty int) {
	t.Helper()
	line := models.OrderLine{
		OrderID:    "order-" + date + status,
		Username:   "alice",
		DesignName: ptr("Logo Design"),
		Price:      ptr(price),
		Quantity:   ptr(qty),
		OrderDate:  date,
		Status:     status,
	}
	require.NoError(t, svc.Orders.DB.Create(&line).Error)
}

func TestStats(t *testing.T) {
	svc, _ := newAnalyticsService(t)
	ctx := context.Background()

	seedLine(t, svc, models.StatusCompleted, "2025-03-13 10:00:00", 500, 2)
	seedLine(t, svc, models.StatusPending, "2025-03-14 09:00:00", 100, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalOrders)
	require.EqualValues(t, 1, stats.PendingOrders)
	require.Equal(t, 1000.0, stats.TotalRevenue)
}

func TestSummary(t *testing.T) {
	svc, _ := newAnalyticsService(t)
	ctx := context.Background()

	// Completed revenue inside and outside the 7-day window.
	seedLine(t, svc, models.StatusCompleted, "2025-03-14 10:00:00", 500, 2)
	seedLine(t, svc, models.StatusCompleted, "2025-03-12 10:00:00", 300, 1)
	seedLine(t, svc, models.StatusCompleted, "2025-01-01 10:00:00", 700, 1)
	seedLine(t, svc, models.StatusOrdered, "2025-03-14 11:00:00", 50, 1)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2000.0, summary.TotalRevenue)
	require.EqualValues(t, 4, summary.TotalOrders)
	require.Equal(t, 500.0, summary.AverageOrderValue)

	require.Len(t, summary.DailyRevenue, 7)
	require.Equal(t, "2025-03-14", summary.DailyRevenue[6].Date)
	require.Equal(t, 1000.0, summary.DailyRevenue[6].Revenue)
	require.Equal(t, "2025-03-12", summary.DailyRevenue[4].Date)
	require.Equal(t, 300.0, summary.DailyRevenue[4].Revenue)

	require.Len(t, summary.StatusBreakdown, 4)
	require.Equal(t, models.StatusCompleted, summary.StatusBreakdown[0].Status)
	require.EqualValues(t, 3, summary.StatusBreakdown[0].OrderCount)
	require.Equal(t, 2000.0, summary.StatusBreakdown[0].Revenue)

	require.Len(t, summary.TopDesigns, 1)
	require.Equal(t, "Logo Design", summary.TopDesigns[0].Name)
	require.Equal(t, 2000.0, summary.TopDesigns[0].Revenue)
}

func TestPeriod(t *testing.T) {
	svc, _ := newAnalyticsService(t)
	ctx := context.Background()

	seedLine(t, svc, models.StatusCompleted, "2025-03-10 10:00:00", 400, 1)
	seedLine(t, svc, models.StatusCompleted, "2024-06-01 10:00:00", 900, 1)

	week, err := svc.Period(ctx, "7d")
	require.NoError(t, err)
	require.Equal(t, "7d", week.Period)
	require.Equal(t, 400.0, week.Revenue)
	require.EqualValues(t, 1, week.Orders)

	year, err := svc.Period(ctx, "1y")
	require.NoError(t, err)
	require.Equal(t, 1300.0, year.Revenue)
	require.EqualValues(t, 2, year.Orders)

	fallback, err := svc.Period(ctx, "bogus")
	require.NoError(t, err)
	require.Equal(t, "30d", fallback.Period)
	require.Equal(t, 400.0, fallback.Revenue)
}
