package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

func newTestDB(t *testing.T, ms ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(ms...))
	return db
}

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t, &models.OrderLine{})
	svc := NewOrderService(&repo.OrderRepo{DB: db})
	svc.Now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	return svc, db
}

func ptr[T any](v T) *T { return &v }

func TestPlaceOrderValidation(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, transport.PlaceOrderRequest{
		Username: "",
		Items:    []transport.OrderItemRequest{{Name: "Logo Design", Price: 100, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(ctx, transport.PlaceOrderRequest{Username: "alice"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderStampsEveryLine(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, transport.PlaceOrderRequest{
		Username: "alice",
		Items: []transport.OrderItemRequest{
			{Name: "Logo Design", Price: 1000, Quantity: 2},
			{Name: "Banner", Price: 500, Quantity: 1, DesignSide: "back"},
		},
		Subtotal: ptr(2500.0),
		Tax:      ptr(450.0),
		Total:    ptr(2950.0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	var lines []models.OrderLine
	require.NoError(t, db.Order("id ASC").Find(&lines).Error)
	require.Len(t, lines, 2)

	for _, ln := range lines {
		require.Equal(t, orderID, ln.OrderID)
		require.Equal(t, models.StatusOrdered, ln.Status)
		require.Equal(t, "2025-03-14 12:00:00", ln.OrderDate)
		require.Equal(t, 2500.0, *ln.Subtotal)
		require.Equal(t, 450.0, *ln.Tax)
		require.Equal(t, 2950.0, *ln.Total)
	}
	require.Equal(t, "front", *lines[0].DesignSide)
	require.Equal(t, "back", *lines[1].DesignSide)
}

func TestPlaceOrderDistinctIDs(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	req := transport.PlaceOrderRequest{
		Username: "alice",
		Items:    []transport.OrderItemRequest{{Name: "Logo Design", Price: 100, Quantity: 1}},
	}
	first, err := svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestGetOrdersEndToEnd(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, transport.PlaceOrderRequest{
		Username: "alice",
		Items:    []transport.OrderItemRequest{{Name: "Logo Design", Price: 1000, Quantity: 2}},
		Subtotal: ptr(2000.0),
		Tax:      ptr(360.0),
		Total:    ptr(2360.0),
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	require.Equal(t, models.StatusOrdered, order.Status)
	require.Equal(t, 2000.0, order.Subtotal)
	require.Equal(t, 360.0, order.Tax)
	require.Equal(t, 2360.0, order.Total)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Logo Design", order.Items[0].Name)
	require.Equal(t, 1000.0, order.Items[0].Price)
	require.Equal(t, 2, order.Items[0].Quantity)
}

func TestGetOrdersDerivesTaxAndTotal(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, transport.PlaceOrderRequest{
		Username: "alice",
		Items:    []transport.OrderItemRequest{{Name: "Logo Design", Price: 1000, Quantity: 2}},
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 2000.0, orders[0].Subtotal)
	require.Equal(t, 360.0, orders[0].Tax)
	require.Equal(t, 2360.0, orders[0].Total)
}

func TestGetOrdersRecomputesSubtotal(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	// The persisted subtotal snapshot lies; the live sum wins.
	line := models.OrderLine{
		OrderID:    "order-1",
		Username:   "alice",
		DesignName: ptr("Logo Design"),
		Price:      ptr(300.0),
		Quantity:   ptr(3),
		OrderDate:  "2025-03-01 10:00:00",
		Status:     models.StatusOrdered,
		Subtotal:   ptr(99999.0),
	}
	require.NoError(t, db.Create(&line).Error)

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 900.0, orders[0].Subtotal)
}

func TestGetOrdersGrouping(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	mk := func(orderID, date string, price float64) models.OrderLine {
		return models.OrderLine{
			OrderID:    orderID,
			Username:   "alice",
			DesignName: ptr("Logo Design"),
			Price:      ptr(price),
			Quantity:   ptr(1),
			OrderDate:  date,
			Status:     models.StatusOrdered,
		}
	}
	for _, ln := range []models.OrderLine{
		mk("order-a", "2025-03-01 10:00:00", 100),
		mk("order-a", "2025-03-01 10:00:00", 200),
		mk("order-b", "2025-03-02 09:00:00", 300),
	} {
		require.NoError(t, db.Create(&ln).Error)
	}

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Newest first.
	require.Equal(t, "order-b", orders[0].OrderID)
	require.Len(t, orders[0].Items, 1)
	require.Equal(t, "order-a", orders[1].OrderID)
	require.Len(t, orders[1].Items, 2)
	require.Equal(t, 300.0, orders[1].Subtotal)
}

func TestGetOrdersTaxSnapshotFromAnyLine(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	lines := []models.OrderLine{
		{
			OrderID:    "order-1",
			Username:   "alice",
			DesignName: ptr("Logo Design"),
			Price:      ptr(1000.0),
			Quantity:   ptr(1),
			OrderDate:  "2025-03-01 10:00:00",
			Status:     models.StatusOrdered,
		},
		{
			OrderID:    "order-1",
			Username:   "alice",
			DesignName: ptr("Banner"),
			Price:      ptr(1000.0),
			Quantity:   ptr(1),
			OrderDate:  "2025-03-01 10:00:00",
			Status:     models.StatusOrdered,
			Tax:        ptr(123.0),
			Total:      ptr(2123.0),
		},
	}
	for i := range lines {
		require.NoError(t, db.Create(&lines[i]).Error)
	}

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 2000.0, orders[0].Subtotal)
	require.Equal(t, 123.0, orders[0].Tax)
	require.Equal(t, 2123.0, orders[0].Total)
}

func TestGetOrdersLegacyRowDefaults(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	// A row written before the order_id and customization columns existed:
	// no order id, NULL everywhere optional.
	line := models.OrderLine{
		Username:  "alice",
		OrderDate: "2023-07-01 08:30:00",
	}
	require.NoError(t, db.Create(&line).Error)

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	require.Equal(t, "ORD1", order.OrderID)
	require.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)

	item := order.Items[0]
	require.Equal(t, "Unknown Design", item.Name)
	require.Equal(t, 0.0, item.Price)
	require.Equal(t, 1, item.Quantity)
	require.Equal(t, "", item.PlacementPosition)
	require.Equal(t, "front", item.DesignSide)
	require.Equal(t, 0, item.DesignWidth)
	require.Equal(t, 0, item.DesignHeight)
	require.Equal(t, "", item.CustomRequirements)

	// Tax and total are derived because no snapshot exists.
	require.Equal(t, 0.0, order.Subtotal)
	require.Equal(t, 0.0, order.Tax)
	require.Equal(t, 0.0, order.Total)
}

func TestGetOrdersPreservesStoredZeroQuantity(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	// Quantity defaults to 1 only when the column is NULL; a stored zero
	// is a real value and stays zero.
	line := models.OrderLine{
		OrderID:    "order-1",
		Username:   "alice",
		DesignName: ptr("Logo Design"),
		Price:      ptr(500.0),
		Quantity:   ptr(0),
		OrderDate:  "2025-03-01 10:00:00",
		Status:     models.StatusOrdered,
	}
	require.NoError(t, db.Create(&line).Error)

	orders, err := svc.GetOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	require.Equal(t, 0, orders[0].Items[0].Quantity)
	require.Equal(t, 0.0, orders[0].Subtotal)
}

func TestGetOrdersRoundTrip(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, transport.PlaceOrderRequest{
		Username: "bob",
		Items: []transport.OrderItemRequest{{
			Name:               "Poster",
			Price:              250.5,
			Quantity:           3,
			Image:              "poster.png",
			PlacementPosition:  "center",
			DesignSide:         "back",
			DesignWidth:        30,
			DesignHeight:       40,
			CustomRequirements: "matte finish",
		}},
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)

	item := orders[0].Items[0]
	require.Equal(t, "Poster", item.Name)
	require.Equal(t, 250.5, item.Price)
	require.Equal(t, 3, item.Quantity)
	require.Equal(t, "poster.png", item.Image)
	require.Equal(t, "center", item.PlacementPosition)
	require.Equal(t, "back", item.DesignSide)
	require.Equal(t, 30, item.DesignWidth)
	require.Equal(t, 40, item.DesignHeight)
	require.Equal(t, "matte finish", item.CustomRequirements)
	require.Equal(t, 751.5, orders[0].Subtotal)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()

	line := models.OrderLine{
		OrderID:    "order-1",
		Username:   "alice",
		DesignName: ptr("Logo Design"),
		Price:      ptr(100.0),
		Quantity:   ptr(1),
		OrderDate:  "2025-03-01 10:00:00",
		Status:     models.StatusOrdered,
	}
	require.NoError(t, db.Create(&line).Error)

	require.NoError(t, svc.UpdateStatus(ctx, line.ID, models.StatusCompleted))

	var got models.OrderLine
	require.NoError(t, db.First(&got, line.ID).Error)
	require.Equal(t, models.StatusCompleted, got.Status)

	require.ErrorIs(t, svc.UpdateStatus(ctx, line.ID, ""), ErrValidation)

	require.NoError(t, svc.DeleteLine(ctx, line.ID))
	require.ErrorIs(t, db.First(&got, line.ID).Error, gorm.ErrRecordNotFound)

	err := svc.DeleteLine(ctx, line.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
