package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/pricing"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

// TaxRate applies when an order carries no persisted tax snapshot.
const TaxRate = 0.18

const (
	defaultDesignName = "Unknown Design"
	defaultDesignSide = "front"
	defaultImageURL   = "https://via.placeholder.com/80?text=No+Image"
	orderDateLayout   = "2006-01-02 15:04:05"
)

type OrderService struct {
	Repo *repo.OrderRepo
	Now  func() time.Time
}

func NewOrderService(r *repo.OrderRepo) *OrderService {
	return &OrderService{Repo: r, Now: time.Now}
}

// PlaceOrder persists one line per item, all stamped with a fresh order id,
// the current timestamp, status Ordered and the caller-supplied totals.
// The totals are trusted verbatim; nothing is recomputed on the write path.
// All lines land in one transaction or none do.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.PlaceOrderRequest) (string, error) {
	if strings.TrimSpace(req.Username) == "" {
		return "", fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return "", fmt.Errorf("%w: no items in order", ErrValidation)
	}

	orderID := uuid.NewString()
	orderDate := s.Now().Format(orderDateLayout)

	lines := make([]models.OrderLine, 0, len(req.Items))
	for i := range req.Items {
		it := req.Items[i]
		if it.Quantity < 0 {
			return "", fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		if it.Quantity == 0 {
			it.Quantity = 1
		}
		name := it.Name
		if name == "" {
			name = defaultDesignName
		}
		side := it.DesignSide
		if side == "" {
			side = defaultDesignSide
		}

		lines = append(lines, models.OrderLine{
			OrderID:            orderID,
			Username:           req.Username,
			DesignName:         &name,
			Price:              &it.Price,
			Quantity:           &it.Quantity,
			ImageURL:           &it.Image,
			PlacementPosition:  &it.PlacementPosition,
			DesignSide:         &side,
			DesignWidth:        &it.DesignWidth,
			DesignHeight:       &it.DesignHeight,
			CustomRequirements: &it.CustomRequirements,
			OrderDate:          orderDate,
			Status:             models.StatusOrdered,
			Subtotal:           req.Subtotal,
			Tax:                req.Tax,
			Total:              req.Total,
		})
	}

	if err := s.Repo.CreateLines(ctx, lines); err != nil {
		return "", err
	}
	return orderID, nil
}

// GetOrders reconstructs logical orders from the user's flat line rows,
// newest first. Subtotal is always the live sum of price*quantity over the
// group; tax and total prefer the persisted snapshot and fall back to the
// fixed-rate derivation.
func (s *OrderService) GetOrders(ctx context.Context, username string) ([]transport.LogicalOrder, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	lines, err := s.Repo.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	type group struct {
		order    transport.LogicalOrder
		subtotal float64
		tax      *float64
		total    *float64
	}

	groups := map[string]*group{}
	var keys []string

	for i := range lines {
		ln := &lines[i]

		// A line predating the order_id column becomes its own
		// singleton order keyed from its row id.
		key := ln.OrderID
		if key == "" {
			key = fmt.Sprintf("ORD%d", ln.ID)
		}

		g, ok := groups[key]
		if !ok {
			status := ln.Status
			if status == "" {
				status = models.StatusPending
			}
			g = &group{order: transport.LogicalOrder{
				OrderID: key,
				Date:    ln.OrderDate,
				Status:  status,
			}}
			groups[key] = g
			keys = append(keys, key)
		}

		item := projectItem(ln)
		g.order.Items = append(g.order.Items, item)
		g.subtotal += item.Price * float64(item.Quantity)

		if g.tax == nil && ln.Tax != nil {
			g.tax = ln.Tax
		}
		if g.total == nil && ln.Total != nil {
			g.total = ln.Total
		}
	}

	orders := make([]transport.LogicalOrder, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		g.order.Subtotal = pricing.Round2(g.subtotal)
		if g.tax != nil {
			g.order.Tax = *g.tax
		} else {
			g.order.Tax = pricing.Round2(g.order.Subtotal * TaxRate)
		}
		if g.total != nil {
			g.order.Total = *g.total
		} else {
			g.order.Total = pricing.Round2(g.order.Subtotal + g.order.Tax)
		}
		orders = append(orders, g.order)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date > orders[j].Date
	})
	return orders, nil
}

// projectItem maps a stored line to its item record, substituting the
// default value for every field whose column was NULL or empty.
func projectItem(ln *models.OrderLine) transport.OrderItem {
	item := transport.OrderItem{
		Name:       defaultDesignName,
		Quantity:   1,
		Image:      defaultImageURL,
		DesignSide: defaultDesignSide,
	}
	if ln.DesignName != nil && *ln.DesignName != "" {
		item.Name = *ln.DesignName
	}
	if ln.Price != nil {
		item.Price = *ln.Price
	}
	if ln.Quantity != nil {
		item.Quantity = *ln.Quantity
	}
	if ln.ImageURL != nil && *ln.ImageURL != "" {
		item.Image = *ln.ImageURL
	}
	if ln.PlacementPosition != nil {
		item.PlacementPosition = *ln.PlacementPosition
	}
	if ln.DesignSide != nil && *ln.DesignSide != "" {
		item.DesignSide = *ln.DesignSide
	}
	if ln.DesignWidth != nil {
		item.DesignWidth = *ln.DesignWidth
	}
	if ln.DesignHeight != nil {
		item.DesignHeight = *ln.DesignHeight
	}
	if ln.CustomRequirements != nil {
		item.CustomRequirements = *ln.CustomRequirements
	}
	return item
}

// ListAll returns every stored line for the admin console, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderLine, error) {
	return s.Repo.ListAll(ctx)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order line %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *OrderService) DeleteLine(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteLine(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order line %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
