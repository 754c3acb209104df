package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

// AccountService covers the per-user cart and wishlist in the users store.
type AccountService struct {
	Repo *repo.UserRepo
}

// SaveCart replaces the user's whole cart with the supplied items.
func (s *AccountService) SaveCart(ctx context.Context, req transport.SaveCartRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}

	items := make([]models.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		side := it.DesignSide
		if side == "" {
			side = "front"
		}
		items = append(items, models.CartItem{
			DesignName:         it.DesignName,
			Price:              it.Price,
			Quantity:           quantity,
			ImageURL:           it.ImageURL,
			PlacementPosition:  it.PlacementPosition,
			DesignSide:         side,
			DesignWidth:        it.DesignWidth,
			DesignHeight:       it.DesignHeight,
			CustomRequirements: it.CustomRequirements,
		})
	}
	return s.Repo.ReplaceCart(ctx, req.Username, items)
}

func (s *AccountService) GetCart(ctx context.Context, username string) ([]models.CartItem, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	return s.Repo.GetCart(ctx, username)
}

func (s *AccountService) ClearCart(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	return s.Repo.ClearCart(ctx, username)
}

func (s *AccountService) SaveWishlist(ctx context.Context, req transport.SaveWishlistRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}

	items := make([]models.WishlistItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.WishlistItem{
			DesignName: it.DesignName,
			Price:      it.Price,
			ImageURL:   it.ImageURL,
		})
	}
	return s.Repo.ReplaceWishlist(ctx, req.Username, items)
}

func (s *AccountService) GetWishlist(ctx context.Context, username string) ([]models.WishlistItem, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	return s.Repo.GetWishlist(ctx, username)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListAll(ctx)
}
