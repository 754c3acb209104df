package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Save(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ReplaceCart swaps the user's whole cart for the given items atomically.
func (r *UserRepo) ReplaceCart(ctx context.Context, username string, items []models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].Username = username
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepo) GetCart(ctx context.Context, username string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserRepo) ClearCart(ctx context.Context, username string) error {
	return r.DB.WithContext(ctx).Where("username = ?", username).Delete(&models.CartItem{}).Error
}

func (r *UserRepo) ReplaceWishlist(ctx context.Context, username string, items []models.WishlistItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].Username = username
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepo) GetWishlist(ctx context.Context, username string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error
	return total, err
}

func (r *UserRepo) CountCreatedSince(ctx context.Context, since string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}
