package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/hash"
	"github.com/finegraphics/printstore/internal/models"
)

type AdminRepo struct {
	DB *gorm.DB
}

func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	admin := models.AdminUser{}
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SeedDefault creates the bootstrap admin account if the store has none.
func (r *AdminRepo) SeedDefault(ctx context.Context, username, password string) error {
	var existing models.AdminUser
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.AdminUser{
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     "Super Admin",
		Role:         "super_admin",
	}
	return r.DB.WithContext(ctx).Create(&admin).Error
}
