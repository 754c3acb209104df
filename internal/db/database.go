package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	return db, nil
}

// Stores groups the four independent databases the storefront talks to.
type Stores struct {
	Users   *gorm.DB
	Orders  *gorm.DB
	Admin   *gorm.DB
	Designs *gorm.DB
}

// Migrate applies all pending column additions once, at startup. After this
// runs, the request paths query a known schema by name; rows written before
// a given migration simply carry NULL in the added columns.
func (s *Stores) Migrate() error {
	if err := s.Users.AutoMigrate(&models.User{}, &models.CartItem{}, &models.WishlistItem{}); err != nil {
		return fmt.Errorf("migrate users store: %w", err)
	}
	if err := s.Orders.AutoMigrate(&models.OrderLine{}); err != nil {
		return fmt.Errorf("migrate orders store: %w", err)
	}
	if err := s.Admin.AutoMigrate(&models.AdminUser{}); err != nil {
		return fmt.Errorf("migrate admin store: %w", err)
	}
	if err := s.Designs.AutoMigrate(&models.Design{}, &models.DesignPreview{}); err != nil {
		return fmt.Errorf("migrate designs store: %w", err)
	}
	return nil
}
