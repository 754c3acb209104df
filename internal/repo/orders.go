package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
)

type OrderRepo struct {
	DB *gorm.DB
}

// CreateLines inserts every line of one checkout in a single transaction.
// Either the whole order lands or none of it does.
func (r *OrderRepo) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range lines {
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepo) ListByUser(ctx context.Context, username string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("order_date DESC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.DB.WithContext(ctx).Order("order_date DESC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.OrderLine{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLine removes a single line. The remaining lines of its order keep
// their original snapshot totals; no recompute happens here.
func (r *OrderRepo) DeleteLine(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.OrderLine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).Count(&total).Error
	return total, err
}

func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *OrderRepo) CountSince(ctx context.Context, date string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).Where("order_date >= ?", date).Count(&total).Error
	return total, err
}

func (r *OrderRepo) RevenueByStatus(ctx context.Context, status string) (float64, error) {
	var revenue float64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).
		Select("COALESCE(SUM(COALESCE(price, 0) * COALESCE(quantity, 1)), 0)").
		Where("status = ?", status).
		Scan(&revenue).Error
	return revenue, err
}

// RevenueCompletedOn sums completed revenue for one calendar day; day is a
// "YYYY-MM-DD" prefix of the stored date string.
func (r *OrderRepo) RevenueCompletedOn(ctx context.Context, day string) (float64, error) {
	var revenue float64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).
		Select("COALESCE(SUM(COALESCE(price, 0) * COALESCE(quantity, 1)), 0)").
		Where("status = ? AND order_date LIKE ?", models.StatusCompleted, day+"%").
		Scan(&revenue).Error
	return revenue, err
}

func (r *OrderRepo) RevenueCompletedSince(ctx context.Context, date string) (float64, error) {
	var revenue float64
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).
		Select("COALESCE(SUM(COALESCE(price, 0) * COALESCE(quantity, 1)), 0)").
		Where("status = ? AND order_date >= ?", models.StatusCompleted, date).
		Scan(&revenue).Error
	return revenue, err
}

type DesignRevenue struct {
	Name       string  `json:"name"`
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

func (r *OrderRepo) TopDesigns(ctx context.Context, limit int) ([]DesignRevenue, error) {
	var rows []DesignRevenue
	err := r.DB.WithContext(ctx).Model(&models.OrderLine{}).
		Select("design_name AS name, COUNT(*) AS order_count, COALESCE(SUM(COALESCE(price, 0) * COALESCE(quantity, 1)), 0) AS revenue").
		Where("status = ?", models.StatusCompleted).
		Group("design_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
