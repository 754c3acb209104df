package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
)

type DesignRepo struct {
	DB *gorm.DB
}

func (r *DesignRepo) Get(ctx context.Context, id uint) (*models.Design, error) {
	design := models.Design{}
	if err := r.DB.WithContext(ctx).First(&design, id).Error; err != nil {
		return nil, err
	}
	return &design, nil
}

func (r *DesignRepo) List(ctx context.Context) ([]models.Design, error) {
	var designs []models.Design
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *DesignRepo) ListWithPreviews(ctx context.Context) ([]models.Design, error) {
	var designs []models.Design
	if err := r.DB.WithContext(ctx).
		Preload("Previews", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("id ASC").
		Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *DesignRepo) Create(ctx context.Context, design *models.Design) error {
	return r.DB.WithContext(ctx).Create(design).Error
}

func (r *DesignRepo) Save(ctx context.Context, design *models.Design) error {
	return r.DB.WithContext(ctx).Save(design).Error
}

// Delete removes a design and its previews in one transaction.
func (r *DesignRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Design{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("design_id = ?", id).Delete(&models.DesignPreview{}).Error
	})
}

func (r *DesignRepo) ListPreviews(ctx context.Context, designID uint) ([]models.DesignPreview, error) {
	var previews []models.DesignPreview
	if err := r.DB.WithContext(ctx).
		Where("design_id = ?", designID).
		Order("position ASC").
		Find(&previews).Error; err != nil {
		return nil, err
	}
	return previews, nil
}

func (r *DesignRepo) AddPreview(ctx context.Context, preview *models.DesignPreview) error {
	return r.DB.WithContext(ctx).Create(preview).Error
}

func (r *DesignRepo) DeletePreview(ctx context.Context, designID, previewID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND design_id = ?", previewID, designID).
		Delete(&models.DesignPreview{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DesignRepo) DeleteAllPreviews(ctx context.Context, designID uint) error {
	return r.DB.WithContext(ctx).
		Where("design_id = ?", designID).
		Delete(&models.DesignPreview{}).Error
}

// ReorderPreviews rewrites the position column to match the given id order.
func (r *DesignRepo) ReorderPreviews(ctx context.Context, designID uint, previewIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range previewIDs {
			if err := tx.Model(&models.DesignPreview{}).
				Where("id = ? AND design_id = ?", id, designID).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
