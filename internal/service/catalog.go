package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/pricing"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

type CatalogService struct {
	Repo *repo.DesignRepo
}

// SaveDesign creates or updates a catalog entry. The stored price is always
// derived from the dimensions; a client-supplied price is never read. At
// most one primary image is accepted — extra images are a caller error, not
// a silent discard.
func (s *CatalogService) SaveDesign(ctx context.Context, req transport.SaveDesignRequest) (*models.Design, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(req.Images) > 1 {
		return nil, fmt.Errorf("%w: only one primary image is supported", ErrValidation)
	}

	if req.ID == nil {
		return s.createDesign(ctx, req)
	}
	return s.updateDesign(ctx, req)
}

func (s *CatalogService) createDesign(ctx context.Context, req transport.SaveDesignRequest) (*models.Design, error) {
	if req.Width == nil || req.Height == nil {
		return nil, fmt.Errorf("%w: width and height are required", ErrValidation)
	}
	price, err := pricing.ComputePrice(*req.Width, *req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	design := models.Design{
		Name:        req.Name,
		Width:       *req.Width,
		Height:      *req.Height,
		Price:       price,
		Tags:        req.Tags,
		Description: req.Description,
	}
	if len(req.Images) == 1 {
		design.ImageData = req.Images[0].ImageData
		design.ImageType = req.Images[0].ImageType
	}

	if err := s.Repo.Create(ctx, &design); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: design name already exists", ErrConflict)
		}
		return nil, err
	}
	return &design, nil
}

func (s *CatalogService) updateDesign(ctx context.Context, req transport.SaveDesignRequest) (*models.Design, error) {
	design, err := s.Repo.Get(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: design %d", ErrNotFound, *req.ID)
		}
		return nil, err
	}

	design.Name = req.Name
	design.Tags = req.Tags
	design.Description = req.Description

	// Price is recomputed whenever the update carries dimensions.
	if req.Width != nil || req.Height != nil {
		if req.Width == nil || req.Height == nil {
			return nil, fmt.Errorf("%w: width and height must be supplied together", ErrValidation)
		}
		price, err := pricing.ComputePrice(*req.Width, *req.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		design.Width = *req.Width
		design.Height = *req.Height
		design.Price = price
	}

	// A new image replaces the stored one; no image keeps it.
	if len(req.Images) == 1 {
		design.ImageData = req.Images[0].ImageData
		design.ImageType = req.Images[0].ImageType
	}

	if err := s.Repo.Save(ctx, design); err != nil {
		return nil, err
	}

	// Independent side effect, orthogonal to the field update.
	if req.DeleteAllPreviews {
		if err := s.Repo.DeleteAllPreviews(ctx, design.ID); err != nil {
			return nil, err
		}
	}
	return design, nil
}

func (s *CatalogService) GetDesign(ctx context.Context, id uint) (*models.Design, error) {
	design, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: design %d", ErrNotFound, id)
		}
		return nil, err
	}
	return design, nil
}

func (s *CatalogService) ListDesigns(ctx context.Context) ([]models.Design, error) {
	return s.Repo.List(ctx)
}

func (s *CatalogService) ListDesignsWithPreviews(ctx context.Context) ([]models.Design, error) {
	return s.Repo.ListWithPreviews(ctx)
}

// DeleteDesign removes the entry; its previews cascade with it.
func (s *CatalogService) DeleteDesign(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: design %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListPreviews(ctx context.Context, designID uint) ([]models.DesignPreview, error) {
	if _, err := s.GetDesign(ctx, designID); err != nil {
		return nil, err
	}
	return s.Repo.ListPreviews(ctx, designID)
}

func (s *CatalogService) AddPreview(ctx context.Context, designID uint, img transport.DesignImage) (*models.DesignPreview, error) {
	if img.ImageData == "" {
		return nil, fmt.Errorf("%w: image_data is required", ErrValidation)
	}
	if _, err := s.GetDesign(ctx, designID); err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListPreviews(ctx, designID)
	if err != nil {
		return nil, err
	}
	preview := models.DesignPreview{
		DesignID:  designID,
		ImageData: img.ImageData,
		ImageType: img.ImageType,
		Position:  len(existing),
	}
	if err := s.Repo.AddPreview(ctx, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

func (s *CatalogService) DeletePreview(ctx context.Context, designID, previewID uint) error {
	if err := s.Repo.DeletePreview(ctx, designID, previewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: preview %d", ErrNotFound, previewID)
		}
		return err
	}
	return nil
}

func (s *CatalogService) ReorderPreviews(ctx context.Context, designID uint, previewIDs []uint) error {
	if len(previewIDs) == 0 {
		return fmt.Errorf("%w: preview_ids is required", ErrValidation)
	}
	if _, err := s.GetDesign(ctx, designID); err != nil {
		return err
	}
	return s.Repo.ReorderPreviews(ctx, designID, previewIDs)
}
