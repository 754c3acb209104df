package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

func newCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t, &models.Design{}, &models.DesignPreview{})
	return &CatalogService{Repo: &repo.DesignRepo{DB: db}}, db
}

func TestSaveDesignComputesPrice(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Logo Design",
		Width:       ptr(12),
		Height:      ptr(8),
		Description: "company logo",
		Tags:        "logo,branding",
	})
	require.NoError(t, err)
	require.Equal(t, 960.0, design.Price)
	require.Equal(t, 12, design.Width)
	require.Equal(t, 8, design.Height)
}

func TestSaveDesignValidation(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	cases := []transport.SaveDesignRequest{
		{Width: ptr(10), Height: ptr(10), Description: "d"},                   // no name
		{Name: "x", Width: ptr(10), Height: ptr(10)},                          // no description
		{Name: "x", Description: "d"},                                         // no dimensions
		{Name: "x", Width: ptr(0), Height: ptr(10), Description: "d"},         // zero width
		{Name: "x", Width: ptr(10), Height: ptr(-3), Description: "d"},        // negative height
		{Name: "x", Width: ptr(10), Description: "d"},                         // height missing
		{Name: "x", Width: ptr(10), Height: ptr(10), Description: "d", Images: []transport.DesignImage{{ImageData: "a"}, {ImageData: "b"}}}, // two images
	}

	for _, req := range cases {
		_, err := svc.SaveDesign(ctx, req)
		require.ErrorIs(t, err, ErrValidation)
	}

	// Nothing persisted on any failed write.
	var count int64
	require.NoError(t, db.Model(&models.Design{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSaveDesignIgnoresClientPrice(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	// The request DTO has no price field at all; the computed value is the
	// only one that can ever land in the store.
	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Sticker",
		Width:       ptr(5),
		Height:      ptr(5),
		Description: "die-cut sticker",
	})
	require.NoError(t, err)
	require.Equal(t, 250.0, design.Price)
}

func TestSaveDesignDuplicateNameConflicts(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	req := transport.SaveDesignRequest{
		Name:        "Logo Design",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "company logo",
	}
	_, err := svc.SaveDesign(ctx, req)
	require.NoError(t, err)

	_, err = svc.SaveDesign(ctx, req)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUpdateDesignRecomputesPrice(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
		Images:      []transport.DesignImage{{ImageData: "aGVsbG8=", ImageType: "image/png"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, design.Price)

	updated, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		ID:          &design.ID,
		Name:        "Banner",
		Width:       ptr(20),
		Height:      ptr(15),
		Description: "vinyl banner",
	})
	require.NoError(t, err)
	require.Equal(t, 3000.0, updated.Price)

	// The stored image survives an update that carries none.
	require.Equal(t, "aGVsbG8=", updated.ImageData)
	require.Equal(t, "image/png", updated.ImageType)
}

func TestUpdateDesignWithoutDimensionsKeepsPrice(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
	})
	require.NoError(t, err)

	updated, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		ID:          &design.ID,
		Name:        "Banner v2",
		Description: "bigger better banner",
		Tags:        "banner",
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, updated.Price)
	require.Equal(t, "Banner v2", updated.Name)
}

func TestUpdateDesignReplacesImage(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
		Images:      []transport.DesignImage{{ImageData: "b2xk", ImageType: "image/png"}},
	})
	require.NoError(t, err)

	updated, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		ID:          &design.ID,
		Name:        "Banner",
		Description: "vinyl banner",
		Images:      []transport.DesignImage{{ImageData: "bmV3", ImageType: "image/jpeg"}},
	})
	require.NoError(t, err)
	require.Equal(t, "bmV3", updated.ImageData)
	require.Equal(t, "image/jpeg", updated.ImageType)
}

func TestUpdateDesignNotFound(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	missing := uint(42)
	_, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		ID:          &missing,
		Name:        "Ghost",
		Description: "does not exist",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDesignDeleteAllPreviews(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
	})
	require.NoError(t, err)

	_, err = svc.AddPreview(ctx, design.ID, transport.DesignImage{ImageData: "cDE=", ImageType: "image/png"})
	require.NoError(t, err)
	_, err = svc.AddPreview(ctx, design.ID, transport.DesignImage{ImageData: "cDI=", ImageType: "image/png"})
	require.NoError(t, err)

	_, err = svc.SaveDesign(ctx, transport.SaveDesignRequest{
		ID:                &design.ID,
		Name:              "Banner",
		Description:       "vinyl banner",
		DeleteAllPreviews: true,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.DesignPreview{}).Where("design_id = ?", design.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteDesignCascadesPreviews(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
	})
	require.NoError(t, err)

	_, err = svc.AddPreview(ctx, design.ID, transport.DesignImage{ImageData: "cDE=", ImageType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDesign(ctx, design.ID))

	var count int64
	require.NoError(t, db.Model(&models.DesignPreview{}).Where("design_id = ?", design.ID).Count(&count).Error)
	require.Zero(t, count)

	require.ErrorIs(t, svc.DeleteDesign(ctx, design.ID), ErrNotFound)
}

func TestPreviewOrdering(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	design, err := svc.SaveDesign(ctx, transport.SaveDesignRequest{
		Name:        "Banner",
		Width:       ptr(10),
		Height:      ptr(10),
		Description: "vinyl banner",
	})
	require.NoError(t, err)

	first, err := svc.AddPreview(ctx, design.ID, transport.DesignImage{ImageData: "cDE=", ImageType: "image/png"})
	require.NoError(t, err)
	second, err := svc.AddPreview(ctx, design.ID, transport.DesignImage{ImageData: "cDI=", ImageType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, svc.ReorderPreviews(ctx, design.ID, []uint{second.ID, first.ID}))

	previews, err := svc.ListPreviews(ctx, design.ID)
	require.NoError(t, err)
	require.Len(t, previews, 2)
	require.Equal(t, second.ID, previews[0].ID)
	require.Equal(t, first.ID, previews[1].ID)
}
