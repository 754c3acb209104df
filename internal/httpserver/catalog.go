package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/events"
	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/search"
	"github.com/finegraphics/printstore/internal/service"
	"github.com/finegraphics/printstore/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

// SaveDesign upserts a catalog entry. The response carries the price the
// pricing rule computed, never the client's.
func (h *CatalogHTTP) SaveDesign(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.save_design")

	var req transport.SaveDesignRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("save_design_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	design, err := h.Svc.SaveDesign(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	eventType := "design_created"
	message := "Design saved successfully"
	if req.ID != nil {
		eventType = "design_updated"
		message = "Design updated successfully"
	}
	publish(c, l, h.Producer, events.TopicDesignEvents, design.Name, map[string]any{
		"type":      eventType,
		"design_id": design.ID,
		"name":      design.Name,
	})
	h.index(c, l, design)

	l.Info("save_design_success", "design_id", design.ID, "price", design.Price)
	return c.JSON(http.StatusOK, transport.SaveDesignResponse{
		Success:         true,
		Message:         message,
		DesignID:        design.ID,
		CalculatedPrice: design.Price,
	})
}

func (h *CatalogHTTP) GetDesign(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_design")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}

	design, err := h.Svc.GetDesign(ctx, uint(id))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "design": design})
}

func (h *CatalogHTTP) ListDesigns(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_designs")

	designs, err := h.Svc.ListDesigns(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "designs": designs})
}

func (h *CatalogHTTP) ListDesignsAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_designs_admin")

	designs, err := h.Svc.ListDesignsWithPreviews(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "designs": designs})
}

func (h *CatalogHTTP) DeleteDesign(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_design")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}

	if err := h.Svc.DeleteDesign(ctx, uint(id)); err != nil {
		return respondError(c, l, err)
	}

	publish(c, l, h.Producer, events.TopicDesignEvents, c.Param("id"), map[string]any{
		"type":      "design_deleted",
		"design_id": id,
	})
	if h.ES != nil {
		if err := search.RemoveDesign(ctx, h.ES, h.Index, uint(id)); err != nil {
			l.Error("search_remove_failed", "design_id", id, "error", err)
		}
	}

	l.Info("delete_design_success", "design_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Design deleted successfully"})
}

func (h *CatalogHTTP) ListPreviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_previews")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}

	previews, err := h.Svc.ListPreviews(ctx, uint(id))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "previews": previews})
}

func (h *CatalogHTTP) AddPreview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.add_preview")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}

	var img transport.DesignImage
	if err := c.Bind(&img); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	preview, err := h.Svc.AddPreview(ctx, uint(id), img)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "preview": preview})
}

func (h *CatalogHTTP) DeletePreview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_preview")

	designID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}
	previewID, err := strconv.Atoi(c.Param("previewID"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid preview id")
	}

	if err := h.Svc.DeletePreview(ctx, uint(designID), uint(previewID)); err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Preview deleted"})
}

func (h *CatalogHTTP) ReorderPreviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.reorder_previews")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid design id")
	}

	var req transport.ReorderPreviewsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ReorderPreviews(ctx, uint(id), req.PreviewIDs); err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Previews reordered"})
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	if h.ES == nil {
		return fail(c, http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return fail(c, http.StatusBadRequest, "query is required")
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	if from < 0 {
		from = 0
	}
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 20
	}

	total, docs, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_failed", "error", err)
		return fail(c, http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": total, "designs": docs})
}

// index mirrors the catalog write into the search index. A nil client
// means search is disabled; indexing failures never fail the write.
func (h *CatalogHTTP) index(c echo.Context, l *slog.Logger, design *models.Design) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexDesign(ctx, h.ES, h.Index, design); err != nil {
		l.Error("search_index_failed", "design_id", design.ID, "error", err)
	}
}
