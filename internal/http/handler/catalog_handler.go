package handler

import (
	"net/http"

	"github.com/sandeepkv93/product-catalog-service/internal/http/response"
	"github.com/sandeepkv93/product-catalog-service/internal/observability"
	"github.com/sandeepkv93/product-catalog-service/internal/service"
)

// CatalogHandler serves the read-side aggregates: category listing and
// inventory statistics.
type CatalogHandler struct {
	svc service.ProductService
}

func NewCatalogHandler(svc service.ProductService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.GetCategories(r.Context())
	if err != nil {
		observability.RecordCatalogStatsRequest(r.Context(), "categories", "error")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list categories", nil)
		return
	}
	observability.RecordCatalogStatsRequest(r.Context(), "categories", "success")
	response.JSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalValue, err := h.svc.GetTotalInventoryValue(ctx)
	if err != nil {
		observability.RecordCatalogStatsRequest(ctx, "stats", "error")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to compute inventory value", nil)
		return
	}
	activeCount, err := h.svc.GetActiveCount(ctx)
	if err != nil {
		observability.RecordCatalogStatsRequest(ctx, "stats", "error")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to count products", nil)
		return
	}
	countByCategory, err := h.svc.GetCountByCategory(ctx)
	if err != nil {
		observability.RecordCatalogStatsRequest(ctx, "stats", "error")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to group products", nil)
		return
	}

	observability.RecordCatalogStatsRequest(ctx, "stats", "success")
	response.JSON(w, r, http.StatusOK, map[string]any{
		"total_inventory_value": totalValue.StringFixed(2),
		"active_count":          activeCount,
		"count_by_category":     countByCategory,
	})
}
