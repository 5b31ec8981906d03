package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/product-catalog-service/internal/http/response"
	"github.com/sandeepkv93/product-catalog-service/internal/observability"
	"github.com/sandeepkv93/product-catalog-service/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body service.ProductView
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	created, err := h.svc.Create(r.Context(), body)
	if err != nil {
		writeProductError(w, r, err, "failed to create product")
		return
	}

	observability.Audit(r, "product.create",
		"product_id", strconv.FormatUint(uint64(created.ID), 10),
		"name", created.Name,
	)
	response.JSON(w, r, http.StatusCreated, created)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	pageReq, err := parsePageRequest(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	res, err := h.svc.ListActive(r.Context(), pageReq)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list products", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, paginatedData(res.Items, res.Page, res.PageSize, res.Total, res.TotalPages))
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	observability.RecordSearchTermLength(r.Context(), len(term))

	views, err := h.svc.Search(r.Context(), term)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to search products", nil)
		return
	}
	if views == nil {
		views = []service.ProductView{}
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": views})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}

	product, err := h.svc.GetByID(r.Context(), productID)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	if product == nil {
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	var body service.ProductView
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	updated, err := h.svc.Update(r.Context(), productID, body)
	if err != nil {
		writeProductError(w, r, err, "failed to update product")
		return
	}

	observability.Audit(r, "product.update",
		"product_id", strconv.FormatUint(uint64(productID), 10),
		"name", updated.Name,
	)
	response.JSON(w, r, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), productID)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete product", nil)
		return
	}
	if !deleted {
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}

	observability.Audit(r, "product.delete",
		"product_id", strconv.FormatUint(uint64(productID), 10),
	)
	response.JSON(w, r, http.StatusOK, map[string]any{"deleted": true})
}

func writeProductError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDescription),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrIDMismatch):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, service.ErrProductNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	case errors.Is(err, service.ErrDuplicateName):
		response.Error(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", internalMsg, nil)
	}
}
