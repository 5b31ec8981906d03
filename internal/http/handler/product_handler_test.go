package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/sandeepkv93/product-catalog-service/internal/repository"
	"github.com/sandeepkv93/product-catalog-service/internal/service"
	"github.com/sandeepkv93/product-catalog-service/internal/service/servicemock"
)

func newProductTestRouter(svc service.ProductService) http.Handler {
	h := NewProductHandler(svc)
	r := chi.NewRouter()
	r.Post("/products", h.Create)
	r.Get("/products", h.List)
	r.Get("/products/search", h.Search)
	r.Get("/products/{id}", h.GetByID)
	r.Put("/products/{id}", h.Update)
	r.Delete("/products/{id}", h.Delete)
	return r
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestCreateProductHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	created := service.ProductView{ID: 1, Name: "Desk Lamp", Price: "19.99", IsActive: true}
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&created, nil)

	body := `{"name":"Desk Lamp","price":"19.99","category":"lighting"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var got service.ProductView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != 1 || got.Price != "19.99" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateProductHandlerRejectsMalformedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if env := decodeError(t, rec); env.Error.Code != "BAD_REQUEST" {
		t.Fatalf("code = %q, want BAD_REQUEST", env.Error.Code)
	}
}

func TestCreateProductHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"validation", service.ErrInvalidPrice, http.StatusBadRequest, "BAD_REQUEST"},
		{"duplicate", service.ErrDuplicateName, http.StatusConflict, "CONFLICT"},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := servicemock.NewMockProductService(ctrl)
			router := newProductTestRouter(svc)

			svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.svcErr)

			body := `{"name":"Desk Lamp","price":"19.99"}`
			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if env := decodeError(t, rec); env.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", env.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	view := service.ProductView{ID: 7, Name: "Desk Lamp", Price: "19.99", IsActive: true}
	svc.EXPECT().GetByID(gomock.Any(), uint(7)).Return(&view, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got service.ProductView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != 7 || got.Name != "Desk Lamp" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestGetProductByIDHandlerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	svc.EXPECT().GetByID(gomock.Any(), uint(42)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetProductByIDHandlerRejectsBadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	for _, raw := range []string{"abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/products/"+raw, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status = %d, want %d", raw, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestUpdateProductHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"id mismatch", service.ErrIDMismatch, http.StatusBadRequest},
		{"not found", service.ErrProductNotFound, http.StatusNotFound},
		{"duplicate", service.ErrDuplicateName, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := servicemock.NewMockProductService(ctrl)
			router := newProductTestRouter(svc)

			svc.EXPECT().Update(gomock.Any(), uint(5), gomock.Any()).Return(nil, tc.svcErr)

			body := `{"id":5,"name":"Desk Lamp","price":"19.99"}`
			req := httptest.NewRequest(http.MethodPut, "/products/5", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestDeleteProductHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	svc.EXPECT().Delete(gomock.Any(), uint(5)).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !got["deleted"] {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestDeleteProductHandlerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	svc.EXPECT().Delete(gomock.Any(), uint(99)).Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListProductsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	page := repository.PageResult[service.ProductView]{
		Items:      []service.ProductView{{ID: 1, Name: "Desk Lamp", Price: "19.99"}},
		Page:       2,
		PageSize:   10,
		Total:      11,
		TotalPages: 2,
	}
	svc.EXPECT().ListActive(gomock.Any(), repository.PageRequest{Page: 2, PageSize: 10}).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got struct {
		Items      []service.ProductView `json:"items"`
		Pagination struct {
			Page       int   `json:"page"`
			PageSize   int   `json:"page_size"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Items) != 1 || got.Pagination.Total != 11 || got.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestListProductsHandlerRejectsBadPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	for _, query := range []string{"?page=0", "?page=abc", "?page_size=0", "?page_size=9999"} {
		req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want %d", query, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestSearchProductsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	views := []service.ProductView{{ID: 1, Name: "Desk Lamp", Price: "19.99"}}
	svc.EXPECT().Search(gomock.Any(), "lamp").Return(views, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/search?q=lamp", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got struct {
		Items []service.ProductView `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Desk Lamp" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestSearchProductsHandlerEmptyResultIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemock.NewMockProductService(ctrl)
	router := newProductTestRouter(svc)

	svc.EXPECT().Search(gomock.Any(), "nothing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/search?q=nothing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", rec.Body.String())
	}
}
