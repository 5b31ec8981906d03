package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/product-catalog-service/internal/health"
	"github.com/sandeepkv93/product-catalog-service/internal/http/handler"
	"github.com/sandeepkv93/product-catalog-service/internal/http/middleware"
	"github.com/sandeepkv93/product-catalog-service/internal/http/response"
)

type Dependencies struct {
	ProductHandler    *handler.ProductHandler
	CatalogHandler    *handler.CatalogHandler
	CORSOrigins       []string
	APIRateLimitRPM   int
	GlobalRateLimiter GlobalRateLimiterFunc
	Readiness         *health.ProbeRunner
	EnableOTelHTTP    bool
}

type GlobalRateLimiterFunc func(http.Handler) http.Handler

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	if dep.GlobalRateLimiter != nil {
		r.Use(dep.GlobalRateLimiter)
	} else {
		r.Use(middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute).Middleware())
	}

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.JSON(w, r, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "checks": results})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", dep.ProductHandler.List)
			r.Get("/search", dep.ProductHandler.Search)
			r.Post("/", dep.ProductHandler.Create)
			r.Get("/{id}", dep.ProductHandler.GetByID)
			r.Put("/{id}", dep.ProductHandler.Update)
			r.Delete("/{id}", dep.ProductHandler.Delete)
		})
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", dep.CatalogHandler.Categories)
			r.Get("/stats", dep.CatalogHandler.Stats)
		})
	})

	if dep.EnableOTelHTTP {
		return otelhttp.NewHandler(r, "http.server")
	}
	return r
}
