package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-service/internal/app"
	"github.com/sandeepkv93/product-catalog-service/internal/config"
	"github.com/sandeepkv93/product-catalog-service/internal/database"
	"github.com/sandeepkv93/product-catalog-service/internal/health"
	"github.com/sandeepkv93/product-catalog-service/internal/http/handler"
	"github.com/sandeepkv93/product-catalog-service/internal/http/middleware"
	"github.com/sandeepkv93/product-catalog-service/internal/http/router"
	"github.com/sandeepkv93/product-catalog-service/internal/observability"
	"github.com/sandeepkv93/product-catalog-service/internal/repository"
	"github.com/sandeepkv93/product-catalog-service/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewProductRepository,
)

var ServiceSet = wire.NewSet(
	service.NewProductService,
	wire.Bind(new(service.ProductService), new(*service.ProductServiceImpl)),
)

var HTTPSet = wire.NewSet(
	handler.NewProductHandler,
	handler.NewCatalogHandler,
	provideGlobalRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	fmt.Println("migration complete")
	return nil
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideGlobalRateLimiter(cfg *config.Config) router.GlobalRateLimiterFunc {
	return middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute).Middleware()
}

func provideRouterDependencies(
	productHandler *handler.ProductHandler,
	catalogHandler *handler.CatalogHandler,
	globalRateLimiter router.GlobalRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		ProductHandler:    productHandler,
		CatalogHandler:    catalogHandler,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		GlobalRateLimiter: globalRateLimiter,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 1)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}
