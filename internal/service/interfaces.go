package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/product-catalog-service/internal/repository"
)

//go:generate mockgen -source=interfaces.go -destination=servicemock/product_service_mock.go -package=servicemock

// ProductService is the business-rule layer over the product repository. It
// consumes and returns the display representation (ProductView) and is the
// only writer of catalog invariants.
type ProductService interface {
	Create(ctx context.Context, view ProductView) (*ProductView, error)
	Update(ctx context.Context, id uint, view ProductView) (*ProductView, error)
	Delete(ctx context.Context, id uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*ProductView, error)
	GetAll(ctx context.Context) ([]ProductView, error)
	GetActive(ctx context.Context) ([]ProductView, error)
	ListActive(ctx context.Context, req repository.PageRequest) (repository.PageResult[ProductView], error)
	Search(ctx context.Context, term string) ([]ProductView, error)
	GetCategories(ctx context.Context) ([]string, error)
	ProductExists(ctx context.Context, id uint) (bool, error)
	ProductNameExists(ctx context.Context, name string, excludeID *uint) (bool, error)
	GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	GetActiveCount(ctx context.Context) (int64, error)
	GetCountByCategory(ctx context.Context) (map[string]int, error)
}
