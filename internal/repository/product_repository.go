package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
)

// ProductRepository specializes the generic repository for products: active
// filtering, category and price-range queries, substring search, and
// audit-timestamp stamping on staged mutations.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Find(ctx context.Context, scopes ...Scope) ([]domain.Product, error)
	SingleOrDefault(ctx context.Context, scopes ...Scope) (*domain.Product, error)
	FirstOrDefault(ctx context.Context, scopes ...Scope) (*domain.Product, error)
	Add(product *domain.Product)
	AddRange(products []*domain.Product)
	Update(product *domain.Product)
	Remove(product *domain.Product)
	RemoveRange(products []*domain.Product)
	Any(ctx context.Context, scopes ...Scope) (bool, error)
	Count(ctx context.Context, scopes ...Scope) (int64, error)
	SaveChanges(ctx context.Context) (int64, error)

	GetActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error)
	GetProductWithDetails(ctx context.Context, id uint) (*domain.Product, error)
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	ProductNameExists(ctx context.Context, name string, excludeID *uint) (bool, error)
	ListActivePaged(ctx context.Context, req PageRequest) (PageResult[domain.Product], error)
}

// GormProductRepository wraps the generic repository by composition and
// shadows Add/AddRange/Update to stamp audit timestamps before delegating.
type GormProductRepository struct {
	*Repository[domain.Product]
	now func() time.Time
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{
		Repository: NewRepository[domain.Product](db, "product"),
		now:        time.Now,
	}
}

func (r *GormProductRepository) GetActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return r.Find(ctx, Active(), OrderBy("name asc"))
}

func (r *GormProductRepository) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	byCategory := func(db *gorm.DB) *gorm.DB { return db.Where("category = ?", category) }
	return r.Find(ctx, Active(), byCategory, OrderBy("name asc"))
}

// GetProductsInPriceRange includes products priced exactly at either bound.
func (r *GormProductRepository) GetProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error) {
	inRange := func(db *gorm.DB) *gorm.DB {
		return db.Where("price >= ? AND price <= ?", min, max)
	}
	return r.Find(ctx, Active(), inRange, OrderBy("price asc"))
}

func (r *GormProductRepository) GetProductWithDetails(ctx context.Context, id uint) (*domain.Product, error) {
	return r.FirstOrDefault(ctx, WithID(id))
}

// SearchProducts treats a blank term as "list active". A non-blank term is
// matched case-insensitively as a substring of name, description, or
// category, over active rows only.
func (r *GormProductRepository) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.GetActiveProducts(ctx)
	}
	pattern := "%" + strings.ToLower(term) + "%"
	matches := func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return r.Find(ctx, Active(), matches, OrderBy("name asc"))
}

// ProductNameExists checks name uniqueness case-insensitively across all
// rows, soft-deleted ones included. With excludeID set, that row never
// counts as a match, so an update can keep its own current name.
func (r *GormProductRepository) ProductNameExists(ctx context.Context, name string, excludeID *uint) (bool, error) {
	scopes := []Scope{NameMatchesFold(name)}
	if excludeID != nil {
		scopes = append(scopes, ExcludeID(*excludeID))
	}
	return r.Any(ctx, scopes...)
}

func (r *GormProductRepository) ListActivePaged(ctx context.Context, req PageRequest) (PageResult[domain.Product], error) {
	normalized := normalizePageRequest(req)
	result := PageResult[domain.Product]{Page: normalized.Page, PageSize: normalized.PageSize}

	total, err := r.Count(ctx, Active())
	if err != nil {
		return PageResult[domain.Product]{}, err
	}
	result.Total = total

	offset := (normalized.Page - 1) * normalized.PageSize
	paged := func(db *gorm.DB) *gorm.DB { return db.Offset(offset).Limit(normalized.PageSize) }
	items, err := r.Find(ctx, Active(), OrderBy("name asc"), paged)
	if err != nil {
		return PageResult[domain.Product]{}, err
	}
	result.Items = items
	result.TotalPages = calcTotalPages(total, normalized.PageSize)
	return result, nil
}

// Add stamps CreatedAt (when unset) and LastModified before staging the
// insert with the generic repository.
func (r *GormProductRepository) Add(product *domain.Product) {
	now := r.now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	ts := now
	product.LastModified = &ts
	r.Repository.Add(product)
}

func (r *GormProductRepository) AddRange(products []*domain.Product) {
	now := r.now().UTC()
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		ts := now
		p.LastModified = &ts
	}
	r.Repository.AddRange(products)
}

// Update stamps LastModified before staging the save.
func (r *GormProductRepository) Update(product *domain.Product) {
	ts := r.now().UTC()
	product.LastModified = &ts
	r.Repository.Update(product)
}
