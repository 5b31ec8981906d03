package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
	"github.com/sandeepkv93/product-catalog-service/internal/observability"
	"github.com/sandeepkv93/product-catalog-service/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateName   = errors.New("product name already exists")
	ErrIDMismatch      = errors.New("product id does not match request")

	ErrInvalidName        = errors.New("name must be between 3 and 100 characters")
	ErrInvalidPrice       = errors.New("price must be between 0.01 and 1000.00 with at most 2 decimal places")
	ErrInvalidDescription = errors.New("description must be between 3 and 500 characters")
	ErrInvalidCategory    = errors.New("category must be at most 50 characters")
)

var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.RequireFromString("1000")
)

type ProductServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo}
}

// Create inserts a new product after checking name uniqueness. A concurrent
// insert that slips past the check is caught by the store's unique index and
// reported as ErrDuplicateName as well.
func (s *ProductServiceImpl) Create(ctx context.Context, view ProductView) (*ProductView, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "create", outcome, time.Since(start)) }()

	fields, err := validateView(view)
	if err != nil {
		outcome = "bad_request"
		return nil, err
	}

	exists, err := s.repo.ProductNameExists(ctx, fields.name, nil)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if exists {
		outcome = "conflict"
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, fields.name)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:         fields.name,
		Price:        fields.price,
		Description:  fields.description,
		Category:     fields.category,
		CreatedAt:    now,
		LastModified: &now,
		IsActive:     true,
	}
	s.repo.Add(product)
	if _, err := s.repo.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			outcome = "conflict"
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, fields.name)
		}
		outcome = "error"
		return nil, err
	}

	created := toView(*product)
	return &created, nil
}

// Update overlays the view's fields onto the stored entity, preserving ID,
// CreatedAt, and the active flag. Reactivation is deliberately not a side
// effect of update; soft-deleted rows stay inactive.
func (s *ProductServiceImpl) Update(ctx context.Context, id uint, view ProductView) (*ProductView, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "update", outcome, time.Since(start)) }()

	if id != view.ID {
		outcome = "bad_request"
		return nil, fmt.Errorf("%w: path id %d, body id %d", ErrIDMismatch, id, view.ID)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if existing == nil {
		outcome = "not_found"
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}

	fields, err := validateView(view)
	if err != nil {
		outcome = "bad_request"
		return nil, err
	}

	taken, err := s.repo.ProductNameExists(ctx, fields.name, &id)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if taken {
		outcome = "conflict"
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, fields.name)
	}

	existing.Name = fields.name
	existing.Price = fields.price
	existing.Description = fields.description
	existing.Category = fields.category
	s.repo.Update(existing)
	if _, err := s.repo.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			outcome = "conflict"
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, fields.name)
		}
		outcome = "error"
		return nil, err
	}

	updated := toView(*existing)
	return &updated, nil
}

// Delete soft-deletes: the row survives with IsActive false. Deleting a
// product that is already inactive reports true with no further change, and
// deleting an unknown id reports false without error.
func (s *ProductServiceImpl) Delete(ctx context.Context, id uint) (bool, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "delete", outcome, time.Since(start)) }()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		outcome = "error"
		return false, err
	}
	if existing == nil {
		outcome = "not_found"
		return false, nil
	}
	if !existing.IsActive {
		return true, nil
	}

	existing.IsActive = false
	s.repo.Update(existing)
	if _, err := s.repo.SaveChanges(ctx); err != nil {
		outcome = "error"
		return false, err
	}
	return true, nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	view := toView(*product)
	return &view, nil
}

// GetAll lists every product, soft-deleted rows included. Administrative
// reads use it; the public listing goes through GetActive.
func (s *ProductServiceImpl) GetAll(ctx context.Context) ([]ProductView, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(products), nil
}

func (s *ProductServiceImpl) GetActive(ctx context.Context) ([]ProductView, error) {
	products, err := s.repo.GetActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(products), nil
}

func (s *ProductServiceImpl) ListActive(ctx context.Context, req repository.PageRequest) (repository.PageResult[ProductView], error) {
	page, err := s.repo.ListActivePaged(ctx, req)
	if err != nil {
		return repository.PageResult[ProductView]{}, err
	}
	return repository.PageResult[ProductView]{
		Items:      toViews(page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *ProductServiceImpl) Search(ctx context.Context, term string) ([]ProductView, error) {
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		return nil, err
	}
	return toViews(products), nil
}

// GetCategories lists distinct non-empty category values across all rows,
// soft-deleted ones included, sorted ascending.
func (s *ProductServiceImpl) GetCategories(ctx context.Context) ([]string, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *ProductServiceImpl) ProductExists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Any(ctx, repository.WithID(id))
}

func (s *ProductServiceImpl) ProductNameExists(ctx context.Context, name string, excludeID *uint) (bool, error) {
	return s.repo.ProductNameExists(ctx, name, excludeID)
}

// GetTotalInventoryValue sums prices over active products only.
func (s *ProductServiceImpl) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.repo.GetActiveProducts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total, nil
}

func (s *ProductServiceImpl) GetActiveCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, repository.Active())
}

// GetCountByCategory counts active products grouped by non-empty category.
// Categories with no active products are absent from the result.
func (s *ProductServiceImpl) GetCountByCategory(ctx context.Context) (map[string]int, error) {
	products, err := s.repo.GetActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		counts[p.Category]++
	}
	return counts, nil
}

type validatedFields struct {
	name        string
	price       decimal.Decimal
	description string
	category    string
}

func validateView(view ProductView) (validatedFields, error) {
	name := strings.TrimSpace(view.Name)
	if len(name) < 3 || len(name) > 100 {
		return validatedFields{}, ErrInvalidName
	}

	price, err := parsePrice(strings.TrimSpace(view.Price))
	if err != nil {
		return validatedFields{}, ErrInvalidPrice
	}
	if price.LessThan(minPrice) || price.GreaterThan(maxPrice) || !price.Equal(price.Round(2)) {
		return validatedFields{}, ErrInvalidPrice
	}

	description := strings.TrimSpace(view.Description)
	if description != "" && (len(description) < 3 || len(description) > 500) {
		return validatedFields{}, ErrInvalidDescription
	}

	category := strings.TrimSpace(view.Category)
	if len(category) > 50 {
		return validatedFields{}, ErrInvalidCategory
	}

	return validatedFields{name: name, price: price, description: description, category: category}, nil
}
