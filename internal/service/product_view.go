package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
)

// ProductView is the transient boundary representation of a product. Price
// travels as a display-formatted string with two fractional digits; the
// service owns the translation to and from the persisted entity.
type ProductView struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Price        string     `json:"price"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

func toView(p domain.Product) ProductView {
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price.StringFixed(2),
		Description:  p.Description,
		Category:     p.Category,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
	}
}

func toViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}

func parsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}
