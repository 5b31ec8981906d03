package database

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
)

// Seed inserts a small demo catalog. Existing rows with the same name are
// left untouched, so seeding is safe to run repeatedly.
func Seed(db *gorm.DB) error {
	now := time.Now().UTC()
	products := []domain.Product{
		{Name: "Espresso Beans 1kg", Price: decimal.RequireFromString("18.50"), Description: "Dark roast arabica beans", Category: "Coffee", IsActive: true},
		{Name: "Pour Over Kettle", Price: decimal.RequireFromString("42.00"), Description: "Gooseneck kettle, 1L", Category: "Equipment", IsActive: true},
		{Name: "Ceramic Dripper", Price: decimal.RequireFromString("24.90"), Description: "Cone dripper, size 02", Category: "Equipment", IsActive: true},
		{Name: "Paper Filters 100pc", Price: decimal.RequireFromString("6.75"), Description: "Bleached cone filters", Category: "Accessories", IsActive: true},
	}
	for i := range products {
		products[i].CreatedAt = now
		ts := now
		products[i].LastModified = &ts
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&products).Error
}
