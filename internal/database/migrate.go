package database

import (
	"github.com/sandeepkv93/product-catalog-service/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
	)
}
