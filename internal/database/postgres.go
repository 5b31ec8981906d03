package database

import (
	"github.com/sandeepkv93/product-catalog-service/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres with gorm's error translation enabled so a
// unique-index violation surfaces as gorm.ErrDuplicatedKey instead of a raw
// driver error.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}
