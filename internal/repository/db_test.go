package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
)

var testDBSeq atomic.Int64

// newRepositoryDBForTest opens a private in-memory sqlite database with the
// same gorm configuration the service uses against postgres, most importantly
// TranslateError so unique-index violations surface as gorm.ErrDuplicatedKey.
func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate product: %v", err)
	}
	return db
}
