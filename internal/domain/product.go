package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the persisted catalog entity. Rows are never physically removed
// by the application: delete flips IsActive and the row keeps occupying its
// name in the unique index.
//
// IsActive deliberately carries no column default. gorm drops zero-value
// fields from inserts when the column has a default, which would turn a
// staged inactive row active on commit. Every writer sets the flag
// explicitly instead.
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Description  string          `gorm:"size:500" json:"description"`
	Category     string          `gorm:"size:50;index" json:"category"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified *time.Time      `json:"last_modified"`
	IsActive     bool            `gorm:"not null;index" json:"is_active"`
}
