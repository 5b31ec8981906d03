package repository

import "gorm.io/gorm"

// Common predicates shared by the product queries and the service layer's
// aggregate checks. Each returns a Scope so callers can compose them freely.

func Active() Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }
}

func WithID(id uint) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", id) }
}

func NameMatchesFold(name string) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("lower(name) = lower(?)", name) }
}

func ExcludeID(id uint) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("id <> ?", id) }
}

func OrderBy(column string) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Order(column) }
}
