package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// ErrMultipleResults is returned by SingleOrDefault when a query that must
// match at most one row matches several. Under the catalog's uniqueness
// invariants this indicates a data integrity problem.
var ErrMultipleResults = errors.New("query matched more than one row")

// Scope is a composable query predicate in gorm's scope form.
type Scope func(*gorm.DB) *gorm.DB

type mutation func(tx *gorm.DB) (int64, error)

// Repository is a generic data-access surface over one entity type. Reads
// execute immediately; Add/Update/Remove only stage work, and SaveChanges
// applies everything staged in a single transaction.
//
// Like an ORM unit of work, a Repository instance is meant to serve one
// logical operation at a time. The mutex only protects the stage queue's
// integrity; it does not serialize whole stage-then-commit sequences.
type Repository[T any] struct {
	db     *gorm.DB
	entity string

	mu      sync.Mutex
	pending []mutation
}

func NewRepository[T any](db *gorm.DB, entity string) *Repository[T] {
	return &Repository[T]{db: db, entity: entity}
}

// DB exposes the underlying handle for entity-specific repositories layered
// on top of this one.
func (r *Repository[T]) DB() *gorm.DB { return r.db }

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, r.fail("get_all", err)
	}
	return out, nil
}

// GetByID returns nil without error when no row matches.
func (r *Repository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var out T
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("get_by_id", err)
	}
	return &out, nil
}

func (r *Repository[T]) Find(ctx context.Context, scopes ...Scope) ([]T, error) {
	var out []T
	if err := r.query(ctx, scopes).Find(&out).Error; err != nil {
		return nil, r.fail("find", err)
	}
	return out, nil
}

// SingleOrDefault returns the only match, nil when there is none, and
// ErrMultipleResults when the predicate matches more than one row.
func (r *Repository[T]) SingleOrDefault(ctx context.Context, scopes ...Scope) (*T, error) {
	var out []T
	if err := r.query(ctx, scopes).Limit(2).Find(&out).Error; err != nil {
		return nil, r.fail("single_or_default", err)
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return &out[0], nil
	default:
		return nil, fmt.Errorf("%s single_or_default: %w", r.entity, ErrMultipleResults)
	}
}

// FirstOrDefault returns the first match under the query's ordering, or nil
// when nothing matches.
func (r *Repository[T]) FirstOrDefault(ctx context.Context, scopes ...Scope) (*T, error) {
	var out []T
	if err := r.query(ctx, scopes).Limit(1).Find(&out).Error; err != nil {
		return nil, r.fail("first_or_default", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Add stages an insert. The entity's generated ID is populated once
// SaveChanges commits.
func (r *Repository[T]) Add(entity *T) {
	r.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(entity)
		return res.RowsAffected, res.Error
	})
}

func (r *Repository[T]) AddRange(entities []*T) {
	r.stage(func(tx *gorm.DB) (int64, error) {
		var affected int64
		for _, e := range entities {
			res := tx.Create(e)
			if res.Error != nil {
				return affected, res.Error
			}
			affected += res.RowsAffected
		}
		return affected, nil
	})
}

// Update stages a full-row save keyed by the entity's primary key.
func (r *Repository[T]) Update(entity *T) {
	r.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Save(entity)
		return res.RowsAffected, res.Error
	})
}

// Remove stages a physical delete. The catalog's soft-delete flow never uses
// it for products; it exists for entities whose rows genuinely go away.
func (r *Repository[T]) Remove(entity *T) {
	r.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(entity)
		return res.RowsAffected, res.Error
	})
}

func (r *Repository[T]) RemoveRange(entities []*T) {
	r.stage(func(tx *gorm.DB) (int64, error) {
		var affected int64
		for _, e := range entities {
			res := tx.Delete(e)
			if res.Error != nil {
				return affected, res.Error
			}
			affected += res.RowsAffected
		}
		return affected, nil
	})
}

func (r *Repository[T]) Any(ctx context.Context, scopes ...Scope) (bool, error) {
	n, err := r.Count(ctx, scopes...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	if err := r.query(ctx, scopes).Count(&n).Error; err != nil {
		return 0, r.fail("count", err)
	}
	return n, nil
}

// SaveChanges applies all staged mutations inside one transaction and
// returns the number of rows affected. The stage queue is drained whether or
// not the commit succeeds, so a failed batch is never silently replayed; on
// failure the store is left untouched and the error is propagated with
// gorm's translation applied (a unique-index violation surfaces as
// gorm.ErrDuplicatedKey).
func (r *Repository[T]) SaveChanges(ctx context.Context) (int64, error) {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, apply := range pending {
			n, err := apply(tx)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, r.fail("save_changes", err)
	}
	recordRepositoryOperation(ctx, r.entity, "save_changes", "success")
	return affected, nil
}

func (r *Repository[T]) stage(m mutation) {
	r.mu.Lock()
	r.pending = append(r.pending, m)
	r.mu.Unlock()
}

func (r *Repository[T]) query(ctx context.Context, scopes []Scope) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	for _, s := range scopes {
		q = s(q)
	}
	return q
}

func (r *Repository[T]) fail(op string, err error) error {
	recordRepositoryOperation(context.Background(), r.entity, op, "error")
	return fmt.Errorf("%s %s: %w", r.entity, op, err)
}
