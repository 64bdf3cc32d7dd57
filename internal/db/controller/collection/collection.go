// Package collection provides the generic CRUD store of the portfolio collections.
//
// Ids are assigned as max(existing id, 0) + 1 inside the same transaction as the insert,
// so they are unique and increasing but not gap free after deletes.
package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-admin/folio-admin/internal/db/models"
)

const (
	columnID        = "id"
	columnCreatedAt = "created_at"
)

// Fields maps column names to new values of an update.
// Columns that are absent stay untouched.
type Fields map[string]any

// Collection stores records of type T in the table named by T.
type Collection[T any, PT interface {
	*T
	models.Record
}] struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns the collection of T on db.
func New[T any, PT interface {
	*T
	models.Record
}](db *gorm.DB) *Collection[T, PT] {
	return &Collection[T, PT]{db: db, now: time.Now}
}

// WithClock replaces the clock used to stamp created_at.
func (c *Collection[T, PT]) WithClock(now func() time.Time) *Collection[T, PT] {
	c.now = now
	return c
}

// Name returns the table name of the collection.
func (c *Collection[T, PT]) Name() string {
	return PT(new(T)).TableName()
}

// All returns every record in id order. The result is never nil.
func (c *Collection[T, PT]) All(ctx context.Context) ([]T, error) {
	return c.AllOrdered(ctx, columnID+" ASC")
}

// AllOrdered returns every record sorted by the given ORDER BY expression.
func (c *Collection[T, PT]) AllOrdered(ctx context.Context, order string) ([]T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	records := make([]T, 0)
	if err := c.db.WithContext(ctx).Order(order).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%s: list: %w", c.Name(), err)
	}

	return records, nil
}

// Get returns the record with the given id or ErrNotFound.
func (c *Collection[T, PT]) Get(ctx context.Context, id uint64) (*T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var record T

	err := c.db.WithContext(ctx).Where(columnID+" = ?", id).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%s: get %d: %w", c.Name(), id, err)
	}

	return &record, nil
}

// Find returns the first record whose column equals value or ErrNotFound.
func (c *Collection[T, PT]) Find(ctx context.Context, column string, value any) (*T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var record T

	err := c.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(columnID + " ASC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%s: find by %s: %w", c.Name(), column, err)
	}

	return &record, nil
}

// Count returns the number of records.
func (c *Collection[T, PT]) Count(ctx context.Context) (int64, error) {
	if c.db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := c.db.WithContext(ctx).Model(PT(new(T))).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: count: %w", c.Name(), err)
	}

	return n, nil
}

// Add inserts record, assigning its id and creation time, and returns the new id.
func (c *Collection[T, PT]) Add(ctx context.Context, record PT) (uint64, error) {
	if c.db == nil {
		return 0, ErrDBNil
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint64

		err := tx.Model(PT(new(T))).
			Select("COALESCE(MAX(" + columnID + "), 0)").
			Scan(&maxID).Error
		if err != nil {
			return err
		}

		record.SetID(maxID + 1)
		record.SetCreatedAt(c.now().UTC())

		return tx.Create(record).Error
	})
	if err != nil {
		return 0, fmt.Errorf("%s: add: %w", c.Name(), err)
	}

	return record.GetID(), nil
}

// Update overwrites the given fields of the record with id.
// id and created_at are never written. It reports false if there is no such record.
func (c *Collection[T, PT]) Update(ctx context.Context, id uint64, fields Fields) (bool, error) {
	if c.db == nil {
		return false, ErrDBNil
	}

	values := make(map[string]any, len(fields))

	for column, value := range fields {
		if column == columnID || column == columnCreatedAt {
			continue
		}

		values[column] = value
	}

	found := false

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(PT(new(T))).Where(columnID+" = ?", id).Count(&n).Error; err != nil {
			return err
		}

		if n == 0 {
			return nil
		}

		found = true

		if len(values) == 0 {
			return nil
		}

		return tx.Model(PT(new(T))).Where(columnID+" = ?", id).Updates(values).Error
	})
	if err != nil {
		return false, fmt.Errorf("%s: update %d: %w", c.Name(), id, err)
	}

	return found, nil
}

// Delete removes the record with id permanently. It reports false if nothing was removed.
func (c *Collection[T, PT]) Delete(ctx context.Context, id uint64) (bool, error) {
	if c.db == nil {
		return false, ErrDBNil
	}

	var affected int64

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(columnID+" = ?", id).Delete(PT(new(T)))
		affected = result.RowsAffected

		return result.Error
	})
	if err != nil {
		return false, fmt.Errorf("%s: delete %d: %w", c.Name(), id, err)
	}

	return affected > 0, nil
}
