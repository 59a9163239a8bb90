package database

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs a unit of work in one database transaction and re-runs the
// whole unit when it fails with a transient error.
type Transactor struct {
	db    *gorm.DB
	retry RetryPolicy
}

func NewTransactor(db *gorm.DB, retry RetryPolicy) *Transactor {
	return &Transactor{db: db, retry: retry}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// fn may be called more than once, so it must not keep state between calls.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.retry.Do(ctx, "transaction", IsTransient, func() error {
		return t.db.WithContext(ctx).Transaction(fn)
	})
}
