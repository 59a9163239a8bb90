package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// The driver error stays in the chain so transient failures can be recognized.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKeyViolation is returned when a row is still referenced or references nothing.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")

	// ErrStockConflict is returned when a conditional stock decrement matched no row.
	ErrStockConflict = errors.New("stock changed concurrently or is insufficient")
)

// Transactor runs fn inside one transaction. Repository write methods accept the
// *gorm.DB handed to fn; passing nil uses the repository's own connection.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func conn(ctx context.Context, base, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

// translateError maps gorm and PostgreSQL errors onto the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pqErr.Constraint)
		case "23514":
			if strings.Contains(pqErr.Constraint, "stock") {
				return fmt.Errorf("%w: %s", ErrStockConflict, pqErr.Constraint)
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrDatabaseError, err)
}

func likePattern(term string) string {
	term = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(term))
	return "%" + strings.ToLower(term) + "%"
}

func paginate(q *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return q
	}
	if page <= 0 {
		page = 1
	}
	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}
