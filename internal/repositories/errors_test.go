package repositories

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(&pq.Error{Code: "23505", Constraint: "idx_accounts_email"}), ErrDuplicateKey)
	assert.ErrorIs(t, translateError(&pq.Error{Code: "23503"}), ErrForeignKeyViolation)
	assert.ErrorIs(t, translateError(&pq.Error{Code: "23514", Constraint: "chk_products_stock"}), ErrStockConflict)

	wrapped := translateError(driver.ErrBadConn)
	assert.ErrorIs(t, wrapped, ErrDatabaseError)
	assert.ErrorIs(t, wrapped, driver.ErrBadConn)

	assert.ErrorIs(t, translateError(errors.New("boom")), ErrDatabaseError)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%casco%", likePattern(" Casco "))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}
