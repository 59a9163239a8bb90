package repositories

import (
	"context"
	"strings"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for login account operations.
type AccountRepository interface {
	CreateAccount(ctx context.Context, tx *gorm.DB, account *models.Account) error
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailInUse(ctx context.Context, email string, excludeAccountID int64) (bool, error)
	UpdateEmail(ctx context.Context, tx *gorm.DB, accountID int64, email string) error
	SetActive(ctx context.Context, tx *gorm.DB, accountID int64, active bool) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	return translateError(conn(ctx, r.db, tx).Create(account).Error)
}

func (r *accountRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// EmailInUse reports whether another account already uses email.
func (r *accountRepository) EmailInUse(ctx context.Context, email string, excludeAccountID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeAccountID > 0 {
		q = q.Where("id <> ?", excludeAccountID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *accountRepository) UpdateEmail(ctx context.Context, tx *gorm.DB, accountID int64, email string) error {
	res := conn(ctx, r.db, tx).Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("email", strings.ToLower(strings.TrimSpace(email)))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *accountRepository) SetActive(ctx context.Context, tx *gorm.DB, accountID int64, active bool) error {
	res := conn(ctx, r.db, tx).Model(&models.Account{}).Where("id = ?", accountID).Update("active", active)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
