package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// StaffRepository defines the interface for staff profile operations.
type StaffRepository interface {
	CreateStaff(ctx context.Context, tx *gorm.DB, staff *models.Staff) error
	GetStaffByID(ctx context.Context, id int64) (*models.Staff, error)
	GetStaffByAccountID(ctx context.Context, accountID int64) (*models.Staff, error)
	GetStaff(ctx context.Context, filters models.PeopleFilters) ([]models.Staff, int64, error)
	UpdateStaff(ctx context.Context, tx *gorm.DB, staff *models.Staff) error
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateStaff(ctx context.Context, tx *gorm.DB, staff *models.Staff) error {
	return translateError(conn(ctx, r.db, tx).Omit("Account").Create(staff).Error)
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Preload("Account").First(&staff, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &staff, nil
}

func (r *staffRepository) GetStaffByAccountID(ctx context.Context, accountID int64) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&staff).Error; err != nil {
		return nil, translateError(err)
	}
	return &staff, nil
}

func (r *staffRepository) GetStaff(ctx context.Context, filters models.PeopleFilters) ([]models.Staff, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Staff{}).
		Joins("JOIN accounts ON accounts.id = staff.account_id")
	if filters.Search != "" {
		p := likePattern(filters.Search)
		q = q.Where("LOWER(staff.first_name) LIKE ? OR LOWER(staff.last_name) LIKE ? OR LOWER(COALESCE(staff.position, '')) LIKE ? OR accounts.email LIKE ?", p, p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var staff []models.Staff
	err := paginate(q, filters.Page, filters.PageSize).
		Select("staff.*").
		Preload("Account").
		Order("staff.last_name, staff.first_name").
		Find(&staff).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return staff, total, nil
}

func (r *staffRepository) UpdateStaff(ctx context.Context, tx *gorm.DB, staff *models.Staff) error {
	res := conn(ctx, r.db, tx).Model(staff).
		Select("FirstName", "LastName", "SecondLastName", "Position", "HireDate").
		Updates(staff)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
