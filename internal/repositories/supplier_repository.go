package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier operations.
type SupplierRepository interface {
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error)
	GetSuppliers(ctx context.Context, filters models.SupplierFilters) ([]models.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	SetSupplierActive(ctx context.Context, id int64, active bool) error
	DeleteSupplier(ctx context.Context, id int64) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return translateError(r.db.WithContext(ctx).Create(supplier).Error)
}

func (r *supplierRepository) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &supplier, nil
}

func (r *supplierRepository) GetSuppliers(ctx context.Context, filters models.SupplierFilters) ([]models.Supplier, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Supplier{})
	if filters.ActiveOnly != nil {
		q = q.Where("active = ?", *filters.ActiveOnly)
	}
	if filters.Search != "" {
		p := likePattern(filters.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(contact, '')) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?", p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	var suppliers []models.Supplier
	if err := paginate(q, filters.Page, filters.PageSize).Order("name").Find(&suppliers).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return suppliers, total, nil
}

func (r *supplierRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	res := r.db.WithContext(ctx).Model(supplier).
		Select("Name", "Contact", "Phone", "Email", "Address").
		Updates(supplier)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepository) SetSupplierActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepository) DeleteSupplier(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
