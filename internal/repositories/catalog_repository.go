package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines the interface for product catalog and stock operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Product, error)
	GetProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	SetProductActive(ctx context.Context, id int64, active bool) error
	SetProductImage(ctx context.Context, id int64, image string) error
	DeleteProduct(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	// DecrementStock lowers stock only while enough remains. ErrStockConflict otherwise.
	DecrementStock(ctx context.Context, tx *gorm.DB, id int64, quantity int) error
	CountActiveProducts(ctx context.Context) (int64, error)
	GetLowStockProducts(ctx context.Context, threshold int) ([]models.LowStockProduct, error)
}

// ServiceRepository defines the interface for subscription services.
type ServiceRepository interface {
	CreateService(ctx context.Context, service *models.Service) error
	GetServiceByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Service, error)
	GetServices(ctx context.Context, activeOnly *bool) ([]models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	SetServiceActive(ctx context.Context, id int64, active bool) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return translateError(r.db.WithContext(ctx).Omit("Supplier").Create(product).Error)
}

func (r *productRepository) GetProductByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Product, error) {
	var product models.Product
	if err := conn(ctx, r.db, tx).First(&product, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepository) GetProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.ActiveOnly != nil {
		q = q.Where("active = ?", *filters.ActiveOnly)
	}
	if filters.Search != "" {
		p := likePattern(filters.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", p, p)
	}
	var products []models.Product
	if err := q.Order("name").Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("Name", "Description", "Price", "Stock", "SupplierID").
		Updates(product)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) SetProductActive(ctx context.Context, id int64, active bool) error {
	return r.updateColumn(ctx, id, "active", active)
}

func (r *productRepository) SetProductImage(ctx context.Context, id int64, image string) error {
	return r.updateColumn(ctx, id, "image", image)
}

func (r *productRepository) updateColumn(ctx context.Context, id int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct fails with ErrForeignKeyViolation while order or sale lines reference the product.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id int64, quantity int) error {
	res := conn(ctx, r.db, tx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *productRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("active = ?", true).Count(&count).Error
	return count, translateError(err)
}

func (r *productRepository) GetLowStockProducts(ctx context.Context, threshold int) ([]models.LowStockProduct, error) {
	var rows []models.LowStockProduct
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("id AS product_id, name, stock").
		Where("active = ? AND stock <= ?", true, threshold).
		Order("stock, name").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) CreateService(ctx context.Context, service *models.Service) error {
	return translateError(r.db.WithContext(ctx).Create(service).Error)
}

func (r *serviceRepository) GetServiceByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Service, error) {
	var service models.Service
	if err := conn(ctx, r.db, tx).First(&service, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &service, nil
}

func (r *serviceRepository) GetServices(ctx context.Context, activeOnly *bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})
	if activeOnly != nil {
		q = q.Where("active = ?", *activeOnly)
	}
	var services []models.Service
	if err := q.Order("name").Find(&services).Error; err != nil {
		return nil, translateError(err)
	}
	return services, nil
}

func (r *serviceRepository) UpdateService(ctx context.Context, service *models.Service) error {
	res := r.db.WithContext(ctx).Model(service).
		Select("Name", "Description", "MonthlyPrice").
		Updates(service)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *serviceRepository) SetServiceActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
