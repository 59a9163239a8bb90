package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository defines the interface for point-of-sale records.
type SaleRepository interface {
	CreateSale(ctx context.Context, tx *gorm.DB, sale *models.Sale) error
	GetSaleByID(ctx context.Context, id int64) (*models.Sale, error)
	GetSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int64, error)
	GetRecentSales(ctx context.Context, limit int) ([]models.Sale, error)
	// SumSoldAmount adds persisted line prices, never live catalog prices.
	SumSoldAmount(ctx context.Context) (decimal.Decimal, error)
	GetProductSales(ctx context.Context) ([]models.ProductSalesRow, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	return translateError(conn(ctx, r.db, tx).Omit("Customer", "Staff", "Lines.Product", "Lines.Service").Create(sale).Error)
}

func (r *saleRepository) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sale_lines.id") }).
		First(&sale, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

func (r *saleRepository) GetSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Sale{})
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.StaffID != nil {
		q = q.Where("staff_id = ?", *filters.StaffID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	var sales []models.Sale
	if err := paginate(q, filters.Page, filters.PageSize).Preload("Lines").Order("sold_at DESC, id DESC").Find(&sales).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return sales, total, nil
}

func (r *saleRepository) GetRecentSales(ctx context.Context, limit int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).Preload("Lines").Order("sold_at DESC, id DESC").Limit(limit).Find(&sales).Error
	if err != nil {
		return nil, translateError(err)
	}
	return sales, nil
}

func (r *saleRepository) SumSoldAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.SaleLine{}).
		Select("COALESCE(SUM(unit_price * quantity), 0)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return sum, nil
}

func (r *saleRepository) GetProductSales(ctx context.Context) ([]models.ProductSalesRow, error) {
	var rows []models.ProductSalesRow
	err := r.db.WithContext(ctx).Model(&models.SaleLine{}).
		Select("product_id, MAX(item_name) AS name, SUM(quantity) AS quantity_sold, SUM(unit_price * quantity) AS revenue").
		Where("product_id IS NOT NULL").
		Group("product_id").
		Order("quantity_sold DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}
