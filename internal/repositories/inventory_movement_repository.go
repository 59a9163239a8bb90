package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// StockMovementRepository defines the interface for the stock ledger.
type StockMovementRepository interface {
	CreateStockMovement(ctx context.Context, tx *gorm.DB, movement *models.StockMovement) error
	GetStockMovements(ctx context.Context, filters models.StockMovementFilters) ([]models.StockMovement, error)
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateStockMovement(ctx context.Context, tx *gorm.DB, movement *models.StockMovement) error {
	return translateError(conn(ctx, r.db, tx).Omit("Product").Create(movement).Error)
}

func (r *stockMovementRepository) GetStockMovements(ctx context.Context, filters models.StockMovementFilters) ([]models.StockMovement, error) {
	q := r.db.WithContext(ctx).Model(&models.StockMovement{})
	if filters.ProductID != nil {
		q = q.Where("product_id = ?", *filters.ProductID)
	}
	if filters.Channel != nil {
		q = q.Where("channel = ?", *filters.Channel)
	}
	var movements []models.StockMovement
	if err := q.Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		return nil, translateError(err)
	}
	return movements, nil
}
