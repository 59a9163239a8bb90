package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// CreateOrder inserts the header and every line in one statement group.
	CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, tx *gorm.DB, id int64, status models.OrderStatus) error
	CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	SumOrderTotals(ctx context.Context, excluding models.OrderStatus) (decimal.Decimal, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return translateError(conn(ctx, r.db, tx).Omit("Customer", "Lines.Product", "Lines.Service").Create(order).Error)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id") }).
		First(&order, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderRepository) GetOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id") }).
		Where("customer_id = ?", customerID).
		Order("placed_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translateError(err)
	}
	return orders, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	// Date is expected at midnight; the whole day is matched.
	if filters.Date != nil {
		q = q.Where("placed_at >= ? AND placed_at < ?", *filters.Date, filters.Date.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var orders []models.Order
	err := paginate(q, filters.Page, filters.PageSize).
		Preload("Lines").
		Order("placed_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return orders, total, nil
}

// UpdateOrderStatus returns ErrNotFound and changes nothing when id is unknown.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, tx *gorm.DB, id int64, status models.OrderStatus) error {
	res := conn(ctx, r.db, tx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, translateError(err)
}

func (r *orderRepository) SumOrderTotals(ctx context.Context, excluding models.OrderStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status <> ?", excluding).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return sum, nil
}
