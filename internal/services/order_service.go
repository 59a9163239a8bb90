package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// Limits applied to each order line.
const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 100
)

// --- Data Transfer Objects (DTOs) ---

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	Type     string `json:"tipo" binding:"required,catalogtype"`
	ItemID   int64  `json:"itemId" binding:"required,gt=0"`
	Quantity int    `json:"cantidad" binding:"required,min=1,max=100"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerID int64              `json:"clienteId" binding:"required,gt=0"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Validate repeats the binding rules so the service is safe to call directly.
func (r CreateOrderRequest) Validate() ([]LineRequest, error) {
	if r.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: clienteId debe ser positivo", ErrValidation)
	}
	if len(r.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe contener al menos un item", ErrValidation)
	}
	lines := make([]LineRequest, 0, len(r.Items))
	for i, item := range r.Items {
		itemType, ok := models.ParseItemType(item.Type)
		if !ok {
			return nil, fmt.Errorf("%w: items[%d].tipo %q no es producto ni servicio", ErrValidation, i, item.Type)
		}
		if item.ItemID <= 0 {
			return nil, fmt.Errorf("%w: items[%d].itemId debe ser positivo", ErrValidation, i)
		}
		if item.Quantity < MinOrderQuantity || item.Quantity > MaxOrderQuantity {
			return nil, fmt.Errorf("%w: items[%d].cantidad debe estar entre %d y %d", ErrValidation, i, MinOrderQuantity, MaxOrderQuantity)
		}
		lines = append(lines, LineRequest{Type: itemType, ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return lines, nil
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, req UpdateOrderStatusRequest) error
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	resolver     *lineResolver
	transactor   repositories.Transactor
	policy       StockPolicy
	now          func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	cr repositories.CustomerRepository,
	pr repositories.ProductRepository,
	sr repositories.ServiceRepository,
	mr repositories.StockMovementRepository,
	transactor repositories.Transactor,
	policy StockPolicy,
) OrderService {
	return &orderService{
		orderRepo:    or,
		customerRepo: cr,
		resolver:     &lineResolver{products: pr, services: sr, movements: mr},
		transactor:   transactor,
		policy:       policy,
		now:          time.Now,
	}
}

// CreateOrder resolves every line before the header is written, so a missing
// item leaves no order behind.
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	lines, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.GetCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: Cliente con ID %d no encontrado", ErrCustomerNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	var created *models.Order
	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		resolved, err := s.resolver.resolve(ctx, tx, lines, s.policy)
		if err != nil {
			return err
		}

		order := &models.Order{
			CustomerID: req.CustomerID,
			PlacedAt:   s.now(),
			Status:     models.OrderStatusPending,
			Total:      sumLines(resolved),
			Lines:      make([]models.OrderLine, 0, len(resolved)),
		}
		for _, l := range resolved {
			order.Lines = append(order.Lines, models.OrderLine{
				ItemType:  l.Type,
				ProductID: l.ProductID,
				ServiceID: l.ServiceID,
				ItemName:  l.Name,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.resolver.applyStock(ctx, tx, resolved, s.policy, models.ChannelOrder, order.ID); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return order, nil
}

// GetOrdersByCustomer returns the customer's orders newest first. An unknown
// customer simply has no orders.
func (s *orderService) GetOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for customer %d: %w", customerID, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *orderService) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int64, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	orders, total, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, total, nil
}

// UpdateOrderStatus accepts any known status; transitions are not restricted.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID int64, req UpdateOrderStatusRequest) error {
	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, req.Status)
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, nil, orderID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	return nil
}
