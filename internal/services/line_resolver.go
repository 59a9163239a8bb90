package services

import (
	"context"
	"errors"
	"fmt"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
)

// StockPolicy decides whether a channel checks and decrements product stock.
type StockPolicy string

const (
	StockPolicyNone    StockPolicy = "none"
	StockPolicyEnforce StockPolicy = "enforce"
)

func (p StockPolicy) enforced() bool { return p == StockPolicyEnforce }

// LineRequest is one requested catalog entry, already validated.
type LineRequest struct {
	Type     models.ItemType
	ItemID   int64
	Quantity int
}

// ResolvedLine carries the name and unit price captured at resolution time.
type ResolvedLine struct {
	Type      models.ItemType
	ProductID *int64
	ServiceID *int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l ResolvedLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// lineResolver is shared by the order and sale workflows; only the policy differs.
type lineResolver struct {
	products  repositories.ProductRepository
	services  repositories.ServiceRepository
	movements repositories.StockMovementRepository
}

// resolve looks up every line in input order and, under an enforced policy,
// checks stock for all of them before anything is written.
func (r *lineResolver) resolve(ctx context.Context, tx *gorm.DB, lines []LineRequest, policy StockPolicy) ([]ResolvedLine, error) {
	resolved := make([]ResolvedLine, 0, len(lines))
	requested := make(map[int64]int)
	available := make(map[int64]int)
	names := make(map[int64]string)
	var order []int64

	for _, line := range lines {
		switch line.Type {
		case models.ItemTypeProduct:
			product, err := r.products.GetProductByID(ctx, tx, line.ItemID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, fmt.Errorf("%w: Producto con ID %d no encontrado", ErrCatalogItemNotFound, line.ItemID)
				}
				return nil, fmt.Errorf("failed to load product %d: %w", line.ItemID, err)
			}
			id := product.ID
			resolved = append(resolved, ResolvedLine{
				Type:      models.ItemTypeProduct,
				ProductID: &id,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
			if _, seen := requested[id]; !seen {
				order = append(order, id)
			}
			requested[id] += line.Quantity
			available[id] = product.Stock
			names[id] = product.Name
		case models.ItemTypeService:
			service, err := r.services.GetServiceByID(ctx, tx, line.ItemID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, fmt.Errorf("%w: Servicio con ID %d no encontrado", ErrCatalogItemNotFound, line.ItemID)
				}
				return nil, fmt.Errorf("failed to load service %d: %w", line.ItemID, err)
			}
			id := service.ID
			resolved = append(resolved, ResolvedLine{
				Type:      models.ItemTypeService,
				ServiceID: &id,
				Name:      service.Name,
				Quantity:  line.Quantity,
				UnitPrice: service.UnitPrice(),
			})
		default:
			return nil, fmt.Errorf("%w: tipo de item desconocido %q", ErrValidation, line.Type)
		}
	}

	if policy.enforced() {
		for _, id := range order {
			if requested[id] > available[id] {
				return nil, fmt.Errorf("%w: No hay suficiente stock para el producto %s. Disponible: %d, solicitado: %d.",
					ErrInsufficientStock, names[id], available[id], requested[id])
			}
		}
	}
	return resolved, nil
}

// applyStock decrements product stock and records one movement per product line.
// It is a no-op unless the policy is enforced.
func (r *lineResolver) applyStock(ctx context.Context, tx *gorm.DB, lines []ResolvedLine, policy StockPolicy, channel string, referenceID int64) error {
	if !policy.enforced() {
		return nil
	}
	for _, line := range lines {
		if line.ProductID == nil {
			continue
		}
		if err := r.products.DecrementStock(ctx, tx, *line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, repositories.ErrStockConflict) {
				return fmt.Errorf("%w: No hay suficiente stock para el producto %s.", ErrInsufficientStock, line.Name)
			}
			return fmt.Errorf("failed to decrement stock for product %d: %w", *line.ProductID, err)
		}
		reason := fmt.Sprintf("%s #%d", channel, referenceID)
		movement := &models.StockMovement{
			ProductID:       *line.ProductID,
			Channel:         channel,
			ReferenceID:     referenceID,
			QuantityChanged: -line.Quantity,
			Reason:          &reason,
		}
		if err := r.movements.CreateStockMovement(ctx, tx, movement); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}
	}
	return nil
}

func sumLines(lines []ResolvedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
