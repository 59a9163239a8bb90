package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSaleNotFound = errors.New("sale not found")

const defaultSaleType = "presencial"

// SaleDetailRequest names exactly one of ProductID or ServiceID.
type SaleDetailRequest struct {
	ProductID *int64 `json:"productoId"`
	ServiceID *int64 `json:"servicioId"`
	Quantity  int    `json:"cantidad" binding:"required,min=1"`
}

// CreateSaleRequest is the point-of-sale payload. Total is accepted for
// compatibility and ignored; the stored total is computed from line prices.
type CreateSaleRequest struct {
	Total      *decimal.Decimal    `json:"total"`
	SaleType   string              `json:"tipoVenta"`
	CustomerID *int64              `json:"clienteId"`
	StaffID    *int64              `json:"personalId"`
	Details    []SaleDetailRequest `json:"detallesVenta" binding:"required,min=1,dive"`
}

func (r CreateSaleRequest) Validate() ([]LineRequest, error) {
	if len(r.Details) == 0 {
		return nil, fmt.Errorf("%w: la venta debe contener al menos un detalle", ErrValidation)
	}
	lines := make([]LineRequest, 0, len(r.Details))
	for i, d := range r.Details {
		if (d.ProductID == nil) == (d.ServiceID == nil) {
			return nil, fmt.Errorf("%w: detallesVenta[%d] debe indicar productoId o servicioId, no ambos", ErrValidation, i)
		}
		if d.Quantity < 1 {
			return nil, fmt.Errorf("%w: detallesVenta[%d].cantidad debe ser al menos 1", ErrValidation, i)
		}
		if d.ProductID != nil {
			lines = append(lines, LineRequest{Type: models.ItemTypeProduct, ItemID: *d.ProductID, Quantity: d.Quantity})
			continue
		}
		lines = append(lines, LineRequest{Type: models.ItemTypeService, ItemID: *d.ServiceID, Quantity: d.Quantity})
	}
	return lines, nil
}

type SaleService interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error)
	GetSaleByID(ctx context.Context, saleID int64) (*models.Sale, error)
	GetSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int64, error)
}

type saleService struct {
	saleRepo   repositories.SaleRepository
	resolver   *lineResolver
	transactor repositories.Transactor
	policy     StockPolicy
	now        func() time.Time
}

func NewSaleService(
	sr repositories.SaleRepository,
	pr repositories.ProductRepository,
	svr repositories.ServiceRepository,
	mr repositories.StockMovementRepository,
	transactor repositories.Transactor,
	policy StockPolicy,
) SaleService {
	return &saleService{
		saleRepo:   sr,
		resolver:   &lineResolver{products: pr, services: svr, movements: mr},
		transactor: transactor,
		policy:     policy,
		now:        time.Now,
	}
}

// CreateSale validates all lines, including stock, before any write. Stock is
// then decremented with a conditional update in the same transaction.
func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error) {
	lines, err := req.Validate()
	if err != nil {
		return nil, err
	}
	saleType := strings.TrimSpace(req.SaleType)
	if saleType == "" {
		saleType = defaultSaleType
	}

	var created *models.Sale
	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		resolved, err := s.resolver.resolve(ctx, tx, lines, s.policy)
		if err != nil {
			return err
		}

		sale := &models.Sale{
			SoldAt:     s.now(),
			Total:      sumLines(resolved),
			SaleType:   saleType,
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			Lines:      make([]models.SaleLine, 0, len(resolved)),
		}
		for _, l := range resolved {
			sale.Lines = append(sale.Lines, models.SaleLine{
				ItemType:  l.Type,
				ProductID: l.ProductID,
				ServiceID: l.ServiceID,
				ItemName:  l.Name,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}
		if err := s.saleRepo.CreateSale(ctx, tx, sale); err != nil {
			if errors.Is(err, repositories.ErrForeignKeyViolation) {
				return fmt.Errorf("%w: cliente o personal inexistente", ErrValidation)
			}
			return fmt.Errorf("failed to save sale: %w", err)
		}
		if err := s.resolver.applyStock(ctx, tx, resolved, s.policy, models.ChannelSale, sale.ID); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrSaleNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to get sale %d: %w", saleID, err)
	}
	return sale, nil
}

func (s *saleService) GetSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int64, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	sales, total, err := s.saleRepo.GetSales(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return sales, total, nil
}
