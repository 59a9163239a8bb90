package services

import (
	"context"
	"fmt"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
)

// StockMovementService exposes the stock ledger written by the order and sale workflows.
type StockMovementService interface {
	GetStockMovements(ctx context.Context, filters models.StockMovementFilters) ([]models.StockMovement, error)
}

type stockMovementService struct {
	movementRepo repositories.StockMovementRepository
}

func NewStockMovementService(mr repositories.StockMovementRepository) StockMovementService {
	return &stockMovementService{movementRepo: mr}
}

func (s *stockMovementService) GetStockMovements(ctx context.Context, filters models.StockMovementFilters) ([]models.StockMovement, error) {
	if filters.Channel != nil && *filters.Channel != models.ChannelOrder && *filters.Channel != models.ChannelSale {
		return nil, fmt.Errorf("%w: canal debe ser %q o %q", ErrValidation, models.ChannelOrder, models.ChannelSale)
	}
	movements, err := s.movementRepo.GetStockMovements(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	return movements, nil
}
