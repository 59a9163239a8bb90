package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrSupplierInUse    = errors.New("supplier cannot be deleted as it is referenced by products")
)

type SupplierRequest struct {
	Name    string  `json:"nombre" binding:"required,max=100"`
	Contact *string `json:"contacto" binding:"omitempty,max=100"`
	Phone   *string `json:"telefono" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email,max=100"`
	Address *string `json:"direccion" binding:"omitempty,max=255"`
}

// SupplierPage is one page of a supplier listing with its paging totals.
type SupplierPage struct {
	Suppliers  []models.Supplier
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}

type SupplierService interface {
	CreateSupplier(ctx context.Context, req SupplierRequest) (*models.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID int64) (*models.Supplier, error)
	GetSuppliers(ctx context.Context, filters models.SupplierFilters) (*SupplierPage, error)
	UpdateSupplier(ctx context.Context, supplierID int64, req SupplierRequest) (*models.Supplier, error)
	ToggleSupplierStatus(ctx context.Context, supplierID int64) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID int64) error
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(sr repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: sr}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req SupplierRequest) (*models.Supplier, error) {
	if err := requireName("nombre", req.Name); err != nil {
		return nil, err
	}
	supplier := &models.Supplier{
		Name:    strings.TrimSpace(req.Name),
		Contact: trimmedOrNil(req.Contact),
		Phone:   trimmedOrNil(req.Phone),
		Email:   trimmedOrNil(req.Email),
		Address: trimmedOrNil(req.Address),
		Active:  true,
	}
	if err := s.supplierRepo.CreateSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID int64) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetSupplierByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrSupplierNotFound, supplierID)
		}
		return nil, fmt.Errorf("failed to get supplier %d: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) GetSuppliers(ctx context.Context, filters models.SupplierFilters) (*SupplierPage, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}
	filters.Search = strings.TrimSpace(filters.Search)

	suppliers, total, err := s.supplierRepo.GetSuppliers(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &SupplierPage{
		Suppliers:  suppliers,
		TotalCount: total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID int64, req SupplierRequest) (*models.Supplier, error) {
	if err := requireName("nombre", req.Name); err != nil {
		return nil, err
	}
	supplier, err := s.GetSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supplier.Name = strings.TrimSpace(req.Name)
	supplier.Contact = trimmedOrNil(req.Contact)
	supplier.Phone = trimmedOrNil(req.Phone)
	supplier.Email = trimmedOrNil(req.Email)
	supplier.Address = trimmedOrNil(req.Address)

	if err := s.supplierRepo.UpdateSupplier(ctx, supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrSupplierNotFound, supplierID)
		}
		return nil, fmt.Errorf("failed to update supplier %d: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) ToggleSupplierStatus(ctx context.Context, supplierID int64) (*models.Supplier, error) {
	supplier, err := s.GetSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	supplier.Active = !supplier.Active
	if err := s.supplierRepo.SetSupplierActive(ctx, supplierID, supplier.Active); err != nil {
		return nil, fmt.Errorf("failed to toggle supplier %d: %w", supplierID, err)
	}
	return supplier, nil
}

// DeleteSupplier removes the row; products keep existing with no supplier.
func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID int64) error {
	if err := s.supplierRepo.DeleteSupplier(ctx, supplierID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: id %d", ErrSupplierNotFound, supplierID)
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return fmt.Errorf("%w: id %d", ErrSupplierInUse, supplierID)
		}
		return fmt.Errorf("failed to delete supplier %d: %w", supplierID, err)
	}
	return nil
}
