package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
	"geobike_backend/pkg/utils"

	"gorm.io/gorm"
)

// --- Customer DTOs ---

type RegisterCustomerRequest struct {
	Email           string  `json:"email" binding:"required,email,max=100"`
	Password        string  `json:"password" binding:"required,min=6"`
	FirstName       string  `json:"nombre" binding:"required,max=50"`
	LastName        string  `json:"apellidoPaterno" binding:"required,max=50"`
	SecondLastName  *string `json:"apellidoMaterno" binding:"omitempty,max=50"`
	ShippingAddress *string `json:"direccionEnvio" binding:"omitempty,max=255"`
	Phone           *string `json:"telefono" binding:"omitempty,max=20"`
}

// UpdateCustomerRequest changes only the fields that are present.
type UpdateCustomerRequest struct {
	Email           *string `json:"email" binding:"omitempty,email,max=100"`
	FirstName       *string `json:"nombre" binding:"omitempty,max=50"`
	LastName        *string `json:"apellidoPaterno" binding:"omitempty,max=50"`
	SecondLastName  *string `json:"apellidoMaterno" binding:"omitempty,max=50"`
	ShippingAddress *string `json:"direccionEnvio" binding:"omitempty,max=255"`
	Phone           *string `json:"telefono" binding:"omitempty,max=20"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*models.Customer, error)
	GetCustomers(ctx context.Context, filters models.PeopleFilters) ([]models.Customer, int64, error)
	UpdateCustomer(ctx context.Context, customerID int64, req UpdateCustomerRequest) (*models.Customer, error)
	ToggleCustomerStatus(ctx context.Context, customerID int64) (*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	accountRepo  repositories.AccountRepository
	transactor   repositories.Transactor
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(cr repositories.CustomerRepository, ar repositories.AccountRepository, transactor repositories.Transactor) CustomerService {
	return &customerService{customerRepo: cr, accountRepo: ar, transactor: transactor}
}

// RegisterCustomer creates the account and its customer profile together.
func (s *customerService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*models.Customer, error) {
	if err := requireName("nombre", req.FirstName); err != nil {
		return nil, err
	}
	if err := requireName("apellidoPaterno", req.LastName); err != nil {
		return nil, err
	}
	if err := ensureEmailAvailable(ctx, s.accountRepo, req.Email, 0); err != nil {
		return nil, err
	}

	var created *models.Customer
	err := s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		account, err := createAccount(ctx, tx, s.accountRepo, req.Email, req.Password, models.RoleCustomer)
		if err != nil {
			return err
		}
		customer := &models.Customer{
			AccountID:       account.ID,
			FirstName:       strings.TrimSpace(req.FirstName),
			LastName:        strings.TrimSpace(req.LastName),
			SecondLastName:  trimmedOrNil(req.SecondLastName),
			ShippingAddress: trimmedOrNil(req.ShippingAddress),
			Phone:           trimmedOrNil(req.Phone),
		}
		if err := s.customerRepo.CreateCustomer(ctx, tx, customer); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		customer.Account = account
		created = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Customer registered", map[string]interface{}{"customer_id": created.ID})
	return created, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(ctx context.Context, filters models.PeopleFilters) ([]models.Customer, int64, error) {
	filters.Search = strings.TrimSpace(filters.Search)
	customers, total, err := s.customerRepo.GetCustomers(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, total, nil
}

// UpdateCustomer also moves the login email, which must stay unique.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := ensureEmailAvailable(ctx, s.accountRepo, *req.Email, customer.AccountID); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil {
		if err := requireName("nombre", *req.FirstName); err != nil {
			return nil, err
		}
		customer.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if err := requireName("apellidoPaterno", *req.LastName); err != nil {
			return nil, err
		}
		customer.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.SecondLastName != nil {
		customer.SecondLastName = trimmedOrNil(req.SecondLastName)
	}
	if req.ShippingAddress != nil {
		customer.ShippingAddress = trimmedOrNil(req.ShippingAddress)
	}
	if req.Phone != nil {
		customer.Phone = trimmedOrNil(req.Phone)
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if req.Email != nil {
			if err := s.accountRepo.UpdateEmail(ctx, tx, customer.AccountID, *req.Email); err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return fmt.Errorf("%w: %s", ErrEmailExists, *req.Email)
				}
				return fmt.Errorf("failed to update email: %w", err)
			}
		}
		if err := s.customerRepo.UpdateCustomer(ctx, tx, customer); err != nil {
			return fmt.Errorf("failed to update customer %d: %w", customerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCustomerByID(ctx, customerID)
}

// ToggleCustomerStatus flips the account's active flag. Accounts are never deleted.
func (s *customerService) ToggleCustomerStatus(ctx context.Context, customerID int64) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	active := true
	if customer.Account != nil {
		active = !customer.Account.Active
	}
	if err := s.accountRepo.SetActive(ctx, nil, customer.AccountID, active); err != nil {
		return nil, fmt.Errorf("failed to toggle customer %d: %w", customerID, err)
	}
	if customer.Account != nil {
		customer.Account.Active = active
	}
	return customer, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*s))
}
