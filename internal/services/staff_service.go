package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
	"geobike_backend/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrDateFormat    = errors.New("invalid date format, please use YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

type RegisterStaffRequest struct {
	Email          string  `json:"email" binding:"required,email,max=100"`
	Password       string  `json:"password" binding:"required,min=6"`
	Role           string  `json:"rol"`
	FirstName      string  `json:"nombre" binding:"required,max=50"`
	LastName       string  `json:"apellidoPaterno" binding:"required,max=50"`
	SecondLastName *string `json:"apellidoMaterno" binding:"omitempty,max=50"`
	Position       *string `json:"puesto" binding:"omitempty,max=50"`
	HireDate       *string `json:"fechaContratacion"` // Format YYYY-MM-DD
}

type UpdateStaffRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=100"`
	FirstName      *string `json:"nombre" binding:"omitempty,max=50"`
	LastName       *string `json:"apellidoPaterno" binding:"omitempty,max=50"`
	SecondLastName *string `json:"apellidoMaterno" binding:"omitempty,max=50"`
	Position       *string `json:"puesto" binding:"omitempty,max=50"`
	HireDate       *string `json:"fechaContratacion"`
}

// --- StaffService Interface ---
type StaffService interface {
	RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*models.Staff, error)
	GetStaffByID(ctx context.Context, staffID int64) (*models.Staff, error)
	GetStaff(ctx context.Context, filters models.PeopleFilters) ([]models.Staff, int64, error)
	UpdateStaff(ctx context.Context, staffID int64, req UpdateStaffRequest) (*models.Staff, error)
	ToggleStaffStatus(ctx context.Context, staffID int64) (*models.Staff, error)
}

type staffService struct {
	staffRepo   repositories.StaffRepository
	accountRepo repositories.AccountRepository
	transactor  repositories.Transactor
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, ar repositories.AccountRepository, transactor repositories.Transactor) StaffService {
	return &staffService{staffRepo: sr, accountRepo: ar, transactor: transactor}
}

func parseHireDate(raw *string) (*time.Time, error) {
	if raw == nil || utils.IsEmpty(*raw) {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDateFormat, *raw)
	}
	return &t, nil
}

func (s *staffService) RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*models.Staff, error) {
	role := models.RoleStaff
	if !utils.IsEmpty(req.Role) {
		normalized, ok := models.NormalizeRole(req.Role)
		if !ok || normalized == models.RoleCustomer {
			return nil, fmt.Errorf("%w: rol debe ser %q o %q", ErrValidation, models.RoleStaff, models.RoleAdmin)
		}
		role = normalized
	}
	if err := requireName("nombre", req.FirstName); err != nil {
		return nil, err
	}
	if err := requireName("apellidoPaterno", req.LastName); err != nil {
		return nil, err
	}
	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	if err := ensureEmailAvailable(ctx, s.accountRepo, req.Email, 0); err != nil {
		return nil, err
	}

	var created *models.Staff
	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		account, err := createAccount(ctx, tx, s.accountRepo, req.Email, req.Password, role)
		if err != nil {
			return err
		}
		staff := &models.Staff{
			AccountID:      account.ID,
			FirstName:      strings.TrimSpace(req.FirstName),
			LastName:       strings.TrimSpace(req.LastName),
			SecondLastName: trimmedOrNil(req.SecondLastName),
			Position:       trimmedOrNil(req.Position),
			HireDate:       hireDate,
		}
		if err := s.staffRepo.CreateStaff(ctx, tx, staff); err != nil {
			return fmt.Errorf("failed to create staff member: %w", err)
		}
		staff.Account = account
		created = staff
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Staff member registered", map[string]interface{}{"staff_id": created.ID, "role": role})
	return created, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, staffID int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrStaffNotFound, staffID)
		}
		return nil, fmt.Errorf("failed to get staff member %d: %w", staffID, err)
	}
	return staff, nil
}

func (s *staffService) GetStaff(ctx context.Context, filters models.PeopleFilters) ([]models.Staff, int64, error) {
	filters.Search = strings.TrimSpace(filters.Search)
	staff, total, err := s.staffRepo.GetStaff(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	if staff == nil {
		staff = []models.Staff{}
	}
	return staff, total, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, staffID int64, req UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := ensureEmailAvailable(ctx, s.accountRepo, *req.Email, staff.AccountID); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil {
		if err := requireName("nombre", *req.FirstName); err != nil {
			return nil, err
		}
		staff.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if err := requireName("apellidoPaterno", *req.LastName); err != nil {
			return nil, err
		}
		staff.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.SecondLastName != nil {
		staff.SecondLastName = trimmedOrNil(req.SecondLastName)
	}
	if req.Position != nil {
		staff.Position = trimmedOrNil(req.Position)
	}
	if req.HireDate != nil {
		hireDate, err := parseHireDate(req.HireDate)
		if err != nil {
			return nil, err
		}
		staff.HireDate = hireDate
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if req.Email != nil {
			if err := s.accountRepo.UpdateEmail(ctx, tx, staff.AccountID, *req.Email); err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return fmt.Errorf("%w: %s", ErrEmailExists, *req.Email)
				}
				return fmt.Errorf("failed to update email: %w", err)
			}
		}
		if err := s.staffRepo.UpdateStaff(ctx, tx, staff); err != nil {
			return fmt.Errorf("failed to update staff member %d: %w", staffID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetStaffByID(ctx, staffID)
}

func (s *staffService) ToggleStaffStatus(ctx context.Context, staffID int64) (*models.Staff, error) {
	staff, err := s.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	active := true
	if staff.Account != nil {
		active = !staff.Account.Active
	}
	if err := s.accountRepo.SetActive(ctx, nil, staff.AccountID, active); err != nil {
		return nil, fmt.Errorf("failed to toggle staff member %d: %w", staffID, err)
	}
	if staff.Account != nil {
		staff.Account.Active = active
	}
	return staff, nil
}
