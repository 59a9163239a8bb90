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

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrEmailExists        = errors.New("email already exists")
)

const MinPasswordLength = 6

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token plus the session fields the
// storefront keeps next to it.
type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiraEn"`
	UserID     int64     `json:"usuarioId"`
	Email      string    `json:"email"`
	Role       string    `json:"rol"`
	CustomerID *int64    `json:"clienteId,omitempty"`
	StaffID    *int64    `json:"personalId,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type authService struct {
	accountRepo  repositories.AccountRepository
	customerRepo repositories.CustomerRepository
	staffRepo    repositories.StaffRepository
}

func NewAuthService(ar repositories.AccountRepository, cr repositories.CustomerRepository, sr repositories.StaffRepository) AuthService {
	return &authService{accountRepo: ar, customerRepo: cr, staffRepo: sr}
}

// Login verifies the bcrypt hash of an active account and issues a token.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account, err := s.accountRepo.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.Active {
		return nil, ErrAccountInactive
	}

	claims := utils.Claims{UserID: account.ID, Email: account.Email, Role: account.Role}
	switch account.Role {
	case models.RoleCustomer:
		customer, err := s.customerRepo.GetCustomerByAccountID(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load customer profile for account %d: %w", account.ID, err)
		}
		claims.CustomerID = &customer.ID
	default:
		staff, err := s.staffRepo.GetStaffByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to load staff profile for account %d: %w", account.ID, err)
		}
		if staff != nil {
			claims.StaffID = &staff.ID
		}
	}

	token, expiresAt, err := utils.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.LogInfo("User logged in", map[string]interface{}{"user_id": account.ID, "role": account.Role})

	return &LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		UserID:     account.ID,
		Email:      account.Email,
		Role:       account.Role,
		CustomerID: claims.CustomerID,
		StaffID:    claims.StaffID,
	}, nil
}

// createAccount hashes the password and inserts the account inside tx.
func createAccount(ctx context.Context, tx *gorm.DB, repo repositories.AccountRepository, email, password, role string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email inválido", ErrValidation)
	}
	if !utils.IsValidPasswordLength(password, MinPasswordLength) {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", ErrValidation, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account := &models.Account{Email: email, PasswordHash: string(hash), Role: role, Active: true}
	if err := repo.CreateAccount(ctx, tx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, email)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// ensureEmailAvailable answers ErrEmailExists when another account owns email.
func ensureEmailAvailable(ctx context.Context, repo repositories.AccountRepository, email string, ownAccountID int64) error {
	inUse, err := repo.EmailInUse(ctx, email, ownAccountID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: %s", ErrEmailExists, strings.ToLower(strings.TrimSpace(email)))
	}
	return nil
}

func requireName(field, value string) error {
	if utils.IsEmpty(value) {
		return fmt.Errorf("%w: %s es obligatorio", ErrValidation, field)
	}
	return nil
}
