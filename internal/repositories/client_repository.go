package repositories

import (
	"context"

	"geobike_backend/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer profile operations.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByAccountID(ctx context.Context, accountID int64) (*models.Customer, error)
	GetCustomers(ctx context.Context, filters models.PeopleFilters) ([]models.Customer, int64, error)
	UpdateCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) error
	CountCustomers(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) error {
	return translateError(conn(ctx, r.db, tx).Omit("Account").Create(customer).Error)
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Preload("Account").First(&customer, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (r *customerRepository) GetCustomerByAccountID(ctx context.Context, accountID int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

// GetCustomers matches Search against names and the account email.
func (r *customerRepository) GetCustomers(ctx context.Context, filters models.PeopleFilters) ([]models.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Customer{}).
		Joins("JOIN accounts ON accounts.id = customers.account_id")
	if filters.Search != "" {
		p := likePattern(filters.Search)
		q = q.Where("LOWER(customers.first_name) LIKE ? OR LOWER(customers.last_name) LIKE ? OR LOWER(COALESCE(customers.second_last_name, '')) LIKE ? OR accounts.email LIKE ?", p, p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var customers []models.Customer
	err := paginate(q, filters.Page, filters.PageSize).
		Select("customers.*").
		Preload("Account").
		Order("customers.last_name, customers.first_name").
		Find(&customers).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return customers, total, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) error {
	res := conn(ctx, r.db, tx).Model(customer).
		Select("FirstName", "LastName", "SecondLastName", "ShippingAddress", "Phone").
		Updates(customer)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, translateError(err)
}
