package services

import (
	"context"
	"testing"

	"geobike_backend/internal/models"
	"geobike_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type peopleFixture struct {
	db        *memDB
	auth      AuthService
	customers CustomerService
	staff     StaffService
}

func newPeopleFixture(t *testing.T) peopleFixture {
	t.Helper()
	utils.ConfigureJWT("test-secret", utils.DefaultAccessTokenTTL)
	db := newMemDB()
	return peopleFixture{
		db:        db,
		auth:      NewAuthService(memAccountRepo{db}, memCustomerRepo{db}, memStaffRepo{db}),
		customers: NewCustomerService(memCustomerRepo{db}, memAccountRepo{db}, memTransactor{db}),
		staff:     NewStaffService(memStaffRepo{db}, memAccountRepo{db}, memTransactor{db}),
	}
}

func (f peopleFixture) register(t *testing.T, email, password string) *models.Customer {
	t.Helper()
	customer, err := f.customers.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		Email:     email,
		Password:  password,
		FirstName: "Lucía",
		LastName:  "Gómez",
	})
	require.NoError(t, err)
	return customer
}

func TestLoginIssuesTokenForCustomer(t *testing.T) {
	f := newPeopleFixture(t)
	customer := f.register(t, "Lucia@Example.com", "secreto1")

	resp, err := f.auth.Login(context.Background(), LoginRequest{Email: "lucia@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customer.ID, *resp.CustomerID)
	assert.Nil(t, resp.StaffID)

	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, customer.ID, *claims.CustomerID)
}

func TestLoginStoresOnlyBcryptHash(t *testing.T) {
	f := newPeopleFixture(t)
	customer := f.register(t, "lucia@example.com", "secreto1")

	account := f.db.accounts[customer.AccountID]
	assert.NotEqual(t, "secreto1", account.PasswordHash)
	assert.Contains(t, account.PasswordHash, "$2a$")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newPeopleFixture(t)
	f.register(t, "lucia@example.com", "secreto1")

	_, err := f.auth.Login(context.Background(), LoginRequest{Email: "lucia@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(context.Background(), LoginRequest{Email: "nadie@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	f := newPeopleFixture(t)
	customer := f.register(t, "lucia@example.com", "secreto1")

	toggled, err := f.customers.ToggleCustomerStatus(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Account.Active)

	_, err = f.auth.Login(context.Background(), LoginRequest{Email: "lucia@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrAccountInactive)

	_, err = f.customers.ToggleCustomerStatus(context.Background(), customer.ID)
	require.NoError(t, err)
	_, err = f.auth.Login(context.Background(), LoginRequest{Email: "lucia@example.com", Password: "secreto1"})
	assert.NoError(t, err)
}

func TestRegisterCustomerRejectsDuplicateEmail(t *testing.T) {
	f := newPeopleFixture(t)
	f.register(t, "lucia@example.com", "secreto1")

	_, err := f.customers.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		Email: "LUCIA@example.com", Password: "secreto2", FirstName: "Otra", LastName: "Persona",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, f.db.customers, 1)
}

func TestRegisterCustomerRollsBackOnValidation(t *testing.T) {
	f := newPeopleFixture(t)

	_, err := f.customers.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		Email: "corto@example.com", Password: "123", FirstName: "Corto", LastName: "Clave",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.db.accounts)
	assert.Empty(t, f.db.customers)
}

func TestUpdateCustomerMovesEmail(t *testing.T) {
	f := newPeopleFixture(t)
	first := f.register(t, "lucia@example.com", "secreto1")
	f.register(t, "mario@example.com", "secreto1")

	taken := "mario@example.com"
	_, err := f.customers.UpdateCustomer(context.Background(), first.ID, UpdateCustomerRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)

	fresh := "lucia.g@example.com"
	phone := " 555-1234 "
	updated, err := f.customers.UpdateCustomer(context.Background(), first.ID, UpdateCustomerRequest{Email: &fresh, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "lucia.g@example.com", updated.Account.Email)
	assert.Equal(t, "555-1234", *updated.Phone)

	_, err = f.customers.UpdateCustomer(context.Background(), 9999, UpdateCustomerRequest{Phone: &phone})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestRegisterStaffAndLogin(t *testing.T) {
	f := newPeopleFixture(t)
	hire := "2024-02-01"

	staff, err := f.staff.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email: "taller@example.com", Password: "secreto1", FirstName: "Raúl", LastName: "Díaz", HireDate: &hire,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, staff.Account.Role)
	require.NotNil(t, staff.HireDate)
	assert.Equal(t, 2024, staff.HireDate.Year())

	resp, err := f.auth.Login(context.Background(), LoginRequest{Email: "taller@example.com", Password: "secreto1"})
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, staff.ID, *resp.StaffID)
	assert.Nil(t, resp.CustomerID)
}

func TestRegisterStaffValidation(t *testing.T) {
	f := newPeopleFixture(t)
	badDate := "01/02/2024"

	_, err := f.staff.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email: "a@example.com", Password: "secreto1", FirstName: "A", LastName: "B", HireDate: &badDate,
	})
	assert.ErrorIs(t, err, ErrDateFormat)

	_, err = f.staff.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email: "b@example.com", Password: "secreto1", FirstName: "A", LastName: "B", Role: "cliente",
	})
	assert.ErrorIs(t, err, ErrValidation)

	admin, err := f.staff.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email: "c@example.com", Password: "secreto1", FirstName: "A", LastName: "B", Role: "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Account.Role)

	toggled, err := f.staff.ToggleStaffStatus(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Account.Active)
}
