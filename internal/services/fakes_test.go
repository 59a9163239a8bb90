package services

import (
	"context"
	"sort"
	"strings"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memDB is an in-memory stand-in for the PostgreSQL schema. memTransactor
// snapshots it before a transaction and restores it on error.
type memDB struct {
	nextID    int64
	accounts  map[int64]models.Account
	customers map[int64]models.Customer
	staff     map[int64]models.Staff
	products  map[int64]models.Product
	services  map[int64]models.Service
	orders    map[int64]models.Order
	sales     map[int64]models.Sale
	movements []models.StockMovement
}

func newMemDB() *memDB {
	return &memDB{
		nextID:    100,
		accounts:  map[int64]models.Account{},
		customers: map[int64]models.Customer{},
		staff:     map[int64]models.Staff{},
		products:  map[int64]models.Product{},
		services:  map[int64]models.Service{},
		orders:    map[int64]models.Order{},
		sales:     map[int64]models.Sale{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) snapshot() memDB {
	cp := memDB{
		nextID:    m.nextID,
		accounts:  map[int64]models.Account{},
		customers: map[int64]models.Customer{},
		staff:     map[int64]models.Staff{},
		products:  map[int64]models.Product{},
		services:  map[int64]models.Service{},
		orders:    map[int64]models.Order{},
		sales:     map[int64]models.Sale{},
		movements: append([]models.StockMovement(nil), m.movements...),
	}
	for k, v := range m.accounts {
		cp.accounts[k] = v
	}
	for k, v := range m.customers {
		cp.customers[k] = v
	}
	for k, v := range m.staff {
		cp.staff[k] = v
	}
	for k, v := range m.products {
		cp.products[k] = v
	}
	for k, v := range m.services {
		cp.services[k] = v
	}
	for k, v := range m.orders {
		cp.orders[k] = v
	}
	for k, v := range m.sales {
		cp.sales[k] = v
	}
	return cp
}

func (m *memDB) addProduct(name, price string, stock int) models.Product {
	p := models.Product{ID: m.id(), Slug: strings.ToLower(name), Name: name, Price: decimal.RequireFromString(price), Stock: stock, Active: true}
	m.products[p.ID] = p
	return p
}

func (m *memDB) addService(name, monthly string) models.Service {
	price := decimal.RequireFromString(monthly)
	s := models.Service{ID: m.id(), Name: name, MonthlyPrice: &price, Active: true}
	m.services[s.ID] = s
	return s
}

func (m *memDB) addCustomer(email string) models.Customer {
	account := models.Account{ID: m.id(), Email: email, Role: models.RoleCustomer, Active: true}
	m.accounts[account.ID] = account
	c := models.Customer{ID: m.id(), AccountID: account.ID, FirstName: "Ana", LastName: "Pérez"}
	m.customers[c.ID] = c
	return c
}

type memTransactor struct{ db *memDB }

func (t memTransactor) WithinTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	saved := t.db.snapshot()
	if err := fn(nil); err != nil {
		*t.db = saved
		return err
	}
	return nil
}

// --- accounts ---

type memAccountRepo struct{ db *memDB }

func (r memAccountRepo) CreateAccount(_ context.Context, _ *gorm.DB, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	for _, a := range r.db.accounts {
		if a.Email == account.Email {
			return repositories.ErrDuplicateKey
		}
	}
	account.ID = r.db.id()
	r.db.accounts[account.ID] = *account
	return nil
}

func (r memAccountRepo) GetAccountByID(_ context.Context, id int64) (*models.Account, error) {
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (r memAccountRepo) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.db.accounts {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memAccountRepo) EmailInUse(_ context.Context, email string, excludeAccountID int64) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.db.accounts {
		if a.Email == email && a.ID != excludeAccountID {
			return true, nil
		}
	}
	return false, nil
}

func (r memAccountRepo) UpdateEmail(_ context.Context, _ *gorm.DB, accountID int64, email string) error {
	a, ok := r.db.accounts[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Email = strings.ToLower(strings.TrimSpace(email))
	r.db.accounts[accountID] = a
	return nil
}

func (r memAccountRepo) SetActive(_ context.Context, _ *gorm.DB, accountID int64, active bool) error {
	a, ok := r.db.accounts[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Active = active
	r.db.accounts[accountID] = a
	return nil
}

// --- customers and staff ---

type memCustomerRepo struct{ db *memDB }

func (r memCustomerRepo) CreateCustomer(_ context.Context, _ *gorm.DB, customer *models.Customer) error {
	customer.ID = r.db.id()
	c := *customer
	c.Account = nil
	r.db.customers[c.ID] = c
	return nil
}

func (r memCustomerRepo) withAccount(c models.Customer) *models.Customer {
	if a, ok := r.db.accounts[c.AccountID]; ok {
		c.Account = &a
	}
	return &c
}

func (r memCustomerRepo) GetCustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := r.db.customers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withAccount(c), nil
}

func (r memCustomerRepo) GetCustomerByAccountID(_ context.Context, accountID int64) (*models.Customer, error) {
	for _, c := range r.db.customers {
		if c.AccountID == accountID {
			return r.withAccount(c), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memCustomerRepo) GetCustomers(_ context.Context, _ models.PeopleFilters) ([]models.Customer, int64, error) {
	var out []models.Customer
	for _, c := range r.db.customers {
		out = append(out, *r.withAccount(c))
	}
	return out, int64(len(out)), nil
}

func (r memCustomerRepo) UpdateCustomer(_ context.Context, _ *gorm.DB, customer *models.Customer) error {
	if _, ok := r.db.customers[customer.ID]; !ok {
		return repositories.ErrNotFound
	}
	c := *customer
	c.Account = nil
	r.db.customers[c.ID] = c
	return nil
}

func (r memCustomerRepo) CountCustomers(_ context.Context) (int64, error) {
	return int64(len(r.db.customers)), nil
}

type memStaffRepo struct{ db *memDB }

func (r memStaffRepo) CreateStaff(_ context.Context, _ *gorm.DB, staff *models.Staff) error {
	staff.ID = r.db.id()
	s := *staff
	s.Account = nil
	r.db.staff[s.ID] = s
	return nil
}

func (r memStaffRepo) GetStaffByID(_ context.Context, id int64) (*models.Staff, error) {
	s, ok := r.db.staff[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if a, ok := r.db.accounts[s.AccountID]; ok {
		s.Account = &a
	}
	return &s, nil
}

func (r memStaffRepo) GetStaffByAccountID(_ context.Context, accountID int64) (*models.Staff, error) {
	for _, s := range r.db.staff {
		if s.AccountID == accountID {
			s := s
			return &s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memStaffRepo) GetStaff(_ context.Context, _ models.PeopleFilters) ([]models.Staff, int64, error) {
	var out []models.Staff
	for _, s := range r.db.staff {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r memStaffRepo) UpdateStaff(_ context.Context, _ *gorm.DB, staff *models.Staff) error {
	s := *staff
	s.Account = nil
	r.db.staff[s.ID] = s
	return nil
}

// --- catalog ---

type memProductRepo struct{ db *memDB }

func (r memProductRepo) CreateProduct(_ context.Context, product *models.Product) error {
	product.ID = r.db.id()
	r.db.products[product.ID] = *product
	return nil
}

func (r memProductRepo) GetProductByID(_ context.Context, _ *gorm.DB, id int64) (*models.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r memProductRepo) GetProducts(_ context.Context, _ models.ProductFilters) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.db.products {
		out = append(out, p)
	}
	return out, nil
}

func (r memProductRepo) UpdateProduct(_ context.Context, product *models.Product) error {
	if _, ok := r.db.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.db.products[product.ID] = *product
	return nil
}

func (r memProductRepo) SetProductActive(_ context.Context, id int64, active bool) error {
	p, ok := r.db.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Active = active
	r.db.products[id] = p
	return nil
}

func (r memProductRepo) SetProductImage(_ context.Context, id int64, image string) error {
	p, ok := r.db.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Image = &image
	r.db.products[id] = p
	return nil
}

func (r memProductRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := r.db.products[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, o := range r.db.orders {
		for _, l := range o.Lines {
			if l.ProductID != nil && *l.ProductID == id {
				return repositories.ErrForeignKeyViolation
			}
		}
	}
	delete(r.db.products, id)
	return nil
}

func (r memProductRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.db.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r memProductRepo) DecrementStock(_ context.Context, _ *gorm.DB, id int64, quantity int) error {
	p, ok := r.db.products[id]
	if !ok || p.Stock < quantity {
		return repositories.ErrStockConflict
	}
	p.Stock -= quantity
	r.db.products[id] = p
	return nil
}

func (r memProductRepo) CountActiveProducts(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.db.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func (r memProductRepo) GetLowStockProducts(_ context.Context, threshold int) ([]models.LowStockProduct, error) {
	var out []models.LowStockProduct
	for _, p := range r.db.products {
		if p.Active && p.Stock <= threshold {
			out = append(out, models.LowStockProduct{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
		}
	}
	return out, nil
}

type memServiceRepo struct{ db *memDB }

func (r memServiceRepo) CreateService(_ context.Context, service *models.Service) error {
	service.ID = r.db.id()
	r.db.services[service.ID] = *service
	return nil
}

func (r memServiceRepo) GetServiceByID(_ context.Context, _ *gorm.DB, id int64) (*models.Service, error) {
	s, ok := r.db.services[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r memServiceRepo) GetServices(_ context.Context, activeOnly *bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.db.services {
		if activeOnly != nil && s.Active != *activeOnly {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r memServiceRepo) UpdateService(_ context.Context, service *models.Service) error {
	if _, ok := r.db.services[service.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.db.services[service.ID] = *service
	return nil
}

func (r memServiceRepo) SetServiceActive(_ context.Context, id int64, active bool) error {
	s, ok := r.db.services[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.Active = active
	r.db.services[id] = s
	return nil
}

type memMovementRepo struct{ db *memDB }

func (r memMovementRepo) CreateStockMovement(_ context.Context, _ *gorm.DB, movement *models.StockMovement) error {
	movement.ID = r.db.id()
	r.db.movements = append(r.db.movements, *movement)
	return nil
}

func (r memMovementRepo) GetStockMovements(_ context.Context, filters models.StockMovementFilters) ([]models.StockMovement, error) {
	var out []models.StockMovement
	for _, m := range r.db.movements {
		if filters.ProductID != nil && m.ProductID != *filters.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// --- orders and sales ---

type memOrderRepo struct{ db *memDB }

func (r memOrderRepo) CreateOrder(_ context.Context, _ *gorm.DB, order *models.Order) error {
	order.ID = r.db.id()
	for i := range order.Lines {
		order.Lines[i].ID = r.db.id()
		order.Lines[i].OrderID = order.ID
	}
	r.db.orders[order.ID] = *order
	return nil
}

func (r memOrderRepo) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	o, ok := r.db.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &o, nil
}

func (r memOrderRepo) GetOrdersByCustomer(_ context.Context, customerID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.db.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlacedAt.After(out[j].PlacedAt) })
	return out, nil
}

func (r memOrderRepo) GetOrders(_ context.Context, filters models.OrderFilters) ([]models.Order, int64, error) {
	var out []models.Order
	for _, o := range r.db.orders {
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r memOrderRepo) UpdateOrderStatus(_ context.Context, _ *gorm.DB, id int64, status models.OrderStatus) error {
	o, ok := r.db.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	o.Status = status
	r.db.orders[id] = o
	return nil
}

func (r memOrderRepo) CountOrdersByStatus(_ context.Context, status models.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.db.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r memOrderRepo) SumOrderTotals(_ context.Context, excluding models.OrderStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.db.orders {
		if o.Status != excluding {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}

type memSaleRepo struct{ db *memDB }

func (r memSaleRepo) CreateSale(_ context.Context, _ *gorm.DB, sale *models.Sale) error {
	sale.ID = r.db.id()
	for i := range sale.Lines {
		sale.Lines[i].ID = r.db.id()
		sale.Lines[i].SaleID = sale.ID
	}
	r.db.sales[sale.ID] = *sale
	return nil
}

func (r memSaleRepo) GetSaleByID(_ context.Context, id int64) (*models.Sale, error) {
	s, ok := r.db.sales[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r memSaleRepo) GetSales(_ context.Context, _ models.SaleFilters) ([]models.Sale, int64, error) {
	var out []models.Sale
	for _, s := range r.db.sales {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r memSaleRepo) GetRecentSales(ctx context.Context, limit int) ([]models.Sale, error) {
	out, _, _ := r.GetSales(ctx, models.SaleFilters{})
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memSaleRepo) SumSoldAmount(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.db.sales {
		for _, l := range s.Lines {
			total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
	}
	return total, nil
}

func (r memSaleRepo) GetProductSales(_ context.Context) ([]models.ProductSalesRow, error) {
	return nil, nil
}
