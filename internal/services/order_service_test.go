package services

import (
	"context"
	"testing"
	"time"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	db      *memDB
	service *orderService
}

func newOrderFixture(policy StockPolicy) orderFixture {
	db := newMemDB()
	svc := NewOrderService(memOrderRepo{db}, memCustomerRepo{db}, memProductRepo{db}, memServiceRepo{db}, memMovementRepo{db}, memTransactor{db}, policy).(*orderService)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return orderFixture{db: db, service: svc}
}

func TestCreateOrderComputesTotalAndSnapshotsLines(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 10)
	tracking := f.db.addService("Rastreo GPS", "25.50")

	order, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemRequest{
			{Type: "producto", ItemID: helmet.ID, Quantity: 2},
			{Type: "servicio", ItemID: tracking.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("225.50").Equal(order.Total), "total was %s", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Casco", order.Lines[0].ItemName)
	assert.Equal(t, models.ItemTypeProduct, order.Lines[0].ItemType)
	assert.Equal(t, helmet.ID, *order.Lines[0].ProductID)
	assert.Nil(t, order.Lines[0].ServiceID)
	assert.Equal(t, models.ItemTypeService, order.Lines[1].ItemType)
	assert.True(t, decimal.RequireFromString("25.50").Equal(order.Lines[1].UnitPrice))

	// Later price changes do not touch the stored line.
	p := f.db.products[helmet.ID]
	p.Price = decimal.RequireFromString("150.00")
	f.db.products[helmet.ID] = p
	stored, err := f.service.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100.00").Equal(stored.Lines[0].UnitPrice))

	assert.Equal(t, 10, f.db.products[helmet.ID].Stock, "orders do not move stock by default")
	assert.Empty(t, f.db.movements)
}

func TestCreateOrderAcceptsEnglishItemTypes(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	lock := f.db.addProduct("Candado", "19.99", 1)

	order, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{Type: "product", ItemID: lock.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("59.97").Equal(order.Total))
}

func TestCreateOrderWithMissingItemLeavesNoOrder(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 10)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemRequest{
			{Type: "producto", ItemID: helmet.ID, Quantity: 1},
			{Type: "producto", ItemID: 9999, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrCatalogItemNotFound)
	assert.Contains(t, err.Error(), "Producto con ID 9999 no encontrado")
	assert.Empty(t, f.db.orders)

	_, err = f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{Type: "servicio", ItemID: 4242, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrCatalogItemNotFound)
	assert.Contains(t, err.Error(), "Servicio con ID 4242 no encontrado")
	assert.Empty(t, f.db.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 10)

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"no items", CreateOrderRequest{CustomerID: customer.ID}},
		{"zero quantity", CreateOrderRequest{CustomerID: customer.ID, Items: []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 0}}}},
		{"quantity over limit", CreateOrderRequest{CustomerID: customer.ID, Items: []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 101}}}},
		{"unknown type", CreateOrderRequest{CustomerID: customer.ID, Items: []OrderItemRequest{{Type: "bicicleta", ItemID: helmet.ID, Quantity: 1}}}},
		{"missing customer id", CreateOrderRequest{Items: []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateOrder(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, f.db.orders)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	helmet := f.db.addProduct("Casco", "100.00", 10)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: 77,
		Items:      []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Contains(t, err.Error(), "Cliente con ID 77 no encontrado")
}

func TestCreateOrderEnforcedStockPolicy(t *testing.T) {
	f := newOrderFixture(StockPolicyEnforce)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 4)

	order, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.db.products[helmet.ID].Stock)
	require.Len(t, f.db.movements, 1)
	assert.Equal(t, models.ChannelOrder, f.db.movements[0].Channel)
	assert.Equal(t, order.ID, f.db.movements[0].ReferenceID)
	assert.Equal(t, -3, f.db.movements[0].QuantityChanged)

	_, err = f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 2}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, f.db.products[helmet.ID].Stock)
	assert.Len(t, f.db.orders, 1)
}

func TestGetOrdersByCustomerNewestFirst(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 10)

	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		placed := day.AddDate(0, 0, i)
		f.service.now = func() time.Time { return placed }
		_, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: i + 1}},
		})
		require.NoError(t, err)
	}

	orders, err := f.service.GetOrdersByCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, 3, orders[0].Lines[0].Quantity)
	assert.Equal(t, 1, orders[2].Lines[0].Quantity)

	none, err := f.service.GetOrdersByCustomer(context.Background(), 5555)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(StockPolicyNone)
	customer := f.db.addCustomer("ana@example.com")
	helmet := f.db.addProduct("Casco", "100.00", 10)
	order, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{Type: "producto", ItemID: helmet.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.UpdateOrderStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "shipped"}))
	assert.Equal(t, models.OrderStatusShipped, f.db.orders[order.ID].Status)

	err = f.service.UpdateOrderStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "perdido"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	assert.Equal(t, models.OrderStatusShipped, f.db.orders[order.ID].Status)

	err = f.service.UpdateOrderStatus(context.Background(), 9999, UpdateOrderStatusRequest{Status: "entregado"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Len(t, f.db.orders, 1)
}
