package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPreparing OrderStatus = "preparando"
	OrderStatusShipped   OrderStatus = "enviado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// ParseOrderStatus accepts the stored values, their capitalized forms and English aliases.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OrderStatusPending), "pending":
		return OrderStatusPending, true
	case string(OrderStatusPreparing), "preparing":
		return OrderStatusPreparing, true
	case string(OrderStatusShipped), "shipped":
		return OrderStatusShipped, true
	case string(OrderStatusDelivered), "delivered":
		return OrderStatusDelivered, true
	case string(OrderStatusCancelled), "cancelled", "canceled":
		return OrderStatusCancelled, true
	}
	return "", false
}

// Order is a customer request for products and services.
type Order struct {
	ID         int64           `gorm:"primaryKey" json:"pedidoId"`
	CustomerID int64           `gorm:"not null;index" json:"clienteId"`
	Customer   *Customer       `json:"-"`
	PlacedAt   time.Time       `gorm:"not null" json:"fechaPedido"`
	Status     OrderStatus     `gorm:"size:20;not null;index" json:"estado"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"detalles"`
}

// OrderLine keeps the item name and price as they were when the order was placed.
type OrderLine struct {
	ID        int64           `gorm:"primaryKey" json:"detalleId"`
	OrderID   int64           `gorm:"not null;index" json:"pedidoId"`
	ItemType  ItemType        `gorm:"size:10;not null" json:"tipo"`
	ProductID *int64          `json:"productoId,omitempty"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ServiceID *int64          `json:"servicioId,omitempty"`
	Service   *Service        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ItemName  string          `gorm:"size:100;not null" json:"nombre"`
	Quantity  int             `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precioUnitario"`
}

// Subtotal is unit price times quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	CustomerID *int64
	Status     *OrderStatus
	Date       *time.Time
	Page       int
	PageSize   int
}
