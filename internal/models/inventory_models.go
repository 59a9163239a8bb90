package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType tags a catalog entry as a physical product or a subscription service.
type ItemType string

const (
	ItemTypeProduct ItemType = "producto"
	ItemTypeService ItemType = "servicio"
)

// ParseItemType accepts the wire tags and their English aliases.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ItemTypeProduct), "product":
		return ItemTypeProduct, true
	case string(ItemTypeService), "service":
		return ItemTypeService, true
	}
	return "", false
}

// IsItemType reports whether s is a recognized catalog tag.
func IsItemType(s string) bool {
	_, ok := ParseItemType(s)
	return ok
}

// Supplier provides products.
type Supplier struct {
	ID           int64     `gorm:"primaryKey" json:"proveedorId"`
	Name         string    `gorm:"size:100;not null" json:"nombre"`
	Contact      *string   `gorm:"size:100" json:"contacto,omitempty"`
	Phone        *string   `gorm:"size:20" json:"telefono,omitempty"`
	Email        *string   `gorm:"size:100" json:"email,omitempty"`
	Address      *string   `gorm:"size:255" json:"direccion,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"activo"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"fechaRegistro"`
}

// Product is a stocked catalog entry.
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"productoId"`
	Slug        string          `gorm:"size:140;not null;uniqueIndex" json:"slug"`
	Name        string          `gorm:"size:100;not null" json:"nombre"`
	Description *string         `gorm:"type:text" json:"descripcion,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
	Active      bool            `gorm:"not null;default:true" json:"activo"`
	Image       *string         `gorm:"type:text" json:"imagen,omitempty"`
	SupplierID  *int64          `json:"proveedorId,omitempty"`
	Supplier    *Supplier       `gorm:"constraint:OnDelete:SET NULL" json:"proveedor,omitempty"`
}

// Service is a subscription catalog entry. It has no stock.
type Service struct {
	ID           int64            `gorm:"primaryKey" json:"servicioId"`
	Name         string           `gorm:"size:100;not null" json:"nombre"`
	Description  *string          `gorm:"type:text" json:"descripcion,omitempty"`
	MonthlyPrice *decimal.Decimal `gorm:"type:numeric(10,2)" json:"precioMensual"`
	Active       bool             `gorm:"not null;default:true" json:"activo"`
}

// UnitPrice is the monthly price, or zero when none is set.
func (s *Service) UnitPrice() decimal.Decimal {
	if s.MonthlyPrice == nil {
		return decimal.Zero
	}
	return *s.MonthlyPrice
}

// Stock movement channels.
const (
	ChannelOrder = "pedido"
	ChannelSale  = "venta"
)

// StockMovement records a change of product stock caused by an order or sale.
type StockMovement struct {
	ID              int64     `gorm:"primaryKey" json:"movimientoId"`
	ProductID       int64     `gorm:"not null;index" json:"productoId"`
	Product         *Product  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Channel         string    `gorm:"size:10;not null" json:"canal"`
	ReferenceID     int64     `gorm:"not null" json:"referenciaId"`
	QuantityChanged int       `gorm:"not null" json:"cantidad"`
	Reason          *string   `gorm:"size:255" json:"motivo,omitempty"`
	CreatedAt       time.Time `json:"fecha"`
}

type SupplierFilters struct {
	ActiveOnly *bool
	Search     string
	Page       int
	PageSize   int
}

type ProductFilters struct {
	ActiveOnly *bool
	Search     string
}

type StockMovementFilters struct {
	ProductID *int64
	Channel   *string
}
