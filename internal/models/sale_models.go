package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a point-of-sale transaction registered by staff.
type Sale struct {
	ID         int64           `gorm:"primaryKey" json:"ventaId"`
	SoldAt     time.Time       `gorm:"not null;index" json:"fechaVenta"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	SaleType   string          `gorm:"size:50;not null" json:"tipoVenta"`
	CustomerID *int64          `json:"clienteId,omitempty"`
	Customer   *Customer       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	StaffID    *int64          `json:"personalId,omitempty"`
	Staff      *Staff          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Lines      []SaleLine      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"detallesVenta"`
}

type SaleLine struct {
	ID        int64           `gorm:"primaryKey" json:"detalleVentaId"`
	SaleID    int64           `gorm:"not null;index" json:"ventaId"`
	ItemType  ItemType        `gorm:"size:10;not null" json:"tipo"`
	ProductID *int64          `json:"productoId,omitempty"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ServiceID *int64          `json:"servicioId,omitempty"`
	Service   *Service        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ItemName  string          `gorm:"size:100;not null" json:"nombre"`
	Quantity  int             `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precioUnitario"`
}

func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type SaleFilters struct {
	CustomerID *int64
	StaffID    *int64
	Page       int
	PageSize   int
}
