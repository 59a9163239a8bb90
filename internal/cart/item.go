package cart

import (
	"encoding/json"
	"fmt"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry that can sit in the cart. The set of
// implementations is closed: ProductItem and ServiceItem.
type Item interface {
	Kind() models.ItemType
	ItemID() int64
	DisplayName() string
	// UnitPrice is the price captured when the item was added.
	UnitPrice() decimal.Decimal
	sealed()
}

type ProductItem struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
}

func (p ProductItem) Kind() models.ItemType      { return models.ItemTypeProduct }
func (p ProductItem) ItemID() int64              { return p.ProductID }
func (p ProductItem) DisplayName() string        { return p.Name }
func (p ProductItem) UnitPrice() decimal.Decimal { return p.Price }
func (ProductItem) sealed()                      {}

// ServiceItem prices at its monthly rate; a service without one costs zero.
type ServiceItem struct {
	ServiceID    int64
	Name         string
	MonthlyPrice *decimal.Decimal
}

func (s ServiceItem) Kind() models.ItemType { return models.ItemTypeService }
func (s ServiceItem) ItemID() int64         { return s.ServiceID }
func (s ServiceItem) DisplayName() string   { return s.Name }
func (s ServiceItem) UnitPrice() decimal.Decimal {
	if s.MonthlyPrice == nil {
		return decimal.Zero
	}
	return *s.MonthlyPrice
}
func (ServiceItem) sealed() {}

// ProductFromModel captures the product's current name and price.
func ProductFromModel(p models.Product) ProductItem {
	return ProductItem{ProductID: p.ID, Name: p.Name, Price: p.Price}
}

func ServiceFromModel(s models.Service) ServiceItem {
	return ServiceItem{ServiceID: s.ID, Name: s.Name, MonthlyPrice: s.MonthlyPrice}
}

// Line is one cart entry.
type Line struct {
	Item     Item
	Quantity int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Item.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// lineJSON is the stored array element: tipo plus the fields of its kind.
type lineJSON struct {
	Type         string           `json:"tipo"`
	ProductID    *int64           `json:"productoId,omitempty"`
	ServiceID    *int64           `json:"servicioId,omitempty"`
	Name         string           `json:"nombre"`
	Price        *decimal.Decimal `json:"precio,omitempty"`
	MonthlyPrice *decimal.Decimal `json:"precioMensual,omitempty"`
	Quantity     int              `json:"cantidad"`
}

func (l Line) MarshalJSON() ([]byte, error) {
	out := lineJSON{Name: l.Item.DisplayName(), Quantity: l.Quantity}
	switch it := l.Item.(type) {
	case ProductItem:
		out.Type = string(models.ItemTypeProduct)
		out.ProductID = &it.ProductID
		out.Price = &it.Price
	case ServiceItem:
		out.Type = string(models.ItemTypeService)
		out.ServiceID = &it.ServiceID
		out.MonthlyPrice = it.MonthlyPrice
	default:
		return nil, fmt.Errorf("cart: unknown item %T", l.Item)
	}
	return json.Marshal(out)
}

func (l *Line) UnmarshalJSON(data []byte) error {
	var in lineJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: cantidad %d", ErrInvalidQuantity, in.Quantity)
	}
	kind, ok := models.ParseItemType(in.Type)
	if !ok {
		return fmt.Errorf("cart: unknown tipo %q", in.Type)
	}
	switch kind {
	case models.ItemTypeProduct:
		if in.ProductID == nil {
			return fmt.Errorf("cart: producto without productoId")
		}
		item := ProductItem{ProductID: *in.ProductID, Name: in.Name}
		if in.Price != nil {
			item.Price = *in.Price
		}
		l.Item = item
	case models.ItemTypeService:
		if in.ServiceID == nil {
			return fmt.Errorf("cart: servicio without servicioId")
		}
		l.Item = ServiceItem{ServiceID: *in.ServiceID, Name: in.Name, MonthlyPrice: in.MonthlyPrice}
	}
	l.Quantity = in.Quantity
	return nil
}
