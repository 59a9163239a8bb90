// Package cart accumulates products and services before checkout.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"geobike_backend/internal/services"

	"github.com/shopspring/decimal"
)

var (
	ErrIndexOutOfRange = errors.New("cart: line index out of range")
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart: no items to check out")
)

// ShippingFee applies to every non-empty cart.
var ShippingFee = decimal.RequireFromString("5.99")

// Cart is not safe for concurrent use.
type Cart struct {
	lines []Line
	store Store
}

// New loads the saved cart from store. A nil store keeps the cart in memory.
func New(store Store) (*Cart, error) {
	c := &Cart{store: store}
	if store == nil {
		return c, nil
	}
	data, err := store.Load(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.lines); err != nil {
		return nil, fmt.Errorf("failed to decode saved cart: %w", err)
	}
	return c, nil
}

// FromLines builds an unsaved cart over lines.
func FromLines(lines []Line) *Cart {
	return &Cart{lines: append([]Line(nil), lines...)}
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Add puts one unit of item in the cart, merging with an existing line of the
// same kind and id. The stored price is the one carried by the first add.
func (c *Cart) Add(item Item) error {
	for i := range c.lines {
		if c.lines[i].Item.Kind() == item.Kind() && c.lines[i].Item.ItemID() == item.ItemID() {
			c.lines[i].Quantity++
			return c.save()
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return c.save()
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrIndexOutOfRange
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return c.save()
}

// SetQuantity leaves the cart unchanged when index or quantity is invalid.
func (c *Cart) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrIndexOutOfRange
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c.lines[index].Quantity = quantity
	return c.save()
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Shipping() decimal.Decimal {
	if c.Subtotal().IsPositive() {
		return ShippingFee
	}
	return decimal.Zero
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping())
}

// Clear empties the cart and drops the saved entry.
func (c *Cart) Clear() error {
	c.lines = nil
	if c.store == nil {
		return nil
	}
	return c.store.Delete(StorageKey)
}

// CheckoutRequest converts the cart into an order for customerID.
func (c *Cart) CheckoutRequest(customerID int64) (services.CreateOrderRequest, error) {
	if len(c.lines) == 0 {
		return services.CreateOrderRequest{}, ErrEmptyCart
	}
	req := services.CreateOrderRequest{CustomerID: customerID, Items: make([]services.OrderItemRequest, 0, len(c.lines))}
	for _, l := range c.lines {
		req.Items = append(req.Items, services.OrderItemRequest{
			Type:     string(l.Item.Kind()),
			ItemID:   l.Item.ItemID(),
			Quantity: l.Quantity,
		})
	}
	return req, nil
}

// Summary is the priced view of a cart.
type Summary struct {
	Items    []Line          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"envio"`
	Total    decimal.Decimal `json:"total"`
}

func (c *Cart) Summary() Summary {
	items := c.Lines()
	if items == nil {
		items = []Line{}
	}
	return Summary{Items: items, Subtotal: c.Subtotal(), Shipping: c.Shipping(), Total: c.Total()}
}

func (c *Cart) save() error {
	if c.store == nil {
		return nil
	}
	data, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := c.store.Save(StorageKey, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
