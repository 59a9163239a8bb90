package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestAddMergesSameItem(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	casco := ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}
	require.NoError(t, c.Add(casco))
	require.NoError(t, c.Add(casco))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, dec("20").Equal(c.Subtotal()))
	assert.True(t, dec("5.99").Equal(c.Shipping()))
	assert.True(t, dec("25.99").Equal(c.Total()))
}

func TestProductAndServiceWithSameIDStaySeparate(t *testing.T) {
	c := FromLines(nil)
	require.NoError(t, c.Add(ProductItem{ProductID: 3, Name: "Candado", Price: dec("4.50")}))
	require.NoError(t, c.Add(ServiceItem{ServiceID: 3, Name: "Rastreo GPS", MonthlyPrice: decPtr("9.99")}))

	assert.Len(t, c.Lines(), 2)
	assert.True(t, dec("14.49").Equal(c.Subtotal()))
}

func TestAddKeepsFirstCapturedPrice(t *testing.T) {
	c := FromLines(nil)
	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}))
	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("12")}))

	assert.True(t, dec("20").Equal(c.Subtotal()))
}

func TestEmptyCartHasNoShipping(t *testing.T) {
	c := FromLines(nil)
	assert.True(t, c.Shipping().IsZero())
	assert.True(t, c.Total().IsZero())
}

func TestServiceWithoutPriceCountsAsZero(t *testing.T) {
	c := FromLines(nil)
	require.NoError(t, c.Add(ServiceItem{ServiceID: 1, Name: "Asesoría"}))

	assert.True(t, c.Subtotal().IsZero())
	assert.True(t, c.Shipping().IsZero())
}

func TestSetQuantityRejectsInvalidInput(t *testing.T) {
	c := FromLines(nil)
	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}))

	assert.ErrorIs(t, c.SetQuantity(0, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity(0, -2), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity(1, 3), ErrIndexOutOfRange)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity(0, 4))
	assert.Equal(t, 4, c.Lines()[0].Quantity)
	assert.True(t, dec("40").Equal(c.Subtotal()))
}

func TestRemove(t *testing.T) {
	c := FromLines(nil)
	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}))
	require.NoError(t, c.Add(ProductItem{ProductID: 2, Name: "Luz", Price: dec("3")}))

	assert.ErrorIs(t, c.Remove(5), ErrIndexOutOfRange)
	require.NoError(t, c.Remove(0))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].Item.ItemID())
}

func TestCheckoutRequest(t *testing.T) {
	c := FromLines(nil)
	_, err := c.CheckoutRequest(1)
	assert.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}))
	require.NoError(t, c.Add(ServiceItem{ServiceID: 2, Name: "Seguro", MonthlyPrice: decPtr("5")}))
	require.NoError(t, c.SetQuantity(0, 3))

	req, err := c.CheckoutRequest(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), req.CustomerID)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "producto", req.Items[0].Type)
	assert.Equal(t, 3, req.Items[0].Quantity)
	assert.Equal(t, "servicio", req.Items[1].Type)
	assert.Equal(t, int64(2), req.Items[1].ItemID)

	_, err = req.Validate()
	assert.NoError(t, err)
}

func TestFileStorePersistsEveryMutation(t *testing.T) {
	dir := t.TempDir()
	store := FileStore{Dir: dir}

	c, err := New(store)
	require.NoError(t, err)
	require.NoError(t, c.Add(ProductItem{ProductID: 1, Name: "Casco", Price: dec("10")}))
	require.NoError(t, c.Add(ServiceItem{ServiceID: 9, Name: "Rastreo", MonthlyPrice: decPtr("7.50")}))
	require.NoError(t, c.SetQuantity(0, 2))

	_, err = os.Stat(filepath.Join(dir, "carrito.json"))
	require.NoError(t, err)

	reloaded, err := New(store)
	require.NoError(t, err)
	lines := reloaded.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, models.ItemTypeProduct, lines[0].Item.Kind())
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, dec("27.50").Equal(reloaded.Subtotal()))

	require.NoError(t, reloaded.Clear())
	_, err = os.Stat(filepath.Join(dir, "carrito.json"))
	assert.True(t, os.IsNotExist(err))

	empty, err := New(store)
	require.NoError(t, err)
	assert.Empty(t, empty.Lines())
}

func TestUnmarshalStoredClientArray(t *testing.T) {
	raw := `[
		{"tipo":"producto","productoId":4,"nombre":"Candado","precio":12.5,"stock":3,"cantidad":2},
		{"tipo":"servicio","servicioId":1,"nombre":"Rastreo","precioMensual":null,"cantidad":1}
	]`
	var lines []Line
	require.NoError(t, json.Unmarshal([]byte(raw), &lines))

	c := FromLines(lines)
	assert.True(t, dec("25").Equal(c.Subtotal()))
	assert.True(t, dec("30.99").Equal(c.Total()))
}

func TestUnmarshalRejectsBadLines(t *testing.T) {
	var lines []Line
	assert.Error(t, json.Unmarshal([]byte(`[{"tipo":"bici","cantidad":1}]`), &lines))
	assert.Error(t, json.Unmarshal([]byte(`[{"tipo":"producto","cantidad":1}]`), &lines))
	assert.ErrorIs(t, json.Unmarshal([]byte(`[{"tipo":"producto","productoId":1,"cantidad":0}]`), &lines), ErrInvalidQuantity)
}
