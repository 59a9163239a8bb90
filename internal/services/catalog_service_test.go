package services

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"geobike_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type recordingImageStore struct {
	key         string
	contentType string
	size        int
}

func (s *recordingImageStore) SaveImage(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.key, s.contentType, s.size = key, contentType, len(data)
	return "https://assets.example.com/" + key, nil
}

func newCatalogFixture() (*memDB, *recordingImageStore, CatalogService) {
	db := newMemDB()
	images := &recordingImageStore{}
	return db, images, NewCatalogService(memProductRepo{db}, memServiceRepo{db}, images, 1024)
}

func TestDecodeImage(t *testing.T) {
	data, contentType, err := decodeImage(pixelPNG, 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.NotEmpty(t, data)

	_, contentType, err = decodeImage("data:image/png;base64,"+pixelPNG, 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, _, err = decodeImage("%%%not-base64", 1024)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, _, err = decodeImage(base64.StdEncoding.EncodeToString([]byte("just some text")), 1024)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, _, err = decodeImage(base64.StdEncoding.EncodeToString(make([]byte, 4096)), 1024)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestCreateProductBuildsUniqueSlug(t *testing.T) {
	db, _, svc := newCatalogFixture()

	first, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Candado Señal GPS", Price: decimal.RequireFromString("49.999"), Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, "candado-senal-gps", first.Slug)
	assert.True(t, decimal.RequireFromString("50.00").Equal(first.Price))
	assert.True(t, first.Active)

	second, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Candado señal GPS", Price: decimal.RequireFromString("10")})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "candado-senal-gps-"))
	assert.Len(t, db.products, 2)
}

func TestCreateProductValidation(t *testing.T) {
	_, _, svc := newCatalogFixture()

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "  ", Price: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Luz", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Luz", Price: decimal.RequireFromString("1"), Stock: -2})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetProductImageStoresLocation(t *testing.T) {
	db, images, svc := newCatalogFixture()
	product := db.addProduct("Casco", "100.00", 1)

	updated, err := svc.SetProductImage(context.Background(), product.ID, ProductImageRequest{Image: "data:image/png;base64," + pixelPNG})
	require.NoError(t, err)
	assert.Equal(t, "image/png", images.contentType)
	assert.True(t, strings.HasSuffix(images.key, ".png"))
	require.NotNil(t, updated.Image)
	assert.Equal(t, *updated.Image, *db.products[product.ID].Image)

	_, err = svc.SetProductImage(context.Background(), 9999, ProductImageRequest{Image: pixelPNG})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductReferencedByOrderLine(t *testing.T) {
	db, _, svc := newCatalogFixture()
	product := db.addProduct("Casco", "100.00", 1)
	id := product.ID
	db.orders[1] = models.Order{ID: 1, Lines: []models.OrderLine{{ProductID: &id, Quantity: 1}}}

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), product.ID), ErrProductInUse)
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), 9999), ErrProductNotFound)

	delete(db.orders, 1)
	assert.NoError(t, svc.DeleteProduct(context.Background(), product.ID))
	assert.Empty(t, db.products)
}

func TestToggleAndUpdateService(t *testing.T) {
	db, _, svc := newCatalogFixture()
	created, err := svc.CreateService(context.Background(), CreateServiceRequest{Name: "Rastreo", MonthlyPrice: decimalPtr("9.90")})
	require.NoError(t, err)

	toggled, err := svc.ToggleServiceActive(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)
	assert.False(t, db.services[created.ID].Active)

	active := true
	list, err := svc.GetServices(context.Background(), &active)
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := svc.UpdateService(context.Background(), created.ID, UpdateServiceRequest{MonthlyPrice: decimalPtr("12.5")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*updated.MonthlyPrice))

	_, err = svc.UpdateService(context.Background(), created.ID, UpdateServiceRequest{MonthlyPrice: decimalPtr("-3")})
	assert.ErrorIs(t, err, ErrValidation)
}
