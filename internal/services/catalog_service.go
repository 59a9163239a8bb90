package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
	"geobike_backend/internal/storage"
	"geobike_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrProductInUse     = errors.New("product cannot be deleted as it is referenced by order or sale lines")
	ErrImageTooLarge    = errors.New("image exceeds the maximum size")
	ErrUnsupportedImage = errors.New("payload is not a supported image")
)

// --- Catalog DTOs ---

type CreateProductRequest struct {
	Name        string          `json:"nombre" binding:"required,max=100"`
	Description *string         `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock" binding:"min=0"`
	SupplierID  *int64          `json:"proveedorId" binding:"omitempty,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"nombre" binding:"omitempty,max=100"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	SupplierID  *int64           `json:"proveedorId" binding:"omitempty,gt=0"`
}

// ProductImageRequest carries a base64 image, optionally as a data URI.
type ProductImageRequest struct {
	Image string `json:"imagen" binding:"required"`
}

type CreateServiceRequest struct {
	Name         string           `json:"nombre" binding:"required,max=100"`
	Description  *string          `json:"descripcion"`
	MonthlyPrice *decimal.Decimal `json:"precioMensual"`
}

type UpdateServiceRequest struct {
	Name         *string          `json:"nombre" binding:"omitempty,max=100"`
	Description  *string          `json:"descripcion"`
	MonthlyPrice *decimal.Decimal `json:"precioMensual"`
}

// --- CatalogService Interface ---
type CatalogService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, productID int64) (*models.Product, error)
	GetProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, req UpdateProductRequest) (*models.Product, error)
	ToggleProductActive(ctx context.Context, productID int64) (*models.Product, error)
	SetProductImage(ctx context.Context, productID int64, req ProductImageRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error

	CreateService(ctx context.Context, req CreateServiceRequest) (*models.Service, error)
	GetServiceByID(ctx context.Context, serviceID int64) (*models.Service, error)
	GetServices(ctx context.Context, activeOnly *bool) ([]models.Service, error)
	UpdateService(ctx context.Context, serviceID int64, req UpdateServiceRequest) (*models.Service, error)
	ToggleServiceActive(ctx context.Context, serviceID int64) (*models.Service, error)
}

type catalogService struct {
	productRepo   repositories.ProductRepository
	serviceRepo   repositories.ServiceRepository
	images        storage.ImageStore
	maxImageBytes int
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(pr repositories.ProductRepository, sr repositories.ServiceRepository, images storage.ImageStore, maxImageBytes int) CatalogService {
	if images == nil {
		images = storage.InlineImageStore{}
	}
	return &catalogService{productRepo: pr, serviceRepo: sr, images: images, maxImageBytes: maxImageBytes}
}

func validatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", ErrValidation, field)
	}
	return nil
}

// uniqueSlug derives a slug from the name and adds a short random suffix on collision.
func (s *catalogService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "producto"
	}
	candidate := base
	for i := 0; i < 5; i++ {
		exists, err := s.productRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:8]
	}
	return "", fmt.Errorf("could not generate a unique slug for %q", name)
}

func (s *catalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if err := requireName("nombre", req.Name); err != nil {
		return nil, err
	}
	if err := validatePrice("precio", req.Price); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", ErrValidation)
	}
	productSlug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Slug:        productSlug,
		Name:        strings.TrimSpace(req.Name),
		Description: trimmedOrNil(req.Description),
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		Active:      true,
		SupplierID:  req.SupplierID,
	}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: proveedor %d no existe", ErrValidation, *req.SupplierID)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, nil, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	return product, nil
}

func (s *catalogService) GetProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	filters.Search = strings.TrimSpace(filters.Search)
	products, err := s.productRepo.GetProducts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID int64, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := requireName("nombre", *req.Name); err != nil {
			return nil, err
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = trimmedOrNil(req.Description)
	}
	if req.Price != nil {
		if err := validatePrice("precio", *req.Price); err != nil {
			return nil, err
		}
		product.Price = req.Price.Round(2)
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock no puede ser negativo", ErrValidation)
		}
		product.Stock = *req.Stock
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
		}
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: proveedor %d no existe", ErrValidation, *req.SupplierID)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}
	return product, nil
}

func (s *catalogService) ToggleProductActive(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Active = !product.Active
	if err := s.productRepo.SetProductActive(ctx, productID, product.Active); err != nil {
		return nil, fmt.Errorf("failed to toggle product %d: %w", productID, err)
	}
	return product, nil
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// decodeImage accepts raw base64 or a data URI and sniffs the real content type.
func decodeImage(payload string, maxBytes int) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if comma := strings.Index(payload, ","); comma >= 0 {
			payload = payload[comma+1:]
		}
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+3 {
		return nil, "", fmt.Errorf("%w: limite %d bytes", ErrImageTooLarge, maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64 inválido", ErrUnsupportedImage)
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, "", fmt.Errorf("%w: limite %d bytes", ErrImageTooLarge, maxBytes)
	}
	contentType := http.DetectContentType(data)
	if _, ok := imageExtensions[contentType]; !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	return data, contentType, nil
}

func (s *catalogService) SetProductImage(ctx context.Context, productID int64, req ProductImageRequest) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	data, contentType, err := decodeImage(req.Image, s.maxImageBytes)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), imageExtensions[contentType])
	location, err := s.images.SaveImage(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image for product %d: %w", productID, err)
	}
	if err := s.productRepo.SetProductImage(ctx, productID, location); err != nil {
		return nil, fmt.Errorf("failed to save image for product %d: %w", productID, err)
	}
	product.Image = &location
	utils.LogInfo("Product image updated", map[string]interface{}{"product_id": productID, "bytes": len(data)})
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return fmt.Errorf("%w: id %d", ErrProductInUse, productID)
		}
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	return nil
}

func (s *catalogService) CreateService(ctx context.Context, req CreateServiceRequest) (*models.Service, error) {
	if err := requireName("nombre", req.Name); err != nil {
		return nil, err
	}
	service := &models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: trimmedOrNil(req.Description),
		Active:      true,
	}
	if req.MonthlyPrice != nil {
		if err := validatePrice("precioMensual", *req.MonthlyPrice); err != nil {
			return nil, err
		}
		price := req.MonthlyPrice.Round(2)
		service.MonthlyPrice = &price
	}
	if err := s.serviceRepo.CreateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, serviceID int64) (*models.Service, error) {
	service, err := s.serviceRepo.GetServiceByID(ctx, nil, serviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to get service %d: %w", serviceID, err)
	}
	return service, nil
}

func (s *catalogService) GetServices(ctx context.Context, activeOnly *bool) ([]models.Service, error) {
	services, err := s.serviceRepo.GetServices(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID int64, req UpdateServiceRequest) (*models.Service, error) {
	service, err := s.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := requireName("nombre", *req.Name); err != nil {
			return nil, err
		}
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = trimmedOrNil(req.Description)
	}
	if req.MonthlyPrice != nil {
		if err := validatePrice("precioMensual", *req.MonthlyPrice); err != nil {
			return nil, err
		}
		price := req.MonthlyPrice.Round(2)
		service.MonthlyPrice = &price
	}
	if err := s.serviceRepo.UpdateService(ctx, service); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to update service %d: %w", serviceID, err)
	}
	return service, nil
}

func (s *catalogService) ToggleServiceActive(ctx context.Context, serviceID int64) (*models.Service, error) {
	service, err := s.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	service.Active = !service.Active
	if err := s.serviceRepo.SetServiceActive(ctx, serviceID, service.Active); err != nil {
		return nil, fmt.Errorf("failed to toggle service %d: %w", serviceID, err)
	}
	return service, nil
}
