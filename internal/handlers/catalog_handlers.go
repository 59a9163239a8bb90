package handlers

import (
	"errors"
	"net/http"

	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves products and subscription services.
type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error, operation, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Producto no encontrado.", err.Error()))
	case errors.Is(err, services.ErrServiceNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Servicio no encontrado.", err.Error()))
	case errors.Is(err, services.ErrProductInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "El producto tiene pedidos o ventas asociados.", err.Error()))
	case errors.Is(err, services.ErrImageTooLarge):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusRequestEntityTooLarge, utils.ErrCodePayloadTooLarge, "La imagen es demasiado grande.", err.Error()))
	case errors.Is(err, services.ErrUnsupportedImage):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Formato de imagen no soportado.", err.Error()))
	default:
		utils.LogError(err, operation+": Error from catalogService")
		utils.RespondInternalError(c, fallback)
	}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	activeOnly, ok := optionalBoolQuery(c, "activos")
	if !ok {
		return
	}
	products, err := h.catalogService.GetProducts(c.Request.Context(), models.ProductFilters{ActiveOnly: activeOnly, Search: c.Query("search")})
	if err != nil {
		h.respondCatalogError(c, err, "GetProducts", "Failed to fetch products.")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.catalogService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.respondCatalogError(c, err, "GetProductByID", "Failed to fetch product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req, "CreateProduct") {
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.respondCatalogError(c, err, "CreateProduct", "Failed to create product.")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	var req services.UpdateProductRequest
	if !bindJSON(c, &req, "UpdateProduct") {
		return
	}
	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.respondCatalogError(c, err, "UpdateProduct", "Failed to update product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ToggleProductActive(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.catalogService.ToggleProductActive(c.Request.Context(), id)
	if err != nil {
		h.respondCatalogError(c, err, "ToggleProductActive", "Failed to update product.")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UploadProductImage accepts {"imagen": "<base64 or data URI>"}.
func (h *CatalogHandler) UploadProductImage(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	var req services.ProductImageRequest
	if !bindJSON(c, &req, "UploadProductImage") {
		return
	}
	product, err := h.catalogService.SetProductImage(c.Request.Context(), id, req)
	if err != nil {
		h.respondCatalogError(c, err, "UploadProductImage", "Failed to store product image.")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.respondCatalogError(c, err, "DeleteProduct", "Failed to delete product.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) GetServices(c *gin.Context) {
	activeOnly, ok := optionalBoolQuery(c, "activos")
	if !ok {
		return
	}
	list, err := h.catalogService.GetServices(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondCatalogError(c, err, "GetServices", "Failed to fetch services.")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	service, err := h.catalogService.GetServiceByID(c.Request.Context(), id)
	if err != nil {
		h.respondCatalogError(c, err, "GetServiceByID", "Failed to fetch service.")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req services.CreateServiceRequest
	if !bindJSON(c, &req, "CreateService") {
		return
	}
	service, err := h.catalogService.CreateService(c.Request.Context(), req)
	if err != nil {
		h.respondCatalogError(c, err, "CreateService", "Failed to create service.")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	var req services.UpdateServiceRequest
	if !bindJSON(c, &req, "UpdateService") {
		return
	}
	service, err := h.catalogService.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		h.respondCatalogError(c, err, "UpdateService", "Failed to update service.")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) ToggleServiceActive(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	service, err := h.catalogService.ToggleServiceActive(c.Request.Context(), id)
	if err != nil {
		h.respondCatalogError(c, err, "ToggleServiceActive", "Failed to update service.")
		return
	}
	c.JSON(http.StatusOK, service)
}
