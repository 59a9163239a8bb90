package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService services.SupplierService
}

func NewSupplierHandler(ss services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: ss}
}

func (h *SupplierHandler) respondSupplierError(c *gin.Context, err error, operation, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrSupplierNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Proveedor no encontrado.", err.Error()))
	case errors.Is(err, services.ErrSupplierInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "El proveedor tiene productos asociados.", err.Error()))
	default:
		utils.LogError(err, operation+": Error from supplierService")
		utils.RespondInternalError(c, fallback)
	}
}

// GetSuppliers sets the X-Total-Count, X-Page-Size, X-Current-Page and X-Total-Pages headers.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	activeOnly, ok := optionalBoolQuery(c, "activos")
	if !ok {
		return
	}
	filters := models.SupplierFilters{
		ActiveOnly: activeOnly,
		Search:     c.Query("search"),
		Page:       utils.PositiveIntOrDefault(c.Query("page"), 1),
		PageSize:   utils.PositiveIntOrDefault(c.Query("pageSize"), 10),
	}

	page, err := h.supplierService.GetSuppliers(c.Request.Context(), filters)
	if err != nil {
		h.respondSupplierError(c, err, "GetSuppliers", "Failed to fetch suppliers.")
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(page.TotalCount, 10))
	c.Header("X-Page-Size", strconv.Itoa(page.PageSize))
	c.Header("X-Current-Page", strconv.Itoa(page.Page))
	c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages))
	c.JSON(http.StatusOK, page.Suppliers)
}

func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}
	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), id)
	if err != nil {
		h.respondSupplierError(c, err, "GetSupplierByID", "Failed to fetch supplier.")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req services.SupplierRequest
	if !bindJSON(c, &req, "CreateSupplier") {
		return
	}
	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.respondSupplierError(c, err, "CreateSupplier", "Failed to create supplier.")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}
	var req services.SupplierRequest
	if !bindJSON(c, &req, "UpdateSupplier") {
		return
	}
	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		h.respondSupplierError(c, err, "UpdateSupplier", "Failed to update supplier.")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) ToggleSupplierStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}
	supplier, err := h.supplierService.ToggleSupplierStatus(c.Request.Context(), id)
	if err != nil {
		h.respondSupplierError(c, err, "ToggleSupplierStatus", "Failed to update supplier.")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}
	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		h.respondSupplierError(c, err, "DeleteSupplier", "Failed to delete supplier.")
		return
	}
	c.Status(http.StatusNoContent)
}
