package handlers

import (
	"errors"
	"net/http"

	"geobike_backend/internal/middleware"
	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService services.SaleService
}

func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// CreateSale attributes the sale to the calling staff member when personalId is omitted.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if !bindJSON(c, &req, "CreateSale") {
		return
	}
	if req.StaffID == nil {
		if session := middleware.CurrentSession(c); session != nil && session.StaffID != nil {
			staffID := *session.StaffID
			req.StaffID = &staffID
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else if errors.Is(err, services.ErrCatalogItemNotFound) || errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, messageAfterSentinel(err), err.Error()))
		} else {
			utils.LogError(err, "CreateSale: Error from saleService.CreateSale")
			utils.RespondInternalError(c, "Error al registrar la venta.")
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	var filters models.SaleFilters
	var ok bool
	if filters.CustomerID, ok = optionalInt64Query(c, "clienteId"); !ok {
		return
	}
	if filters.StaffID, ok = optionalInt64Query(c, "personalId"); !ok {
		return
	}
	filters.Page = utils.PositiveIntOrDefault(c.Query("page"), 1)
	filters.PageSize = utils.PositiveIntOrDefault(c.Query("pageSize"), 20)

	sales, total, err := h.saleService.GetSales(c.Request.Context(), filters)
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.GetSales")
		utils.RespondInternalError(c, "Failed to fetch sales.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     sales,
		"total":    total,
		"page":     filters.Page,
		"pageSize": filters.PageSize,
	})
}

func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	saleID, ok := pathID(c, "id", "sale")
	if !ok {
		return
	}
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Venta no encontrada.", err.Error()))
		} else {
			utils.LogError(err, "GetSaleByID: Error from saleService.GetSaleByID")
			utils.RespondInternalError(c, "Failed to fetch sale.")
		}
		return
	}
	c.JSON(http.StatusOK, sale)
}
