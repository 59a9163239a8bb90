package handlers

import (
	"errors"
	"net/http"

	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StockMovementHandler holds the stock movement service.
type StockMovementHandler struct {
	movementService services.StockMovementService
}

func NewStockMovementHandler(ms services.StockMovementService) *StockMovementHandler {
	return &StockMovementHandler{movementService: ms}
}

// GetStockMovements lists the ledger, optionally filtered by productoId and canal.
func (h *StockMovementHandler) GetStockMovements(c *gin.Context) {
	var filters models.StockMovementFilters
	productID, ok := optionalInt64Query(c, "productoId")
	if !ok {
		return
	}
	filters.ProductID = productID
	if channel := c.Query("canal"); channel != "" {
		filters.Channel = &channel
	}

	movements, err := h.movementService.GetStockMovements(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "GetStockMovements: Error from movementService")
		utils.RespondInternalError(c, "Failed to fetch stock movements.")
		return
	}
	c.JSON(http.StatusOK, movements)
}
