package handlers

import (
	"net/http"

	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetSummary: Error from reportService")
		utils.RespondInternalError(c, "Failed to build report summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) GetProductSales(c *gin.Context) {
	rows, err := h.reportService.GetProductSales(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetProductSales: Error from reportService")
		utils.RespondInternalError(c, "Failed to build product sales report.")
		return
	}
	c.JSON(http.StatusOK, rows)
}
