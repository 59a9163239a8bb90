package handlers

import (
	"errors"
	"net/http"

	"geobike_backend/internal/models"
	"geobike_backend/internal/services"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler serves the admin-only employee endpoints.
type StaffHandler struct {
	staffService services.StaffService
}

func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

func (h *StaffHandler) respondStaffError(c *gin.Context, err error, operation, fallback string) {
	if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrDateFormat) {
		utils.RespondValidationFailed(c, err.Error())
	} else if errors.Is(err, services.ErrEmailExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "El email ya está registrado.", err.Error()))
	} else if errors.Is(err, services.ErrStaffNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Empleado no encontrado.", err.Error()))
	} else {
		utils.LogError(err, operation+": Error from staffService")
		utils.RespondInternalError(c, fallback)
	}
}

func (h *StaffHandler) RegisterStaff(c *gin.Context) {
	var req services.RegisterStaffRequest
	if !bindJSON(c, &req, "RegisterStaff") {
		return
	}
	staff, err := h.staffService.RegisterStaff(c.Request.Context(), req)
	if err != nil {
		h.respondStaffError(c, err, "RegisterStaff", "Error al registrar el empleado.")
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	h.listStaff(c, c.Query("search"))
}

func (h *StaffHandler) SearchStaff(c *gin.Context) {
	h.listStaff(c, c.Query("q"))
}

func (h *StaffHandler) listStaff(c *gin.Context, search string) {
	filters := models.PeopleFilters{
		Search:   search,
		Page:     utils.PositiveIntOrDefault(c.Query("page"), 1),
		PageSize: utils.PositiveIntOrDefault(c.Query("pageSize"), 20),
	}
	staff, total, err := h.staffService.GetStaff(c.Request.Context(), filters)
	if err != nil {
		h.respondStaffError(c, err, "GetStaff", "Failed to fetch staff.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     staff,
		"total":    total,
		"page":     filters.Page,
		"pageSize": filters.PageSize,
	})
}

func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	staffID, ok := pathID(c, "id", "staff member")
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		h.respondStaffError(c, err, "GetStaffByID", "Failed to fetch staff member.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	staffID, ok := pathID(c, "id", "staff member")
	if !ok {
		return
	}
	var req services.UpdateStaffRequest
	if !bindJSON(c, &req, "UpdateStaff") {
		return
	}
	staff, err := h.staffService.UpdateStaff(c.Request.Context(), staffID, req)
	if err != nil {
		h.respondStaffError(c, err, "UpdateStaff", "Failed to update staff member.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) ToggleStaffStatus(c *gin.Context) {
	staffID, ok := pathID(c, "id", "staff member")
	if !ok {
		return
	}
	staff, err := h.staffService.ToggleStaffStatus(c.Request.Context(), staffID)
	if err != nil {
		h.respondStaffError(c, err, "ToggleStaffStatus", "Failed to update staff member.")
		return
	}
	c.JSON(http.StatusOK, staff)
}
